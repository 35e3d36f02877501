// Package classify maps raw application names and window titles to semantic
// categories and programming-language labels.
package classify

import (
	"strings"

	"github.com/j-veylop/activity-insights-tui/internal/models"
)

// categoryKeywords is the category -> keyword table. It is scanned in
// models.AllCategories order and the first case-insensitive substring hit wins.
var categoryKeywords = map[models.Category][]string{
	models.CategoryDevelopment: {
		"Microsoft Visual Studio", "Visual Studio Code", "Microsoft Management Console", "Unity",
	},
	models.CategoryTesting: {
		"Windows PowerShell", "Dev Testing", "Windows Error Reporting/werfault.exe", "Testing & QA",
		"Manual Testing", "Performance Testing", "Functional Testing", "Usability Testing",
	},
	models.CategoryOperations: {
		"Operations Monitoring", "SQLite", "Cloudflare", "GitHub",
	},
	models.CategoryTools: {
		"Microsoft Excel", "Microsoft Word", "Microsoft PowerPoint", "File Explorer", "Notepad",
		"ShareX", "Standard Notes", "LinkedIn", "Notion", "AI Tools", "ExitLag", "Activity Watch", "Paint",
	},
	models.CategoryCommunication: {
		"Rambox", "WhatsApp", "Discord", "Facebook Messenger", "Telegram", "Email", "Forums", "Slack",
	},
	models.CategoryBrowser: {
		"Microsoft Edge", "Google Chrome", "Mozilla Firefox", "Brave Browser",
	},
	models.CategoryEntertainment: {
		"Dragon Ball Gekishin Squadra", "Black Desert Online", "Legends of Idleon", "Marvel Snap",
		"Gacha Games", "Grand Theft Auto V", "Guild Wars 2", "Spotify", "Taiga", "YouTube", "Netflix",
		"Twitch", "VLC Media Player", "Digimon Story Time Stranger", "League of Legends", "Mabinogi",
		"Evil Genius 2", "Stella Sora", "Summoners War Rush", "Raven2", "Souls Remnant",
	},
	models.CategoryOther: {
		"Steam", "Reddit", "Twitter/X", "Instagram", "Facebook", "Epic Games",
	},
}

// loweredKeywords caches lower-cased keywords in table order.
var loweredKeywords = func() [][]string {
	out := make([][]string, len(models.AllCategories()))
	for i, cat := range models.AllCategories() {
		for _, kw := range categoryKeywords[cat] {
			out[i] = append(out[i], strings.ToLower(kw))
		}
	}
	return out
}()

// CategorizeApp returns the first category whose keyword list contains a
// case-insensitive substring of appName. Unknown apps are Other.
func CategorizeApp(appName string) models.Category {
	name := strings.ToLower(appName)
	for i, cat := range models.AllCategories() {
		for _, kw := range loweredKeywords[i] {
			if strings.Contains(name, kw) {
				return cat
			}
		}
	}
	return models.CategoryOther
}

// CategorizeActivity splits time into leisure (Entertainment) and productive
// (everything else). This is a reporting policy, not a judgement.
func CategorizeActivity(appName string) models.ActivityKind {
	if CategorizeApp(appName) == models.CategoryEntertainment {
		return models.KindLeisure
	}
	return models.KindProductive
}

// Keywords returns a copy of the keyword list for a category.
func Keywords(cat models.Category) []string {
	kws := categoryKeywords[cat]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}
