package classify

import (
	"regexp"
	"sort"
	"strings"
)

// LanguageOther is the fallback language label.
const LanguageOther = "Other"

var languageColors = map[string]string{
	"TypeScript":   "#3178c6",
	"JavaScript":   "#f1e05a",
	"Python":       "#3572A5",
	"C#":           "#178600",
	"HTML":         "#e34c26",
	"CSS":          "#563d7c",
	"SQL":          "#e38c00",
	"C++":          "#f34b7d",
	"Java":         "#b07219",
	"Go":           "#00ADD8",
	"Rust":         "#dea584",
	"Shell":        "#89e051",
	"Astro":        "#FF5D01",
	"Visual Basic": "#945db7",
	"PHP":          "#4F5D95",
	"Kotlin":       "#F18E33",
	"Swift":        "#F05138",
	"Data":         "#10B981",
	"Database":     "#8B5CF6",
	"Config":       "#292929",
	"Docs":         "#083fa1",
	"Other":        "#9CA3AF",
}

var extensionLanguages = map[string]string{
	"ts": "TypeScript", "tsx": "TypeScript",
	"js": "JavaScript", "jsx": "JavaScript", "mjs": "JavaScript",
	"py": "Python", "pyw": "Python",
	"cs":   "C#",
	"html": "HTML", "htm": "HTML",
	"css": "CSS", "scss": "CSS", "sass": "CSS",
	"astro": "Astro",
	"json":  "Config", "yml": "Config", "yaml": "Config", "toml": "Config", "xml": "Config",
	"ini": "Config", "env": "Config", "tsconfig": "Config", "npmrc": "Config",
	"dockerfile": "Config", "dockerignore": "Config",
	"md": "Docs", "mdx": "Docs", "txt": "Docs", "rst": "Docs", "ipynb": "Docs",
	"vb":  "Visual Basic",
	"sql": "SQL",
	"php": "PHP",
	"kts": "Kotlin",
	"swift": "Swift",
	"sh": "Shell", "bash": "Shell", "bat": "Shell", "ps1": "Shell",
	"cpp": "C++", "cc": "C++", "cxx": "C++", "c": "C++", "h": "C++", "hpp": "C++",
	"java": "Java",
	"go":   "Go",
	"rs":   "Rust",
	"csv": "Data", "xlsx": "Data", "xls": "Data", "xlsm": "Data", "parquet": "Data", "jsonl": "Data",
	"db": "Database", "sqlite": "Database", "sqlite3": "Database", "sqlite2": "Database", "db3": "Database",
}

var devAppNames = []string{
	"Visual Studio Code",
	"Code",
	"Microsoft Visual Studio",
	"devenv.exe",
	"Unity",
	"Unity Hub",
	"Excel",
	"Microsoft Excel",
	"SQLite",
	"SQLite Browser",
	"DB Browser for SQLite",
	"PyCharm",
	"IntelliJ IDEA",
	"WebStorm",
	"Rider",
	"Android Studio",
	"Xcode",
	"Sublime Text",
	"Atom",
	"Vim",
	"Neovim",
	"Notepad++",
	"Cursor",
	"Zed",
	"Fleet",
	"GitHub",
	"Unreal Editor",
	"Unreal Engine",
	"Godot",
	"Blender",
}

// appLanguage pairs are matched in order for the partial-name fallback.
type appLanguage struct {
	app  string
	lang string
}

var appLanguages = []appLanguage{
	{"Unity", "C#"},
	{"Unity.exe", "C#"},
	{"devenv.exe", "C#"},
	{"Excel", "Data"},
	{"Microsoft Excel", "Data"},
	{"SQLite", "Database"},
	{"SQLite Browser", "Database"},
	{"DB Browser for SQLite", "Database"},
}

var languagePriority = []string{
	"Python", "C#", "TypeScript", "JavaScript", "HTML", "CSS", "SQL", "Data", "Database",
	"C++", "Astro", "PHP", "Kotlin", "Swift", "Java", "Go", "Rust", "Shell", "Config",
	"Docs", "Visual Basic", "Other",
}

var extensionPattern = regexp.MustCompile(`\.([a-zA-Z]{2,4})(?:\*|\s|-)`)

// IsDevApp reports whether appName matches the development-tool whitelist.
// Matching is case-sensitive and works in both directions, so a short name
// like "Code" matches "Visual Studio Code".
func IsDevApp(appName string) bool {
	if appName == "" {
		return false
	}
	for _, dev := range devAppNames {
		if strings.Contains(appName, dev) || strings.Contains(dev, appName) {
			return true
		}
	}
	return false
}

// LanguageFromActivity derives a language label, preferring the app mapping
// over the window title's file extension. It never returns an empty label.
func LanguageFromActivity(title, appName string) string {
	if appName != "" {
		for _, al := range appLanguages {
			if appName == al.app {
				return al.lang
			}
		}
		for _, al := range appLanguages {
			if strings.Contains(appName, al.app) {
				return al.lang
			}
		}
	}
	return LanguageFromExtension(ExtractExtension(title))
}

// ExtractExtension returns the lower-cased file extension found in a window
// title such as "main.go - project", or "" when none is present.
func ExtractExtension(title string) string {
	if title == "" {
		return ""
	}
	m := extensionPattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// LanguageFromExtension maps an extension to a language label.
func LanguageFromExtension(ext string) string {
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageOther
}

// LanguageColor returns the chart color for a language label.
func LanguageColor(lang string) string {
	if c, ok := languageColors[lang]; ok {
		return c
	}
	return languageColors[LanguageOther]
}

// SortLanguagesByPriority orders labels by the fixed priority list in place.
// Unknown labels sort last, alphabetically.
func SortLanguagesByPriority(langs []string) []string {
	rank := func(l string) int {
		for i, p := range languagePriority {
			if p == l {
				return i
			}
		}
		return -1
	}
	sort.SliceStable(langs, func(i, j int) bool {
		ri, rj := rank(langs[i]), rank(langs[j])
		switch {
		case ri == -1 && rj == -1:
			return langs[i] < langs[j]
		case ri == -1:
			return false
		case rj == -1:
			return true
		default:
			return ri < rj
		}
	})
	return langs
}
