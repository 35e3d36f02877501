package models

// InsightType groups insights for styling.
type InsightType string

// Insight types emitted by the workflow rules.
const (
	InsightOptimization InsightType = "optimization"
	InsightBalance      InsightType = "balance"
	InsightHabit        InsightType = "habit"
	InsightGeneral      InsightType = "insight"
	InsightWorkflow     InsightType = "workflow"
	InsightHealth       InsightType = "health"
)

// Insight is a templated natural-language finding.
type Insight struct {
	ID          string      `json:"id" yaml:"id"`
	Type        InsightType `json:"type" yaml:"type"`
	Icon        string      `json:"icon" yaml:"icon"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Priority    int         `json:"priority" yaml:"priority"` // 1 = most important
}
