package models

// InsightType classifies advisory text.
type InsightType string

const (
	InsightTypeTip         InsightType = "tip"
	InsightTypeWarning     InsightType = "warning"
	InsightTypeOpportunity InsightType = "opportunity"
	InsightTypeAchievement InsightType = "achievement"
)

// Valid reports whether t is a known insight type.
func (t InsightType) Valid() bool {
	switch t {
	case InsightTypeTip, InsightTypeWarning, InsightTypeOpportunity, InsightTypeAchievement:
		return true
	}
	return false
}

// InsightSource tells static content apart from template output.
type InsightSource string

const (
	InsightSourceStatic    InsightSource = "static"
	InsightSourceGenerated InsightSource = "generated"
)

// Insight is advisory text shown on the dashboard.
type Insight struct {
	Base
	UserID      string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        InsightType   `gorm:"not null" json:"type"`
	Priority    Priority      `gorm:"not null;default:'medium'" json:"priority"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	IsRead      bool          `gorm:"not null;default:false" json:"is_read"`
	Source      InsightSource `gorm:"not null;default:'static'" json:"source"`
}
