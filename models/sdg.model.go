package models

import (
	"gorm.io/gorm"
)

// SdgLevel enum values
const (
	SdgLevelPrimary   = "primary"
	SdgLevelSecondary = "secondary"
)

// SustainableDevelopmentGoal is the UN SDG catalog (17 fixed goals).
type SustainableDevelopmentGoal struct {
	gorm.Model
	Code string `gorm:"unique;not null" json:"code"` // e.g. SDG4
	Name string `gorm:"not null" json:"name"`
}

func (SustainableDevelopmentGoal) TableName() string {
	return "sustainable_development_goals"
}

// ThesisSustainableDevelopmentGoal holds at most one row per
// (thesis_id, goal_id); on duplicate input the primary level wins.
type ThesisSustainableDevelopmentGoal struct {
	gorm.Model
	ThesisID uint    `gorm:"index:idx_thesis_goal,unique;not null" json:"thesisId"`
	GoalID   uint    `gorm:"index:idx_thesis_goal,unique;not null" json:"goalId"`
	SdgLevel *string `gorm:"type:varchar(10)" json:"sdgLevel"` // primary, secondary, null

	Goal SustainableDevelopmentGoal `gorm:"foreignKey:GoalID" json:"goal,omitempty"`
}

func (ThesisSustainableDevelopmentGoal) TableName() string {
	return "thesis_sustainable_development_goals"
}
