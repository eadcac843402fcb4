package models

import (
	"gorm.io/gorm"
)

// EmbargoDuration enum values
const (
	EmbargoDuration12Months     = "12_months"
	EmbargoDuration18Months     = "18_months"
	EmbargoDuration36Months     = "36_months"
	EmbargoDurationAfterConsent = "after_explicit_consent"
)

// Motivation is the catalog of admissible embargo motivations.
type Motivation struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
}

func (Motivation) TableName() string {
	return "motivations"
}

// ThesisEmbargo holds at most one row per thesis, enforced by
// delete-then-recreate on every submission rather than a DB constraint.
type ThesisEmbargo struct {
	gorm.Model
	ThesisID uint   `gorm:"index;not null" json:"thesisId"`
	Duration string `gorm:"type:varchar(30);not null" json:"duration"` // 12_months, 18_months, 36_months, after_explicit_consent

	Motivations []ThesisEmbargoMotivation `gorm:"foreignKey:ThesisEmbargoID" json:"motivations,omitempty"`
}

func (ThesisEmbargo) TableName() string {
	return "thesis_embargoes"
}

// ThesisEmbargoMotivation rows depend on the embargo and are destroyed
// with it. A free-text other_motivation may sit alongside a catalog id.
type ThesisEmbargoMotivation struct {
	gorm.Model
	ThesisEmbargoID uint    `gorm:"index;not null" json:"thesisEmbargoId"`
	MotivationID    uint    `gorm:"index;not null" json:"motivationId"`
	OtherMotivation *string `json:"otherMotivation"`

	Motivation Motivation `gorm:"foreignKey:MotivationID" json:"motivation,omitempty"`
}

func (ThesisEmbargoMotivation) TableName() string {
	return "thesis_embargo_motivations"
}
