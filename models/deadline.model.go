package models

import (
	"time"

	"gorm.io/gorm"
)

// DeadlineType enum values
const (
	DeadlineTypeThesisRequest         = "thesis_request"
	DeadlineTypeConclusionRequest     = "conclusion_request"
	DeadlineTypeFinalExamRegistration = "final_exam_registration"
)

type GraduationSession struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"` // e.g. "July 2026"
	Year int    `gorm:"not null" json:"year"`
}

func (GraduationSession) TableName() string {
	return "graduation_sessions"
}

type Deadline struct {
	gorm.Model
	Type                string    `gorm:"type:varchar(30);not null;index" json:"type"` // thesis_request, conclusion_request, final_exam_registration
	Date                time.Time `gorm:"not null;index" json:"date"`
	GraduationSessionID *uint     `gorm:"index" json:"graduationSessionId"`

	GraduationSession *GraduationSession `gorm:"foreignKey:GraduationSessionID" json:"graduationSession,omitempty"`
}

func (Deadline) TableName() string {
	return "deadlines"
}
