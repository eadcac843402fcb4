package models

import (
	"time"

	"gorm.io/gorm"
)

// ThesisStatus enum values
const (
	ThesisStatusOngoing               = "ongoing"
	ThesisStatusConclusionRequested   = "conclusion_requested"
	ThesisStatusConclusionRejected    = "conclusion_rejected"
	ThesisStatusConclusionApproved    = "conclusion_approved"
	ThesisStatusAlmalaurea            = "almalaurea"
	ThesisStatusCompiledQuestionnaire = "compiled_questionnaire"
	ThesisStatusFinalExam             = "final_exam"
	ThesisStatusFinalThesis           = "final_thesis"
	ThesisStatusCancelRequested       = "cancel_requested"
	ThesisStatusCancelApproved        = "cancel_approved"
	ThesisStatusDone                  = "done"
)

// ThesisLanguage enum values
const (
	LanguageItalian = "it"
	LanguageEnglish = "en"
)

// Thesis is the archival record created once an application is approved.
// It is created exactly once, mutated only by the conclusion state
// machine and never deleted.
type Thesis struct {
	gorm.Model
	ThesisApplicationID uint  `gorm:"uniqueIndex;not null" json:"thesisApplicationId"`
	StudentID           uint  `gorm:"index;not null" json:"studentId"`
	CompanyID           *uint `gorm:"index" json:"companyId"`

	Topic       string `gorm:"not null" json:"topic"`
	Title       string `json:"title"`
	TitleEng    string `json:"titleEng"`
	Abstract    string `gorm:"type:text" json:"abstract"`
	AbstractEng string `gorm:"type:text" json:"abstractEng"`
	Language    string `gorm:"type:varchar(2);default:'it'" json:"language"` // it, en
	LicenseID   *uint  `json:"licenseId"`

	ThesisFileRaw     []byte `gorm:"type:bytea" json:"-"` // legacy blob column, cleared once a path is stored
	ThesisFilePath    string `json:"thesisFilePath"`
	ThesisResumePath  string `json:"thesisResumePath"`
	AdditionalZipPath string `json:"additionalZipPath"`

	ThesisStartDate                  *time.Time `json:"thesisStartDate"`
	ThesisConclusionRequestDate      *time.Time `json:"thesisConclusionRequestDate"`
	ThesisConclusionConfirmationDate *time.Time `json:"thesisConclusionConfirmationDate"`
	ThesisDraftDate                  *time.Time `json:"thesisDraftDate"`

	Status string `gorm:"type:varchar(30);default:'ongoing'" json:"status"`

	// Relations
	Student                 Student                            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	License                 *License                           `gorm:"foreignKey:LicenseID" json:"license,omitempty"`
	SupervisorCoSupervisors []ThesisSupervisorCoSupervisor     `gorm:"foreignKey:ThesisID" json:"supervisorCoSupervisors,omitempty"`
	SustainableGoals        []ThesisSustainableDevelopmentGoal `gorm:"foreignKey:ThesisID" json:"sustainableGoals,omitempty"`
	Keywords                []ThesisKeyword                    `gorm:"foreignKey:ThesisID" json:"keywords,omitempty"`
	Embargo                 *ThesisEmbargo                     `gorm:"foreignKey:ThesisID" json:"embargo,omitempty"`
}

func (Thesis) TableName() string {
	return "theses"
}

type License struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
	Url  string `json:"url"`
}

func (License) TableName() string {
	return "licenses"
}
