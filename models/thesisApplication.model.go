package models

import (
	"time"

	"gorm.io/gorm"
)

// ApplicationStatus enum values
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusCancelled = "cancelled"
)

// ThesisApplication is a student's request to pursue a thesis topic.
// Its status only moves through the application state machine and is
// terminal once in approved, rejected or cancelled.
type ThesisApplication struct {
	gorm.Model
	Topic            string    `gorm:"not null" json:"topic"`
	StudentID        uint      `gorm:"index;not null" json:"studentId"`
	ThesisProposalID *uint     `gorm:"index" json:"thesisProposalId"`
	CompanyID        *uint     `gorm:"index" json:"companyId"`
	SubmissionDate   time.Time `json:"submissionDate"`
	Status           string    `gorm:"type:varchar(30);default:'pending'" json:"status"` // pending, approved, rejected, cancelled

	// Relations
	Student                 Student                                   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	SupervisorCoSupervisors []ThesisApplicationSupervisorCoSupervisor `gorm:"foreignKey:ThesisApplicationID" json:"supervisorCoSupervisors,omitempty"`
	Thesis                  *Thesis                                   `gorm:"foreignKey:ThesisApplicationID" json:"thesis,omitempty"`
}

func (ThesisApplication) TableName() string {
	return "thesis_applications"
}

// ThesisProposal is a topic published by a supervisor. Proposal CRUD is
// out of scope here; the entity exists as a foreign-key target.
type ThesisProposal struct {
	gorm.Model
	Topic       string `gorm:"not null" json:"topic"`
	Description string `gorm:"type:text" json:"description"`
}

func (ThesisProposal) TableName() string {
	return "thesis_proposals"
}

type Company struct {
	gorm.Model
	Name    string `gorm:"not null" json:"name"`
	VatCode string `json:"vatCode"`
}

func (Company) TableName() string {
	return "companies"
}
