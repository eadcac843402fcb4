package models

import (
	"gorm.io/gorm"
)

// SupervisorScope enum values. The draft scope is a working set a
// student can edit before finalizing; live is the committed set.
const (
	SupervisorScopeLive  = "live"
	SupervisorScopeDraft = "draft"
)

// ThesisApplicationSupervisorCoSupervisor links teachers to an
// application. Exactly one row per application has is_supervisor=true.
type ThesisApplicationSupervisorCoSupervisor struct {
	gorm.Model
	ThesisApplicationID uint `gorm:"index;not null" json:"thesisApplicationId"`
	TeacherID           uint `gorm:"index;not null" json:"teacherId"`
	IsSupervisor        bool `gorm:"default:false" json:"isSupervisor"`

	Teacher Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (ThesisApplicationSupervisorCoSupervisor) TableName() string {
	return "thesis_application_supervisor_co_supervisors"
}

// ThesisSupervisorCoSupervisor links teachers to a thesis, copied from
// the application rows at approval time. Exactly one row per (thesis,
// scope) has is_supervisor=true.
type ThesisSupervisorCoSupervisor struct {
	gorm.Model
	ThesisID     uint   `gorm:"index;not null" json:"thesisId"`
	TeacherID    uint   `gorm:"index;not null" json:"teacherId"`
	IsSupervisor bool   `gorm:"default:false" json:"isSupervisor"`
	Scope        string `gorm:"type:varchar(10);default:'live'" json:"scope"` // live, draft

	Teacher Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (ThesisSupervisorCoSupervisor) TableName() string {
	return "thesis_supervisor_co_supervisors"
}
