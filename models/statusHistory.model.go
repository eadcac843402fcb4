package models

import (
	"time"

	"gorm.io/gorm"
)

// ThesisApplicationStatusHistory is the append-only ledger of status
// transitions. Both the application and its resulting thesis write
// here, keyed by thesis_application_id; old_status spans the union of
// both status vocabularies and is null on the creation row. Rows are
// never updated or deleted.
type ThesisApplicationStatusHistory struct {
	gorm.Model
	ThesisApplicationID uint      `gorm:"index;not null" json:"thesisApplicationId"`
	OldStatus           *string   `gorm:"type:varchar(30)" json:"oldStatus"`
	NewStatus           string    `gorm:"type:varchar(30);not null" json:"newStatus"`
	ChangeDate          time.Time `json:"changeDate"`
}

func (ThesisApplicationStatusHistory) TableName() string {
	return "thesis_application_status_histories"
}
