package services

import (
	"time"

	"github.com/therossee/thesis-proposals-sub001/models"

	"gorm.io/gorm"
)

// appendStatusHistory writes one ledger row for a status transition.
// Must run inside the same transaction as the status mutation.
func appendStatusHistory(tx *gorm.DB, applicationID uint, oldStatus *string, newStatus string) error {
	history := models.ThesisApplicationStatusHistory{
		ThesisApplicationID: applicationID,
		OldStatus:           oldStatus,
		NewStatus:           newStatus,
		ChangeDate:          time.Now(),
	}
	return tx.Create(&history).Error
}
