package services

import (
	"time"

	"github.com/therossee/thesis-proposals-sub001/models"

	"gorm.io/gorm"
)

// ResolveDeadline determines which deadline type applies to the logged
// student and returns the nearest upcoming deadline of that type. A
// thesis sent back from final_thesis to ongoing (a rejected final
// upload) is pushed to the next distinct graduation session when one
// exists.
func ResolveDeadline(db *gorm.DB, studentID uint) (*models.Deadline, error) {
	var student models.Student
	if err := db.First(&student, studentID).Error; err != nil {
		return nil, NotFoundError("Student not found!")
	}

	var thesis models.Thesis
	hasThesis := db.Where("student_id = ?", student.ID).First(&thesis).Error == nil

	deadlineType := models.DeadlineTypeThesisRequest
	if hasThesis {
		deadlineType = models.DeadlineTypeFinalExamRegistration
	} else {
		var application models.ThesisApplication
		hasActiveApplication := db.
			Where("student_id = ? AND status = ?", student.ID, models.ApplicationStatusPending).
			First(&application).Error == nil
		if hasActiveApplication {
			deadlineType = models.DeadlineTypeConclusionRequest
		}
	}

	now := time.Now()

	var nearest models.Deadline
	err := db.Preload("GraduationSession").
		Where("type = ? AND date > ?", deadlineType, now).
		Order("date asc").
		First(&nearest).Error
	if err != nil {
		return nil, NotFoundError("No upcoming deadline found!")
	}
	if nearest.GraduationSessionID == nil {
		return nil, InternalError("Deadline has no associated graduation session!")
	}

	if hasThesis && thesis.Status == models.ThesisStatusOngoing && lastTransitionWasFinalRejection(db, thesis.ThesisApplicationID) {
		var next models.Deadline
		err := db.Preload("GraduationSession").
			Where("type = ? AND date > ? AND graduation_session_id <> ?", deadlineType, now, *nearest.GraduationSessionID).
			Order("date asc").
			First(&next).Error
		if err == nil {
			if next.GraduationSessionID == nil {
				return nil, InternalError("Deadline has no associated graduation session!")
			}
			return &next, nil
		}
		// No later session: fall back to the nearest deadline.
	}

	return &nearest, nil
}

// lastTransitionWasFinalRejection reports whether the most recent
// ledger entry of the application is the final_thesis -> ongoing
// reversal.
func lastTransitionWasFinalRejection(db *gorm.DB, applicationID uint) bool {
	var last models.ThesisApplicationStatusHistory
	err := db.Where("thesis_application_id = ?", applicationID).
		Order("change_date desc, id desc").
		First(&last).Error
	if err != nil {
		return false
	}
	return last.OldStatus != nil &&
		*last.OldStatus == models.ThesisStatusFinalThesis &&
		last.NewStatus == models.ThesisStatusOngoing
}
