package services

import (
	"time"

	"github.com/therossee/thesis-proposals-sub001/models"

	"gorm.io/gorm"
)

var applicationStatuses = map[string]bool{
	models.ApplicationStatusPending:   true,
	models.ApplicationStatusApproved:  true,
	models.ApplicationStatusRejected:  true,
	models.ApplicationStatusCancelled: true,
}

// closedApplicationStatuses are terminal: no transition is permitted
// out of them, not even within the closed family.
var closedApplicationStatuses = map[string]bool{
	models.ApplicationStatusApproved:  true,
	models.ApplicationStatusRejected:  true,
	models.ApplicationStatusCancelled: true,
}

// ApplicationTransitionResult carries the updated application and, for
// approvals, the thesis materialized by the transition.
type ApplicationTransitionResult struct {
	Application *models.ThesisApplication
	Thesis      *models.Thesis
}

// TransitionApplication moves a thesis application to newStatus. On
// approval it also creates the Thesis row and copies the supervisor
// and co-supervisor links from the application. The ledger row, the
// status write and the materialization commit as one transaction.
func TransitionApplication(db *gorm.DB, applicationID uint, newStatus string) (*ApplicationTransitionResult, error) {
	var application models.ThesisApplication
	if err := db.Preload("SupervisorCoSupervisors").First(&application, applicationID).Error; err != nil {
		return nil, NotFoundError("Thesis application not found!")
	}

	if !applicationStatuses[newStatus] {
		return nil, BadRequestError("Invalid application status!")
	}
	if newStatus == application.Status {
		return nil, BadRequestError("Application is already in this status!")
	}
	if closedApplicationStatuses[application.Status] {
		return nil, BadRequestError("Application is closed and can no longer change status!")
	}

	oldStatus := application.Status
	result := &ApplicationTransitionResult{Application: &application}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := appendStatusHistory(tx, application.ID, &oldStatus, newStatus); err != nil {
			return err
		}

		application.Status = newStatus
		if err := tx.Save(&application).Error; err != nil {
			return err
		}

		if newStatus == models.ApplicationStatusApproved {
			thesis, err := materializeThesis(tx, &application)
			if err != nil {
				return err
			}
			result.Thesis = thesis
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// materializeThesis creates the Thesis for an approved application and
// one supervisor link per teacher, preserving each is_supervisor flag.
func materializeThesis(tx *gorm.DB, application *models.ThesisApplication) (*models.Thesis, error) {
	supervisors := 0
	for _, link := range application.SupervisorCoSupervisors {
		if link.IsSupervisor {
			supervisors++
		}
	}
	if supervisors != 1 {
		return nil, InternalError("Application supervisor links are inconsistent!")
	}

	now := time.Now()
	thesis := models.Thesis{
		ThesisApplicationID: application.ID,
		StudentID:           application.StudentID,
		CompanyID:           application.CompanyID,
		Topic:               application.Topic,
		Status:              models.ThesisStatusOngoing,
		ThesisStartDate:     &now,
	}
	if err := tx.Create(&thesis).Error; err != nil {
		return nil, err
	}

	links := make([]models.ThesisSupervisorCoSupervisor, 0, len(application.SupervisorCoSupervisors))
	for _, link := range application.SupervisorCoSupervisors {
		links = append(links, models.ThesisSupervisorCoSupervisor{
			ThesisID:     thesis.ID,
			TeacherID:    link.TeacherID,
			IsSupervisor: link.IsSupervisor,
			Scope:        models.SupervisorScopeLive,
		})
	}
	if len(links) > 0 {
		if err := tx.Create(&links).Error; err != nil {
			return nil, err
		}
	}

	return &thesis, nil
}
