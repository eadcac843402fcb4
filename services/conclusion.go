package services

import (
	"time"

	"github.com/therossee/thesis-proposals-sub001/models"

	"gorm.io/gorm"
)

// conclusionTransitions is the full transition graph of the thesis
// conclusion lifecycle. A status missing from the map, or a target not
// in its list, is an invalid transition.
var conclusionTransitions = map[string][]string{
	models.ThesisStatusOngoing:               {models.ThesisStatusConclusionRequested, models.ThesisStatusCancelRequested},
	models.ThesisStatusConclusionRequested:   {models.ThesisStatusConclusionApproved, models.ThesisStatusOngoing},
	models.ThesisStatusConclusionApproved:    {models.ThesisStatusAlmalaurea},
	models.ThesisStatusAlmalaurea:            {models.ThesisStatusCompiledQuestionnaire},
	models.ThesisStatusCompiledQuestionnaire: {models.ThesisStatusFinalExam},
	models.ThesisStatusFinalExam:             {models.ThesisStatusFinalThesis},
	models.ThesisStatusFinalThesis:           {models.ThesisStatusDone, models.ThesisStatusOngoing},
	models.ThesisStatusCancelRequested:       {models.ThesisStatusCancelApproved, models.ThesisStatusOngoing},
}

// CanTransitionConclusion reports whether the conclusion graph allows
// current -> target. A same-status transition is never allowed.
func CanTransitionConclusion(current, target string) bool {
	if current == target {
		return false
	}
	for _, allowed := range conclusionTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionConclusion moves a thesis to newStatus along the
// conclusion graph, writing one ledger row keyed by the thesis
// application. Entering conclusion_approved stamps the confirmation
// date.
func TransitionConclusion(db *gorm.DB, thesisID uint, newStatus string) (*models.Thesis, error) {
	var thesis models.Thesis
	if err := db.First(&thesis, thesisID).Error; err != nil {
		return nil, NotFoundError("Thesis not found!")
	}

	if !CanTransitionConclusion(thesis.Status, newStatus) {
		return nil, BadRequestError("Invalid thesis status transition!")
	}

	oldStatus := thesis.Status

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := appendStatusHistory(tx, thesis.ThesisApplicationID, &oldStatus, newStatus); err != nil {
			return err
		}

		if newStatus == models.ThesisStatusConclusionApproved {
			now := time.Now()
			thesis.ThesisConclusionConfirmationDate = &now
		}
		thesis.Status = newStatus

		return tx.Save(&thesis).Error
	})
	if err != nil {
		return nil, err
	}

	return &thesis, nil
}

// LoadThesisWithRelations reconstitutes a thesis with all its related
// collections for response serialization.
func LoadThesisWithRelations(db *gorm.DB, thesisID uint) (*models.Thesis, error) {
	var thesis models.Thesis
	err := db.
		Preload("Student.DegreeProgramme").
		Preload("License").
		Preload("SupervisorCoSupervisors", "scope = ?", models.SupervisorScopeLive).
		Preload("SupervisorCoSupervisors.Teacher").
		Preload("SustainableGoals.Goal").
		Preload("Keywords.Keyword").
		Preload("Embargo.Motivations.Motivation").
		First(&thesis, thesisID).Error
	if err != nil {
		return nil, NotFoundError("Thesis not found!")
	}
	return &thesis, nil
}
