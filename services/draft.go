package services

import (
	"time"

	"github.com/therossee/thesis-proposals-sub001/models"

	"gorm.io/gorm"
)

// DraftPayload carries the in-progress conclusion form. No field is
// mandatory: a draft may be saved at any stage of compilation.
type DraftPayload struct {
	Title           string `json:"title"`
	TitleEng        string `json:"titleEng"`
	Abstract        string `json:"abstract"`
	AbstractEng     string `json:"abstractEng"`
	Language        string `json:"language"`
	CoSupervisorIDs []uint `json:"coSupervisorIds"`
}

// SaveConclusionDraft persists the draft working set of a conclusion
// request: text fields on the thesis, draft-scoped co-supervisor rows
// and the draft date stamp. No status change and no ledger row.
func SaveConclusionDraft(db *gorm.DB, studentID uint, payload *DraftPayload) (*models.Thesis, error) {
	var student models.Student
	if err := db.First(&student, studentID).Error; err != nil {
		return nil, NotFoundError("Student not found!")
	}

	var thesis models.Thesis
	if err := db.Where("student_id = ?", student.ID).First(&thesis).Error; err != nil {
		return nil, NotFoundError("Thesis not found for this student!")
	}

	if !conclusionRequestableStatuses[thesis.Status] {
		return nil, BadRequestError("Thesis is not in a valid state for conclusion request")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		thesis.Title = payload.Title
		thesis.TitleEng = payload.TitleEng
		thesis.Abstract = payload.Abstract
		thesis.AbstractEng = payload.AbstractEng
		if payload.Language != "" {
			thesis.Language = payload.Language
		}

		if err := reconcileCoSupervisors(tx, thesis.ID, payload.CoSupervisorIDs, models.SupervisorScopeDraft); err != nil {
			return err
		}

		now := time.Now()
		thesis.ThesisDraftDate = &now

		return tx.Save(&thesis).Error
	})
	if err != nil {
		return nil, err
	}

	return LoadThesisWithRelations(db, thesis.ID)
}
