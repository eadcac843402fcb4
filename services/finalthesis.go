package services

import (
	"path/filepath"

	"github.com/therossee/thesis-proposals-sub001/models"
	"github.com/therossee/thesis-proposals-sub001/utils"

	"gorm.io/gorm"
)

// UploadFinalThesis stores the definitive thesis files after the final
// exam registration. The thesis must be exactly in final_exam; the
// path columns, the status write and the ledger row commit together so
// the status never disagrees with the stored paths.
func UploadFinalThesis(db *gorm.DB, studentID uint, files *ConclusionFiles) (*models.Thesis, error) {
	var student models.Student
	if err := db.Preload("DegreeProgramme").First(&student, studentID).Error; err != nil {
		return nil, NotFoundError("Student not found!")
	}

	var thesis models.Thesis
	if err := db.Where("student_id = ?", student.ID).First(&thesis).Error; err != nil {
		return nil, NotFoundError("Thesis not found for this student!")
	}

	if thesis.Status != models.ThesisStatusFinalExam {
		return nil, BadRequestError("Thesis is not in a final exam state")
	}

	if files == nil || files.Thesis == nil {
		return nil, BadRequestError("Thesis file is required!")
	}
	if resumeRequiredCollegi[student.DegreeProgramme.IDCollegio] &&
		files.Resume == nil && thesis.ThesisResumePath == "" {
		return nil, BadRequestError("Thesis resume is required for your degree programme!")
	}

	if err := requirePDFA(files.Thesis.TempPath, "Thesis file must be a valid PDF/A document!"); err != nil {
		return nil, err
	}
	if files.Resume != nil {
		if err := requirePDFA(files.Resume.TempPath, "Thesis resume must be a valid PDF/A document!"); err != nil {
			return nil, err
		}
	}

	dir := utils.FinalThesisDir(student.ID)

	thesisPath := filepath.Join(dir, utils.FinalThesisFileName(student.ID))
	if err := utils.MoveFile(files.Thesis.TempPath, thesisPath); err != nil {
		return nil, InternalError("Failed to store final thesis file!")
	}

	resumePath := ""
	if files.Resume != nil {
		resumePath = filepath.Join(dir, utils.FinalResumeFileName(student.ID))
		if err := utils.MoveFile(files.Resume.TempPath, resumePath); err != nil {
			return nil, InternalError("Failed to store final resume file!")
		}
	}

	zipPath := ""
	if files.AdditionalZip != nil {
		zipPath = filepath.Join(dir, utils.FinalAdditionalZipFileName(student.ID))
		if err := utils.MoveFile(files.AdditionalZip.TempPath, zipPath); err != nil {
			return nil, InternalError("Failed to store final additional zip!")
		}
	}

	oldStatus := thesis.Status

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := appendStatusHistory(tx, thesis.ThesisApplicationID, &oldStatus, models.ThesisStatusFinalThesis); err != nil {
			return err
		}

		thesis.ThesisFilePath = utils.RelativeUploadPath(thesisPath)
		if resumePath != "" {
			thesis.ThesisResumePath = utils.RelativeUploadPath(resumePath)
		}
		if zipPath != "" {
			thesis.AdditionalZipPath = utils.RelativeUploadPath(zipPath)
		}
		thesis.Status = models.ThesisStatusFinalThesis

		return tx.Save(&thesis).Error
	})
	if err != nil {
		return nil, err
	}

	return LoadThesisWithRelations(db, thesis.ID)
}
