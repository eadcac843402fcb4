package services

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/therossee/thesis-proposals-sub001/models"
	"github.com/therossee/thesis-proposals-sub001/utils"

	"gorm.io/gorm"
)

// resumeRequiredCollegi lists the collegio codes whose students must
// attach a thesis resume to the conclusion request.
var resumeRequiredCollegi = map[string]bool{
	"CL003": true,
}

// UploadedFile is a file already received and staged in the temporary
// upload area. The caller owns cleanup of the temp path on failure.
type UploadedFile struct {
	TempPath string
	Filename string
}

// ConclusionFiles are the multipart attachments of a conclusion
// request or final upload.
type ConclusionFiles struct {
	Thesis        *UploadedFile
	Resume        *UploadedFile
	AdditionalZip *UploadedFile
}

// ConclusionRequestPayload carries the text fields and related
// collections of a conclusion request.
type ConclusionRequestPayload struct {
	Title       string `json:"title"`
	TitleEng    string `json:"titleEng"`
	Abstract    string `json:"abstract"`
	AbstractEng string `json:"abstractEng"`
	Language    string `json:"language"`
	LicenseID   *uint  `json:"licenseId"`

	CoSupervisorIDs []uint        `json:"coSupervisorIds"`
	Sdgs            []SdgInput    `json:"sdgs"`
	KeywordIDs      []uint        `json:"keywordIds"`
	KeywordsOther   []string      `json:"keywordsOther"`
	Embargo         *EmbargoInput `json:"embargo"`
}

// conclusionRequestableStatuses are the thesis states from which a
// student may submit (or resubmit) a conclusion request.
var conclusionRequestableStatuses = map[string]bool{
	models.ThesisStatusOngoing:            true,
	models.ThesisStatusConclusionRejected: true,
}

// SubmitConclusionRequest processes a student's conclusion request:
// validates the preconditions and files, persists the thesis metadata,
// reconciles all related collections, places the files and moves the
// thesis to conclusion_requested with one ledger row. All database
// writes commit as one transaction; file moves are best-effort side
// effects performed before the commit.
func SubmitConclusionRequest(db *gorm.DB, studentID uint, payload *ConclusionRequestPayload, files *ConclusionFiles) (*models.Thesis, error) {
	var student models.Student
	if err := db.Preload("DegreeProgramme").First(&student, studentID).Error; err != nil {
		return nil, NotFoundError("Student not found!")
	}

	var thesis models.Thesis
	if err := db.Where("student_id = ?", student.ID).First(&thesis).Error; err != nil {
		return nil, NotFoundError("Thesis not found for this student!")
	}

	if !conclusionRequestableStatuses[thesis.Status] {
		return nil, BadRequestError("Thesis is not in a valid state for conclusion request")
	}

	if strings.TrimSpace(payload.Title) == "" {
		return nil, BadRequestError("Title is required!")
	}
	if strings.TrimSpace(payload.Abstract) == "" {
		return nil, BadRequestError("Abstract is required!")
	}
	if files == nil || files.Thesis == nil {
		return nil, BadRequestError("Thesis file is required!")
	}
	if resumeRequiredCollegi[student.DegreeProgramme.IDCollegio] && files.Resume == nil {
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

	oldStatus := thesis.Status

	err := db.Transaction(func(tx *gorm.DB) error {
		if payload.LicenseID != nil {
			var count int64
			if err := tx.Model(&models.License{}).Where("id = ?", *payload.LicenseID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return NotFoundError("License does not exist!")
			}
		}

		applyBilingualFields(&thesis, payload)
		thesis.Language = payload.Language
		thesis.LicenseID = payload.LicenseID

		if err := placeConclusionFiles(&thesis, student.ID, files); err != nil {
			return err
		}

		if err := reconcileCoSupervisors(tx, thesis.ID, payload.CoSupervisorIDs, models.SupervisorScopeLive); err != nil {
			return err
		}
		if err := reconcileSdgs(tx, thesis.ID, payload.Sdgs); err != nil {
			return err
		}
		if err := reconcileKeywords(tx, thesis.ID, payload.KeywordIDs, payload.KeywordsOther); err != nil {
			return err
		}
		if err := reconcileEmbargo(tx, thesis.ID, payload.Embargo); err != nil {
			return err
		}

		if err := appendStatusHistory(tx, thesis.ThesisApplicationID, &oldStatus, models.ThesisStatusConclusionRequested); err != nil {
			return err
		}

		now := time.Now()
		thesis.ThesisConclusionRequestDate = &now
		thesis.Status = models.ThesisStatusConclusionRequested

		return tx.Save(&thesis).Error
	})
	if err != nil {
		return nil, err
	}

	return LoadThesisWithRelations(db, thesis.ID)
}

// applyBilingualFields normalizes the title/abstract pairs. An English
// thesis mirrors the English input into both language columns; an
// Italian one passes the _eng fields through as given.
func applyBilingualFields(thesis *models.Thesis, payload *ConclusionRequestPayload) {
	if payload.Language == models.LanguageEnglish {
		thesis.Title = payload.Title
		thesis.TitleEng = payload.Title
		thesis.Abstract = payload.Abstract
		thesis.AbstractEng = payload.Abstract
		return
	}
	thesis.Title = payload.Title
	thesis.TitleEng = payload.TitleEng
	thesis.Abstract = payload.Abstract
	thesis.AbstractEng = payload.AbstractEng
}

// placeConclusionFiles moves the staged files into the per-student
// permanent directory, replacing any previous file at each slot, and
// updates the path columns. The legacy blob column is cleared once a
// path is stored.
func placeConclusionFiles(thesis *models.Thesis, studentID uint, files *ConclusionFiles) error {
	dir := utils.ConclusionRequestDir(studentID)

	thesisPath := filepath.Join(dir, utils.ThesisFileName(studentID))
	if err := utils.MoveFile(files.Thesis.TempPath, thesisPath); err != nil {
		return err
	}
	thesis.ThesisFilePath = utils.RelativeUploadPath(thesisPath)
	thesis.ThesisFileRaw = nil

	if files.Resume != nil {
		resumePath := filepath.Join(dir, utils.ResumeFileName(studentID))
		if err := utils.MoveFile(files.Resume.TempPath, resumePath); err != nil {
			return err
		}
		thesis.ThesisResumePath = utils.RelativeUploadPath(resumePath)
	}

	if files.AdditionalZip != nil {
		zipPath := filepath.Join(dir, utils.AdditionalZipFileName(studentID))
		if err := utils.MoveFile(files.AdditionalZip.TempPath, zipPath); err != nil {
			return err
		}
		thesis.AdditionalZipPath = utils.RelativeUploadPath(zipPath)
	}

	return nil
}

func requirePDFA(path, message string) error {
	ok, err := utils.IsPDFA(path)
	if err != nil {
		return InternalError("Failed to read uploaded file!")
	}
	if !ok {
		return BadRequestError(message)
	}
	return nil
}
