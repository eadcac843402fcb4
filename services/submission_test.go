package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/therossee/thesis-proposals-sub001/config"
	"github.com/therossee/thesis-proposals-sub001/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() *ConclusionRequestPayload {
	return &ConclusionRequestPayload{
		Title:    "Verifica formale di macchine a stati",
		Abstract: "Uno studio sulla verifica formale.",
		Language: models.LanguageItalian,
	}
}

func stagedFiles(t *testing.T, withResume bool) *ConclusionFiles {
	t.Helper()

	files := &ConclusionFiles{
		Thesis: &UploadedFile{TempPath: writePDFA(t, t.TempDir()), Filename: "thesis.pdf"},
	}
	if withResume {
		files.Resume = &UploadedFile{TempPath: writePDFA(t, t.TempDir()), Filename: "resume.pdf"}
	}
	return files
}

func TestSubmitConclusionRequestHappyPath(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001") // collegio not in the resume-required set
	thesis := seedThesis(t, db, student, models.ThesisStatusOngoing)

	files := stagedFiles(t, false)
	result, err := SubmitConclusionRequest(db, student.ID, validPayload(), files)
	require.NoError(t, err)

	assert.Equal(t, models.ThesisStatusConclusionRequested, result.Status)
	require.NotNil(t, result.ThesisConclusionRequestDate)
	assert.Equal(t, "Verifica formale di macchine a stati", result.Title)

	rows := historyRows(t, db, thesis.ThesisApplicationID)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].OldStatus)
	assert.Equal(t, models.ThesisStatusOngoing, *rows[0].OldStatus)
	assert.Equal(t, models.ThesisStatusConclusionRequested, rows[0].NewStatus)

	// The file moved from the temp area into the per-student slot
	stored := filepath.Join(config.AppConfig.UploadRoot, result.ThesisFilePath)
	_, err = os.Stat(stored)
	require.NoError(t, err)
	_, err = os.Stat(files.Thesis.TempPath)
	assert.True(t, os.IsNotExist(err))
}

func TestSubmitConclusionRequestBilingualMirroring(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	seedThesis(t, db, student, models.ThesisStatusOngoing)

	payload := &ConclusionRequestPayload{
		Title:    "Formal verification of state machines",
		Abstract: "A study on formal verification.",
		Language: models.LanguageEnglish,
	}

	result, err := SubmitConclusionRequest(db, student.ID, payload, stagedFiles(t, false))
	require.NoError(t, err)

	// An English thesis mirrors the input into both language columns
	assert.Equal(t, payload.Title, result.Title)
	assert.Equal(t, payload.Title, result.TitleEng)
	assert.Equal(t, payload.Abstract, result.Abstract)
	assert.Equal(t, payload.Abstract, result.AbstractEng)
}

func TestSubmitConclusionRequestResubmissionAfterRejection(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusConclusionRejected)

	result, err := SubmitConclusionRequest(db, student.ID, validPayload(), stagedFiles(t, false))
	require.NoError(t, err)
	assert.Equal(t, models.ThesisStatusConclusionRequested, result.Status)

	rows := historyRows(t, db, thesis.ThesisApplicationID)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].OldStatus)
	assert.Equal(t, models.ThesisStatusConclusionRejected, *rows[0].OldStatus)
}

func TestSubmitConclusionRequestWrongState(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusFinalExam)

	_, err := SubmitConclusionRequest(db, student.ID, validPayload(), stagedFiles(t, false))
	require.Error(t, err)
	assert.Equal(t, "Thesis is not in a valid state for conclusion request", err.Error())

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var reloaded models.Thesis
	require.NoError(t, db.First(&reloaded, thesis.ID).Error)
	assert.Equal(t, models.ThesisStatusFinalExam, reloaded.Status)
}

func TestSubmitConclusionRequestUnknownStudent(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)

	_, err := SubmitConclusionRequest(db, 3333, validPayload(), stagedFiles(t, false))
	require.Error(t, err)

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSubmitConclusionRequestMissingTitleAndAbstract(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	seedThesis(t, db, student, models.ThesisStatusOngoing)

	payload := validPayload()
	payload.Title = "   "
	_, err := SubmitConclusionRequest(db, student.ID, payload, stagedFiles(t, false))
	require.Error(t, err)
	assert.Equal(t, "Title is required!", err.Error())

	payload = validPayload()
	payload.Abstract = ""
	_, err = SubmitConclusionRequest(db, student.ID, payload, stagedFiles(t, false))
	require.Error(t, err)
	assert.Equal(t, "Abstract is required!", err.Error())
}

func TestSubmitConclusionRequestMissingThesisFile(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	seedThesis(t, db, student, models.ThesisStatusOngoing)

	_, err := SubmitConclusionRequest(db, student.ID, validPayload(), &ConclusionFiles{})
	require.Error(t, err)
	assert.Equal(t, "Thesis file is required!", err.Error())
}

func TestSubmitConclusionRequestResumeRequiredForCollegio(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL003")
	seedThesis(t, db, student, models.ThesisStatusOngoing)

	// No resume attached: rejected for CL003 students
	_, err := SubmitConclusionRequest(db, student.ID, validPayload(), stagedFiles(t, false))
	require.Error(t, err)

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// With the resume attached the submission goes through
	result, err := SubmitConclusionRequest(db, student.ID, validPayload(), stagedFiles(t, true))
	require.NoError(t, err)
	assert.NotEmpty(t, result.ThesisResumePath)
}

func TestSubmitConclusionRequestRejectsNonPDFA(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusOngoing)

	files := &ConclusionFiles{
		Thesis: &UploadedFile{TempPath: writePlainPDF(t, t.TempDir()), Filename: "thesis.pdf"},
	}

	_, err := SubmitConclusionRequest(db, student.ID, validPayload(), files)
	require.Error(t, err)

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Nothing written: status unchanged, no ledger row
	var reloaded models.Thesis
	require.NoError(t, db.First(&reloaded, thesis.ID).Error)
	assert.Equal(t, models.ThesisStatusOngoing, reloaded.Status)
	assert.Empty(t, historyRows(t, db, thesis.ThesisApplicationID))
}

func TestSubmitConclusionRequestWithCollections(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	seedThesis(t, db, student, models.ThesisStatusOngoing)

	coSupervisor := seedTeacher(t, db)
	goal := seedGoal(t, db, "SDG9")
	keyword := models.Keyword{Name: "formal methods"}
	require.NoError(t, db.Create(&keyword).Error)
	motivation := models.Motivation{Name: "patent pending"}
	require.NoError(t, db.Create(&motivation).Error)

	primary := models.SdgLevelPrimary
	duration := models.EmbargoDuration12Months

	payload := validPayload()
	payload.CoSupervisorIDs = []uint{coSupervisor.ID}
	payload.Sdgs = []SdgInput{{GoalID: goal.ID, Level: &primary}}
	payload.KeywordIDs = []uint{keyword.ID}
	payload.KeywordsOther = []string{"symbolic execution"}
	payload.Embargo = &EmbargoInput{
		Duration:    &duration,
		Motivations: []EmbargoMotivationInput{{MotivationID: &motivation.ID}},
	}

	result, err := SubmitConclusionRequest(db, student.ID, payload, stagedFiles(t, false))
	require.NoError(t, err)

	require.Len(t, result.SupervisorCoSupervisors, 1)
	assert.Equal(t, coSupervisor.ID, result.SupervisorCoSupervisors[0].TeacherID)
	require.Len(t, result.SustainableGoals, 1)
	require.Len(t, result.Keywords, 2)
	require.NotNil(t, result.Embargo)
	assert.Equal(t, models.EmbargoDuration12Months, result.Embargo.Duration)
	require.Len(t, result.Embargo.Motivations, 1)
}

func TestSubmitConclusionRequestIncompleteEmbargoRollsBack(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusOngoing)

	payload := validPayload()
	payload.Embargo = &EmbargoInput{}

	_, err := SubmitConclusionRequest(db, student.ID, payload, stagedFiles(t, false))
	require.Error(t, err)
	assert.Equal(t, "Embargo data is incomplete", err.Error())

	// The transaction rolled back: no status change, no ledger row
	var reloaded models.Thesis
	require.NoError(t, db.First(&reloaded, thesis.ID).Error)
	assert.Equal(t, models.ThesisStatusOngoing, reloaded.Status)
	assert.Empty(t, historyRows(t, db, thesis.ThesisApplicationID))
}

func TestSubmitConclusionRequestUnknownLicense(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusOngoing)

	payload := validPayload()
	missing := uint(9999)
	payload.LicenseID = &missing

	_, err := SubmitConclusionRequest(db, student.ID, payload, stagedFiles(t, false))
	require.Error(t, err)
	assert.Equal(t, "License does not exist!", err.Error())

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusNotFound, status)

	var reloaded models.Thesis
	require.NoError(t, db.First(&reloaded, thesis.ID).Error)
	assert.Equal(t, models.ThesisStatusOngoing, reloaded.Status)
	assert.Nil(t, reloaded.LicenseID)
	assert.Empty(t, historyRows(t, db, thesis.ThesisApplicationID))
}
