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

func TestUploadFinalThesisHappyPath(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusFinalExam)

	files := stagedFiles(t, false)
	result, err := UploadFinalThesis(db, student.ID, files)
	require.NoError(t, err)

	assert.Equal(t, models.ThesisStatusFinalThesis, result.Status)
	assert.NotEmpty(t, result.ThesisFilePath)

	// Final files live in their own directory, apart from the
	// conclusion-request uploads
	stored := filepath.Join(config.AppConfig.UploadRoot, result.ThesisFilePath)
	assert.Contains(t, stored, "final_thesis")
	_, err = os.Stat(stored)
	require.NoError(t, err)

	rows := historyRows(t, db, thesis.ThesisApplicationID)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].OldStatus)
	assert.Equal(t, models.ThesisStatusFinalExam, *rows[0].OldStatus)
	assert.Equal(t, models.ThesisStatusFinalThesis, rows[0].NewStatus)
}

func TestUploadFinalThesisWrongState(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusOngoing)

	_, err := UploadFinalThesis(db, student.ID, stagedFiles(t, false))
	require.Error(t, err)
	assert.Equal(t, "Thesis is not in a final exam state", err.Error())

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var reloaded models.Thesis
	require.NoError(t, db.First(&reloaded, thesis.ID).Error)
	assert.Equal(t, models.ThesisStatusOngoing, reloaded.Status)
}

func TestUploadFinalThesisMissingFile(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	seedThesis(t, db, student, models.ThesisStatusFinalExam)

	_, err := UploadFinalThesis(db, student.ID, &ConclusionFiles{})
	require.Error(t, err)
	assert.Equal(t, "Thesis file is required!", err.Error())
}

func TestUploadFinalThesisResumeRequiredUnlessOnFile(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL003")
	thesis := seedThesis(t, db, student, models.ThesisStatusFinalExam)

	// No resume at all: rejected for CL003 students
	_, err := UploadFinalThesis(db, student.ID, stagedFiles(t, false))
	require.Error(t, err)

	status, _ := HttpStatus(err)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// A resume already on file from the conclusion request satisfies
	// the rule
	require.NoError(t, db.Model(thesis).Update("thesis_resume_path", "thesis_conclusion_request/1/resume_1.pdf").Error)

	result, err := UploadFinalThesis(db, student.ID, stagedFiles(t, false))
	require.NoError(t, err)
	assert.Equal(t, models.ThesisStatusFinalThesis, result.Status)
}

func TestUploadFinalThesisRejectsNonPDFA(t *testing.T) {
	setupTestConfig(t)
	db := newTestDb(t)
	student := seedStudent(t, db, "CL001")
	thesis := seedThesis(t, db, student, models.ThesisStatusFinalExam)

	files := &ConclusionFiles{
		Thesis: &UploadedFile{TempPath: writePlainPDF(t, t.TempDir()), Filename: "thesis.pdf"},
	}

	_, err := UploadFinalThesis(db, student.ID, files)
	require.Error(t, err)

	var reloaded models.Thesis
	require.NoError(t, db.First(&reloaded, thesis.ID).Error)
	assert.Equal(t, models.ThesisStatusFinalExam, reloaded.Status)
	assert.Empty(t, historyRows(t, db, thesis.ThesisApplicationID))
}
