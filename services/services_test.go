package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/therossee/thesis-proposals-sub001/config"
	"github.com/therossee/thesis-proposals-sub001/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDb opens a fresh in-memory database with the full schema.
func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.DegreeProgramme{},
		&models.Teacher{},
		&models.Company{},
		&models.ThesisProposal{},
		&models.ThesisApplication{},
		&models.ThesisApplicationSupervisorCoSupervisor{},
		&models.ThesisApplicationStatusHistory{},
		&models.Thesis{},
		&models.ThesisSupervisorCoSupervisor{},
		&models.License{},
		&models.SustainableDevelopmentGoal{},
		&models.ThesisSustainableDevelopmentGoal{},
		&models.Keyword{},
		&models.ThesisKeyword{},
		&models.Motivation{},
		&models.ThesisEmbargo{},
		&models.ThesisEmbargoMotivation{},
		&models.GraduationSession{},
		&models.Deadline{},
	))

	return db
}

// setupTestConfig points the upload root at a per-test directory.
func setupTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		UploadRoot: t.TempDir(),
		JWTKey:     "test-secret",
	}
}

func seedStudent(t *testing.T, db *gorm.DB, collegio string) *models.Student {
	t.Helper()

	programme := models.DegreeProgramme{
		Code:       "LM-" + uuid.NewString()[:8],
		Name:       "Computer Engineering",
		IDCollegio: collegio,
		Level:      "MSC",
	}
	require.NoError(t, db.Create(&programme).Error)

	student := models.Student{
		Matricola:         "s" + uuid.NewString()[:8],
		FirstName:         "Ada",
		LastName:          "Lovelace",
		Email:             uuid.NewString()[:8] + "@studenti.example.it",
		DegreeProgrammeID: programme.ID,
	}
	require.NoError(t, db.Create(&student).Error)
	return &student
}

func seedTeacher(t *testing.T, db *gorm.DB) *models.Teacher {
	t.Helper()

	teacher := models.Teacher{
		Matricola: "d" + uuid.NewString()[:8],
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     uuid.NewString()[:8] + "@example.it",
	}
	require.NoError(t, db.Create(&teacher).Error)
	return &teacher
}

// seedApplication creates a pending application with one supervisor
// and the given number of co-supervisors.
func seedApplication(t *testing.T, db *gorm.DB, student *models.Student, coSupervisors int) *models.ThesisApplication {
	t.Helper()

	application := models.ThesisApplication{
		Topic:          "Formal verification of state machines",
		StudentID:      student.ID,
		SubmissionDate: time.Now(),
		Status:         models.ApplicationStatusPending,
	}
	require.NoError(t, db.Create(&application).Error)

	supervisor := seedTeacher(t, db)
	require.NoError(t, db.Create(&models.ThesisApplicationSupervisorCoSupervisor{
		ThesisApplicationID: application.ID,
		TeacherID:           supervisor.ID,
		IsSupervisor:        true,
	}).Error)

	for i := 0; i < coSupervisors; i++ {
		co := seedTeacher(t, db)
		require.NoError(t, db.Create(&models.ThesisApplicationSupervisorCoSupervisor{
			ThesisApplicationID: application.ID,
			TeacherID:           co.ID,
			IsSupervisor:        false,
		}).Error)
	}

	return &application
}

// seedThesis creates a thesis in the given status, backed by an
// approved application of the same student.
func seedThesis(t *testing.T, db *gorm.DB, student *models.Student, status string) *models.Thesis {
	t.Helper()

	application := models.ThesisApplication{
		Topic:          "Formal verification of state machines",
		StudentID:      student.ID,
		SubmissionDate: time.Now(),
		Status:         models.ApplicationStatusApproved,
	}
	require.NoError(t, db.Create(&application).Error)

	now := time.Now()
	thesis := models.Thesis{
		ThesisApplicationID: application.ID,
		StudentID:           student.ID,
		Topic:               application.Topic,
		Status:              status,
		ThesisStartDate:     &now,
	}
	require.NoError(t, db.Create(&thesis).Error)
	return &thesis
}

// writePDFA writes a minimal PDF file carrying the PDF/A
// identification tag and returns its path.
func writePDFA(t *testing.T, dir string) string {
	t.Helper()

	content := "%PDF-1.7\n" +
		"<x:xmpmeta xmlns:pdfaid=\"http://www.aiim.org/pdfa/ns/id/\">pdfaid:part=\"2\" pdfaid:conformance=\"B\"</x:xmpmeta>\n" +
		"%%EOF\n"
	path := filepath.Join(dir, uuid.NewString()+".pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writePlainPDF writes a PDF without PDF/A metadata.
func writePlainPDF(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, uuid.NewString()+".pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\nno metadata\n%%EOF\n"), 0644))
	return path
}

func historyRows(t *testing.T, db *gorm.DB, applicationID uint) []models.ThesisApplicationStatusHistory {
	t.Helper()

	var rows []models.ThesisApplicationStatusHistory
	require.NoError(t, db.Where("thesis_application_id = ?", applicationID).Order("id asc").Find(&rows).Error)
	return rows
}
