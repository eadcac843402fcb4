package controllers

import (
	"log"

	"github.com/therossee/thesis-proposals-sub001/database"
	"github.com/therossee/thesis-proposals-sub001/middleware"
	"github.com/therossee/thesis-proposals-sub001/models"
	"github.com/therossee/thesis-proposals-sub001/services"
	"github.com/therossee/thesis-proposals-sub001/utils"

	"github.com/gofiber/fiber/v2"
)

// TestLoggedStudent issues a session token for a student id. Test aid
// replacing a full login flow.
func TestLoggedStudent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLoggedStudent").(*struct {
		StudentID uint `json:"studentId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var student models.Student
	if err := database.Database.Db.First(&student, reqData.StudentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	token, err := middleware.GenerateStudentToken(student.ID, student.Matricola, student.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate session token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged student session created!", fiber.Map{"token": token})
}

// TransitionThesisApplication moves an application through the
// application state machine.
func TransitionThesisApplication(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedApplicationTransition").(*struct {
		ID        uint   `json:"id"`
		NewStatus string `json:"new_status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.TransitionApplication(database.Database.Db, reqData.ID, reqData.NewStatus)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	notifyApplicationStatus(result.Application, reqData.NewStatus)

	if result.Thesis != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Application approved, thesis created!", result.Thesis)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application status updated!", result.Application)
}

// TransitionThesisConclusion moves a thesis along the conclusion
// lifecycle graph.
func TransitionThesisConclusion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedConclusionTransition").(*struct {
		ThesisID         uint   `json:"thesisId"`
		ConclusionStatus string `json:"conclusionStatus"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	thesis, err := services.TransitionConclusion(database.Database.Db, reqData.ThesisID, reqData.ConclusionStatus)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	notifyConclusionStatus(thesis, reqData.ConclusionStatus)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thesis status updated!", thesis)
}

// notifyApplicationStatus emails the student on approval or rejection.
// Best effort: failures are logged and swallowed.
func notifyApplicationStatus(application *models.ThesisApplication, newStatus string) {
	if newStatus != models.ApplicationStatusApproved && newStatus != models.ApplicationStatusRejected {
		return
	}

	var student models.Student
	if err := database.Database.Db.First(&student, application.StudentID).Error; err != nil {
		return
	}
	name := student.FirstName + " " + student.LastName
	if err := utils.SendApplicationStatusEmail(student.Email, name, application.Topic, newStatus); err != nil {
		log.Printf("Failed to send application status email to %s: %v", student.Email, err)
	}
}

// notifyConclusionStatus handles the conclusion-stage side
// notifications: approval email and AlmaLaurea registry ping. Both are
// best effort and never block the transition.
func notifyConclusionStatus(thesis *models.Thesis, newStatus string) {
	var student models.Student
	if err := database.Database.Db.First(&student, thesis.StudentID).Error; err != nil {
		return
	}

	switch newStatus {
	case models.ThesisStatusConclusionApproved:
		name := student.FirstName + " " + student.LastName
		if err := utils.SendConclusionApprovedEmail(student.Email, name, thesis.Title); err != nil {
			log.Printf("Failed to send conclusion approved email to %s: %v", student.Email, err)
		}
	case models.ThesisStatusAlmalaurea:
		registration := utils.AlmaLaureaRegistration{
			Matricola: student.Matricola,
			Title:     thesis.Title,
			Language:  thesis.Language,
		}
		if err := utils.NotifyAlmaLaurea(registration); err != nil {
			log.Printf("AlmaLaurea notification failed for student %s: %v", student.Matricola, err)
		}
	}
}
