package controllers

import (
	"log"
	"mime/multipart"

	"github.com/therossee/thesis-proposals-sub001/database"
	"github.com/therossee/thesis-proposals-sub001/middleware"
	"github.com/therossee/thesis-proposals-sub001/models"
	"github.com/therossee/thesis-proposals-sub001/services"
	"github.com/therossee/thesis-proposals-sub001/utils"

	"github.com/gofiber/fiber/v2"
)

// GetThesisConclusion returns the logged student's thesis with all its
// related collections.
func GetThesisConclusion(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var thesis models.Thesis
	if err := database.Database.Db.Where("student_id = ?", studentID).First(&thesis).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thesis not found for this student!", nil)
	}

	full, err := services.LoadThesisWithRelations(database.Database.Db, thesis.ID)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thesis fetched successfully!", full)
}

// SubmitThesisConclusion handles the student's conclusion request:
// multipart metadata plus the thesis, resume and additional zip files.
func SubmitThesisConclusion(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	payload, ok := c.Locals("conclusionPayload").(*services.ConclusionRequestPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	files, err := stageConclusionFiles(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded files!", nil)
	}
	// Staged temp files must not outlive the request; after a
	// successful move the temp path is already gone and the delete is
	// a no-op.
	defer cleanupStagedFiles(files)

	thesis, err := services.SubmitConclusionRequest(database.Database.Db, studentID, payload, files)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conclusion request submitted successfully!", thesis)
}

// SaveConclusionDraft persists the in-progress conclusion form and an
// optional draft file without touching the thesis status.
func SaveConclusionDraft(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	payload, ok := c.Locals("draftPayload").(*services.DraftPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if file, err := c.FormFile("draftFile"); err == nil && file != nil {
		if _, err := utils.SaveUploadedFile(file, utils.DraftDir(studentID)); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store draft file!", nil)
		}
	}

	thesis, err := services.SaveConclusionDraft(database.Database.Db, studentID, payload)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conclusion draft saved!", thesis)
}

// UploadFinalThesis stores the definitive files once the thesis is in
// the final exam stage.
func UploadFinalThesis(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	files, err := stageConclusionFiles(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded files!", nil)
	}
	defer cleanupStagedFiles(files)

	thesis, err := services.UploadFinalThesis(database.Database.Db, studentID, files)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final thesis uploaded successfully!", thesis)
}

// GetConclusionDeadlines resolves the applicable deadline for the
// logged student.
func GetConclusionDeadlines(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	deadline, err := services.ResolveDeadline(database.Database.Db, studentID)
	if err != nil {
		status, message := services.HttpStatus(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deadline resolved successfully!", deadline)
}

// stageConclusionFiles saves the request's multipart files into the
// temporary upload area.
func stageConclusionFiles(c *fiber.Ctx) (*services.ConclusionFiles, error) {
	files := &services.ConclusionFiles{}

	stage := func(field string) (*services.UploadedFile, error) {
		file, err := c.FormFile(field)
		if err != nil || file == nil {
			return nil, nil
		}
		return stageUpload(file)
	}

	var err error
	if files.Thesis, err = stage("thesisFile"); err != nil {
		cleanupStagedFiles(files)
		return nil, err
	}
	if files.Resume, err = stage("thesisResume"); err != nil {
		cleanupStagedFiles(files)
		return nil, err
	}
	if files.AdditionalZip, err = stage("additionalZip"); err != nil {
		cleanupStagedFiles(files)
		return nil, err
	}

	return files, nil
}

func stageUpload(file *multipart.FileHeader) (*services.UploadedFile, error) {
	tempPath, err := utils.SaveTempUpload(file)
	if err != nil {
		return nil, err
	}
	return &services.UploadedFile{TempPath: tempPath, Filename: file.Filename}, nil
}

// cleanupStagedFiles best-effort deletes any staged temp files still
// on disk. Delete failures are logged, never surfaced.
func cleanupStagedFiles(files *services.ConclusionFiles) {
	if files == nil {
		return
	}
	for _, file := range []*services.UploadedFile{files.Thesis, files.Resume, files.AdditionalZip} {
		if file == nil {
			continue
		}
		if err := utils.DeleteIfExists(file.TempPath); err != nil {
			log.Printf("Failed to clean up temp upload %s: %v", file.TempPath, err)
		}
	}
}
