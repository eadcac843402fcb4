package thesisRoutes

import (
	controllers "github.com/therossee/thesis-proposals-sub001/controllers/thesis"
	"github.com/therossee/thesis-proposals-sub001/middleware"
	validators "github.com/therossee/thesis-proposals-sub001/validators/thesis"

	"github.com/gofiber/fiber/v2"
)

// SetupThesisConclusionRoutes sets up the student-facing conclusion
// workflow routes
func SetupThesisConclusionRoutes(app *fiber.App) {
	conclusionGroup := app.Group("/api/thesis-conclusion")

	conclusionGroup.Get("/", middleware.StudentSession, controllers.GetThesisConclusion)
	conclusionGroup.Post("/", middleware.StudentSession, validators.ConclusionRequest(), controllers.SubmitThesisConclusion)
	conclusionGroup.Post("/draft", middleware.StudentSession, validators.DraftRequest(), controllers.SaveConclusionDraft)
	conclusionGroup.Post("/upload-final-thesis", middleware.StudentSession, controllers.UploadFinalThesis)
	conclusionGroup.Get("/deadlines", middleware.StudentSession, controllers.GetConclusionDeadlines)
}

// SetupTestRoutes sets up the administrative/test-triggered transition
// routes
func SetupTestRoutes(app *fiber.App) {
	testGroup := app.Group("/api/test")

	testGroup.Post("/logged-student", validators.LoggedStudent(), controllers.TestLoggedStudent)
	testGroup.Put("/thesis-application", validators.ApplicationTransition(), controllers.TransitionThesisApplication)
	testGroup.Put("/thesis-conclusion", validators.ConclusionTransition(), controllers.TransitionThesisConclusion)
}
