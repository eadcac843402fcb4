package thesisValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/therossee/thesis-proposals-sub001/middleware"
	"github.com/therossee/thesis-proposals-sub001/models"
	"github.com/therossee/thesis-proposals-sub001/services"

	"github.com/gofiber/fiber/v2"
)

func LoggedStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentID uint `json:"studentId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.StudentID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student ID is required!", nil)
		}

		c.Locals("validatedLoggedStudent", reqData)
		return c.Next()
	}
}

func ApplicationTransition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID        uint   `json:"id"`
			NewStatus string `json:"new_status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ID == 0 {
			errors["id"] = "Application ID is required!"
		}
		if strings.TrimSpace(reqData.NewStatus) == "" {
			errors["new_status"] = "New status is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApplicationTransition", reqData)
		return c.Next()
	}
}

func ConclusionTransition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ThesisID         uint   `json:"thesisId"`
			ConclusionStatus string `json:"conclusionStatus"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ThesisID == 0 {
			errors["thesisId"] = "Thesis ID is required!"
		}
		if strings.TrimSpace(reqData.ConclusionStatus) == "" {
			errors["conclusionStatus"] = "Conclusion status is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConclusionTransition", reqData)
		return c.Next()
	}
}

// ConclusionRequest parses the multipart text fields of a conclusion
// request. Array and object fields arrive as JSON-encoded strings.
func ConclusionRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := &services.ConclusionRequestPayload{
			Title:       strings.TrimSpace(c.FormValue("title")),
			TitleEng:    strings.TrimSpace(c.FormValue("titleEng")),
			Abstract:    strings.TrimSpace(c.FormValue("abstract")),
			AbstractEng: strings.TrimSpace(c.FormValue("abstractEng")),
			Language:    strings.TrimSpace(c.FormValue("language")),
		}

		if payload.Language == "" {
			payload.Language = models.LanguageItalian
		}
		if payload.Language != models.LanguageItalian && payload.Language != models.LanguageEnglish {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid thesis language!", nil)
		}

		if raw := c.FormValue("licenseId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid license ID!", nil)
			}
			licenseID := uint(id)
			payload.LicenseID = &licenseID
		}

		if err := parseJSONField(c, "coSupervisorIds", &payload.CoSupervisorIDs); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid co-supervisors payload!", nil)
		}
		if err := parseJSONField(c, "sdgs", &payload.Sdgs); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sustainable development goals payload!", nil)
		}
		if err := parseJSONField(c, "keywordIds", &payload.KeywordIDs); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid keywords payload!", nil)
		}
		if err := parseJSONField(c, "keywordsOther", &payload.KeywordsOther); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid keywords payload!", nil)
		}
		if err := parseJSONField(c, "embargo", &payload.Embargo); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid embargo payload!", nil)
		}

		c.Locals("conclusionPayload", payload)
		return c.Next()
	}
}

// DraftRequest parses the multipart text fields of a draft save.
func DraftRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := &services.DraftPayload{
			Title:       strings.TrimSpace(c.FormValue("title")),
			TitleEng:    strings.TrimSpace(c.FormValue("titleEng")),
			Abstract:    strings.TrimSpace(c.FormValue("abstract")),
			AbstractEng: strings.TrimSpace(c.FormValue("abstractEng")),
			Language:    strings.TrimSpace(c.FormValue("language")),
		}

		if payload.Language != "" &&
			payload.Language != models.LanguageItalian && payload.Language != models.LanguageEnglish {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid thesis language!", nil)
		}

		if err := parseJSONField(c, "coSupervisorIds", &payload.CoSupervisorIDs); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid co-supervisors payload!", nil)
		}

		c.Locals("draftPayload", payload)
		return c.Next()
	}
}

// parseJSONField decodes a JSON-encoded multipart text field into out.
// An absent or empty field is not an error.
func parseJSONField(c *fiber.Ctx, field string, out interface{}) error {
	raw := c.FormValue(field)
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}
