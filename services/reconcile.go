package services

import (
	"strings"

	"github.com/therossee/thesis-proposals-sub001/models"

	"gorm.io/gorm"
)

// SdgInput is one requested SDG association.
type SdgInput struct {
	GoalID uint    `json:"goalId"`
	Level  *string `json:"level"` // primary, secondary or null
}

// EmbargoMotivationInput is one requested embargo motivation; a
// free-text other may sit alongside the catalog id.
type EmbargoMotivationInput struct {
	MotivationID *uint   `json:"motivationId"`
	Other        *string `json:"other"`
}

// EmbargoInput is the requested embargo payload.
type EmbargoInput struct {
	Duration    *string                  `json:"duration"`
	Motivations []EmbargoMotivationInput `json:"motivations"`
}

var embargoDurations = map[string]bool{
	models.EmbargoDuration12Months:     true,
	models.EmbargoDuration18Months:     true,
	models.EmbargoDuration36Months:     true,
	models.EmbargoDurationAfterConsent: true,
}

// reconcileCoSupervisors sets the thesis co-supervisor rows of the
// given scope to match teacherIDs. Idempotent: when the requested set
// equals the current one no destroy or create runs. The supervisor row
// (is_supervisor=true) is never touched.
func reconcileCoSupervisors(tx *gorm.DB, thesisID uint, teacherIDs []uint, scope string) error {
	var current []models.ThesisSupervisorCoSupervisor
	if err := tx.Where("thesis_id = ? AND is_supervisor = ? AND scope = ?", thesisID, false, scope).
		Find(&current).Error; err != nil {
		return err
	}

	currentSet := make(map[uint]bool, len(current))
	for _, link := range current {
		currentSet[link.TeacherID] = true
	}
	requestedSet := make(map[uint]bool, len(teacherIDs))
	for _, id := range teacherIDs {
		requestedSet[id] = true
	}

	// Symmetric difference: nothing to do when the sets already match.
	changed := len(currentSet) != len(requestedSet)
	if !changed {
		for id := range requestedSet {
			if !currentSet[id] {
				changed = true
				break
			}
		}
	}
	if !changed {
		return nil
	}

	if len(requestedSet) > 0 {
		ids := make([]uint, 0, len(requestedSet))
		for id := range requestedSet {
			ids = append(ids, id)
		}
		var count int64
		if err := tx.Model(&models.Teacher{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return NotFoundError("One or more co-supervisors do not exist!")
		}
	}

	if err := tx.Unscoped().
		Where("thesis_id = ? AND is_supervisor = ? AND scope = ?", thesisID, false, scope).
		Delete(&models.ThesisSupervisorCoSupervisor{}).Error; err != nil {
		return err
	}

	if len(requestedSet) == 0 {
		return nil
	}

	links := make([]models.ThesisSupervisorCoSupervisor, 0, len(requestedSet))
	for id := range requestedSet {
		links = append(links, models.ThesisSupervisorCoSupervisor{
			ThesisID:     thesisID,
			TeacherID:    id,
			IsSupervisor: false,
			Scope:        scope,
		})
	}
	return tx.Create(&links).Error
}

// reconcileSdgs replaces the full SDG set of the thesis. Duplicate
// goal ids collapse to one row; the primary level always wins over
// secondary regardless of input order.
func reconcileSdgs(tx *gorm.DB, thesisID uint, sdgs []SdgInput) error {
	deduped := make(map[uint]*string, len(sdgs))
	order := make([]uint, 0, len(sdgs))
	for _, sdg := range sdgs {
		sdg := sdg
		existing, seen := deduped[sdg.GoalID]
		if !seen {
			deduped[sdg.GoalID] = sdg.Level
			order = append(order, sdg.GoalID)
			continue
		}
		// primary always wins on conflict
		if existing == nil || *existing != models.SdgLevelPrimary {
			deduped[sdg.GoalID] = sdg.Level
		}
	}

	if len(order) > 0 {
		var count int64
		if err := tx.Model(&models.SustainableDevelopmentGoal{}).Where("id IN ?", order).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(order)) {
			return NotFoundError("One or more sustainable development goals do not exist!")
		}
	}

	if err := tx.Unscoped().Where("thesis_id = ?", thesisID).
		Delete(&models.ThesisSustainableDevelopmentGoal{}).Error; err != nil {
		return err
	}

	if len(order) == 0 {
		return nil
	}

	rows := make([]models.ThesisSustainableDevelopmentGoal, 0, len(order))
	for _, goalID := range order {
		rows = append(rows, models.ThesisSustainableDevelopmentGoal{
			ThesisID: thesisID,
			GoalID:   goalID,
			SdgLevel: deduped[goalID],
		})
	}
	return tx.Create(&rows).Error
}

// reconcileKeywords replaces the full keyword set of the thesis with
// the requested catalog ids and trimmed free-text keywords.
func reconcileKeywords(tx *gorm.DB, thesisID uint, keywordIDs []uint, others []string) error {
	if len(keywordIDs) > 0 {
		var count int64
		if err := tx.Model(&models.Keyword{}).Where("id IN ?", keywordIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(keywordIDs)) {
			return NotFoundError("One or more keywords do not exist!")
		}
	}

	if err := tx.Unscoped().Where("thesis_id = ?", thesisID).
		Delete(&models.ThesisKeyword{}).Error; err != nil {
		return err
	}

	rows := make([]models.ThesisKeyword, 0, len(keywordIDs)+len(others))
	for _, id := range keywordIDs {
		id := id
		rows = append(rows, models.ThesisKeyword{ThesisID: thesisID, KeywordID: &id})
	}
	for _, other := range others {
		trimmed := strings.TrimSpace(other)
		if trimmed == "" {
			continue
		}
		rows = append(rows, models.ThesisKeyword{ThesisID: thesisID, KeywordOther: &trimmed})
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// reconcileEmbargo destroys any prior embargo with its motivations and
// creates exactly one new embargo from the payload. A nil payload
// removes the embargo altogether.
func reconcileEmbargo(tx *gorm.DB, thesisID uint, embargo *EmbargoInput) error {
	if err := deleteEmbargo(tx, thesisID); err != nil {
		return err
	}
	if embargo == nil {
		return nil
	}

	if embargo.Duration == nil && len(embargo.Motivations) == 0 {
		return BadRequestError("Embargo data is incomplete")
	}
	if embargo.Duration == nil {
		return BadRequestError("Embargo duration is required")
	}
	if !embargoDurations[*embargo.Duration] {
		return BadRequestError("Invalid embargo duration!")
	}
	if len(embargo.Motivations) == 0 {
		return BadRequestError("At least one embargo motivation is required!")
	}

	row := models.ThesisEmbargo{
		ThesisID: thesisID,
		Duration: *embargo.Duration,
	}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}

	motivations := make([]models.ThesisEmbargoMotivation, 0, len(embargo.Motivations))
	for _, motivation := range embargo.Motivations {
		if motivation.MotivationID == nil {
			return BadRequestError("Embargo motivation is required!")
		}
		var count int64
		if err := tx.Model(&models.Motivation{}).Where("id = ?", *motivation.MotivationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return NotFoundError("Embargo motivation does not exist!")
		}
		motivations = append(motivations, models.ThesisEmbargoMotivation{
			ThesisEmbargoID: row.ID,
			MotivationID:    *motivation.MotivationID,
			OtherMotivation: motivation.Other,
		})
	}
	return tx.Create(&motivations).Error
}

// deleteEmbargo removes the embargo of the thesis, cascading its
// motivation rows first.
func deleteEmbargo(tx *gorm.DB, thesisID uint) error {
	var existing []models.ThesisEmbargo
	if err := tx.Where("thesis_id = ?", thesisID).Find(&existing).Error; err != nil {
		return err
	}
	for _, embargo := range existing {
		if err := tx.Unscoped().Where("thesis_embargo_id = ?", embargo.ID).
			Delete(&models.ThesisEmbargoMotivation{}).Error; err != nil {
			return err
		}
	}
	return tx.Unscoped().Where("thesis_id = ?", thesisID).
		Delete(&models.ThesisEmbargo{}).Error
}
