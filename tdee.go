package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/metrics"
	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

// listActivityLevels returns the activity labels with their TDEE multipliers,
// least active first.
// GET /api/activity-levels.
func (h *Handler) listActivityLevels(c *gin.Context) {
	p, _ := wizard.PromptForField(wizard.FieldActivityLevel)
	table := tdee.Multipliers()

	out := make([]activityLevelResponse, 0, len(p.Choices))
	for _, choice := range p.Choices {
		out = append(out, activityLevelResponse{
			Level:      choice.Value,
			Label:      choice.Label,
			Multiplier: table[tdee.ActivityLevel(choice.Value)],
		})
	}
	c.JSON(http.StatusOK, out)
}

// calculateTDEE computes a result from all eight fields submitted at once, the
// single-form alternative to the step-by-step wizard. Every field except
// activity_level (defaults to moderate) is required.
// POST /api/tdee.
func (h *Handler) calculateTDEE(c *gin.Context) {
	var body tdee.Fields
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := wizard.DraftFrom(body)
	if missing := draft.Missing(); len(missing) > 0 {
		metrics.IncCalculation(string(apperr.MissingField))
		h.apiAppError(c, apperr.Field(apperr.MissingField, string(missing[0]), "please fill in all fields"))
		return
	}

	res, err := tdee.CalculateFields(draft.Fields())
	metrics.IncCalculation(metrics.Outcome(string(apperr.CodeOf(err)), err))
	if err != nil {
		h.log.Info("calculation rejected", zap.Error(err))
		h.apiAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResultResponse(draft, res))
}
