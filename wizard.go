package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/metrics"
	"lg/tdee-wizard/internal/wizard"
)

// createWizard opens a new wizard session at the Welcome step.
// POST /api/wizard.
func (h *Handler) createWizard(c *gin.Context) {
	sess := h.sessions.Create()
	h.log.Debug("wizard session created", zap.String("session_id", sess.ID))
	c.JSON(http.StatusCreated, newWizardResponse(sess.ID, sess.State))
}

// getWizard returns the session's current step, prompt and draft.
// GET /api/wizard/:id.
func (h *Handler) getWizard(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.apiAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWizardResponse(sess.ID, sess.State))
}

// deleteWizard abandons a session. Returns 204 on success, 404 if not found.
// DELETE /api/wizard/:id.
func (h *Handler) deleteWizard(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		h.apiAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// startWizard leaves the Welcome step ("Get Started").
// POST /api/wizard/:id/start.
func (h *Handler) startWizard(c *gin.Context) {
	h.dispatch(c, wizard.GetStarted{})
}

// setWizardField records the text entered for one field without advancing.
// PUT /api/wizard/:id/fields/:field. Body: { "value": "70" }.
func (h *Handler) setWizardField(c *gin.Context) {
	var body setFieldRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	field, ok := wizard.ParseField(c.Param("field"))
	if !ok {
		h.apiAppError(c, apperr.Field(apperr.InvalidInput, c.Param("field"), "unknown field"))
		return
	}
	h.dispatch(c, wizard.SetField{Field: field, Value: *body.Value})
}

// nextWizard advances one step. An empty current field answers 400
// MISSING_FIELD and leaves the step where it was.
// POST /api/wizard/:id/next.
func (h *Handler) nextWizard(c *gin.Context) {
	h.dispatch(c, wizard.Next{})
}

// submitWizard finishes the wizard on the last step and returns the result.
// The session is discarded on success. If a field fails to parse the answer
// is 422 INVALID_INPUT and the session stays open for the field to be fixed.
// POST /api/wizard/:id/submit.
func (h *Handler) submitWizard(c *gin.Context) {
	id := c.Param("id")
	state, res, err := h.sessions.Submit(id)

	outcome := metrics.Outcome(string(apperr.CodeOf(err)), err)
	metrics.IncTransition(wizard.Submit{}.Name(), outcome)
	if err != nil {
		if apperr.Is(err, apperr.InvalidInput) {
			metrics.IncCalculation(outcome)
		}
		h.log.Info("wizard submit rejected", zap.String("session_id", id), zap.Error(err))
		h.apiAppError(c, err)
		return
	}
	metrics.IncCalculation(outcome)

	profile, _ := state.Profile()
	h.log.Info("wizard completed",
		zap.String("session_id", id),
		zap.Float64("tdee", res.TDEE))
	c.JSON(http.StatusOK, newResultResponse(profile, res))
}

// dispatch applies a to the session named by :id and answers with the
// resulting state, or with the error and the unchanged state's status code.
func (h *Handler) dispatch(c *gin.Context, a wizard.Action) {
	id := c.Param("id")
	sess, err := h.sessions.Dispatch(id, a)
	metrics.IncTransition(a.Name(), metrics.Outcome(string(apperr.CodeOf(err)), err))
	if err != nil {
		h.log.Debug("wizard action rejected",
			zap.String("session_id", id),
			zap.String("action", a.Name()),
			zap.Error(err))
		h.apiAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWizardResponse(sess.ID, sess.State))
}
