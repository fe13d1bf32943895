package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/stoplicht/internal/timer"
)

// startRequest carries the minutes field as typed; both "5" and 5 are accepted.
type startRequest struct {
	Minutes json.RawMessage `json:"minutes"`
}

// rawMinutes turns the JSON value back into the text of the input field.
func (r startRequest) rawMinutes() string {
	raw := bytes.TrimSpace(r.Minutes)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	return string(raw)
}

func (h *Handler) getState(c *gin.Context) {
	st, err := h.snapshot(c.Request.Context())
	if err != nil {
		h.loopError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	var startErr error
	if err := h.loop.Do(c.Request.Context(), func() { startErr = h.ctrl.Start(req.rawMinutes()) }); err != nil {
		h.loopError(c, err)
		return
	}
	var invalid *timer.InvalidInputError
	if errors.As(startErr, &invalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Notice()})
		return
	}
	if startErr != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to start timer", "timer_start_failed", startErr)
		return
	}
	h.respondWithStatusAndState(c, statusStarted)
}

func (h *Handler) stop(c *gin.Context) {
	if err := h.loop.Do(c.Request.Context(), h.ctrl.Stop); err != nil {
		h.loopError(c, err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped)
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string) {
	resp := gin.H{"status": status}
	if st, err := h.snapshot(c.Request.Context()); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}
