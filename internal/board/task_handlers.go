package board

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
)

type selectionRequest struct {
	Asset string `json:"asset"`
}

type annotationRequest struct {
	Text     string `json:"text"`
	PageFrom int    `json:"page_from"`
	PageTo   int    `json:"page_to"`
}

func (h *Handler) slotParam(c *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task slot"})
		return 0, false
	}
	return slot, true
}

func (h *Handler) listTasks(c *gin.Context) {
	if h.tasks == nil {
		c.JSON(http.StatusOK, gin.H{"tasks": []taskpanel.View{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": h.tasks.Views()})
}

func (h *Handler) taskOptions(c *gin.Context) {
	slot, ok := h.slotParam(c)
	if !ok {
		return
	}
	if h.tasks == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task slot"})
		return
	}
	opts, err := h.tasks.Options(slot)
	if err != nil {
		h.taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot, "options": opts})
}

func (h *Handler) selectTask(c *gin.Context) {
	slot, ok := h.slotParam(c)
	if !ok {
		return
	}
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.updateTask(c, func() error { return h.tasks.SelectionChanged(slot, req.Asset) })
}

func (h *Handler) annotateTask(c *gin.Context) {
	slot, ok := h.slotParam(c)
	if !ok {
		return
	}
	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	h.updateTask(c, func() error {
		return h.tasks.AnnotationChanged(slot, taskpanel.Annotation{Text: req.Text, PageFrom: req.PageFrom, PageTo: req.PageTo})
	})
}

// updateTask applies fn on the loop so task edits interleave with timer commands in order.
func (h *Handler) updateTask(c *gin.Context, fn func() error) {
	if h.tasks == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task slot"})
		return
	}
	var taskErr error
	if err := h.loop.Do(c.Request.Context(), func() { taskErr = fn() }); err != nil {
		h.loopError(c, err)
		return
	}
	if taskErr != nil {
		h.taskError(c, taskErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "tasks": h.tasks.Views()})
}

func (h *Handler) taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, taskpanel.ErrUnknownSlot):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, taskpanel.ErrUnknownAsset):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update task", "task_update_failed", err)
	}
}
