// Package board serves the traffic light to a classroom screen over HTTP.
package board

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/akyairhashvil/stoplicht/internal/display"
	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/metrics"
	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
	"github.com/akyairhashvil/stoplicht/internal/timer"
)

//go:embed static
var staticFiles embed.FS

const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"

	errInvalidBodyPref = "invalid body: "
	errLoopStopped     = "timer is shutting down"
)

// Deps are the collaborators the board drives. Controller and Tasks are
// only touched from inside Loop.
type Deps struct {
	Controller *timer.Controller
	Loop       *timer.Loop
	Display    *display.Panel
	Tasks      *taskpanel.Panel
	Registry   *prom.Registry
	AssetDir   string
	Log        *logger.Logger
}

// Handler wires HTTP routes to the timer loop.
type Handler struct {
	ctrl     *timer.Controller
	loop     *timer.Loop
	display  *display.Panel
	tasks    *taskpanel.Panel
	reg      *prom.Registry
	assetDir string
	log      *logger.Logger
}

func NewHandler(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		ctrl:     d.Controller,
		loop:     d.Loop,
		display:  d.Display,
		tasks:    d.Tasks,
		reg:      d.Registry,
		assetDir: d.AssetDir,
		log:      log,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/health", h.health)
	h.registerAPIRoutes(router)
	router.GET("/ws", h.wsConnect)

	if h.reg != nil {
		router.GET("/metrics", gin.WrapH(metrics.HTTPHandler(h.reg)))
	}
	if h.assetDir != "" {
		router.Static("/assets", h.assetDir)
	}
	sub, _ := fs.Sub(staticFiles, "static")
	router.StaticFS("/static", http.FS(sub))
	router.GET("/", h.index)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/state", h.getState)
		api.POST("/start", h.start)
		api.POST("/stop", h.stop)

		tasks := api.Group("/tasks")
		tasks.GET("", h.listTasks)
		tasks.GET("/:slot/options", h.taskOptions)
		tasks.POST("/:slot/selection", h.selectTask)
		tasks.POST("/:slot/annotation", h.annotateTask)
	}
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

func (h *Handler) index(c *gin.Context) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "page missing", "index_read_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// timerView is the JSON shape of the countdown.
type timerView struct {
	Phase            string  `json:"phase"`
	TotalSeconds     int     `json:"total_seconds"`
	RemainingSeconds int     `json:"remaining_seconds"`
	Progress         float64 `json:"progress"`
	MaxMinutes       int     `json:"max_minutes"`
}

// boardState is what /api/state and the websocket deliver.
type boardState struct {
	Display models.DisplaySnapshot `json:"display"`
	Timer   timerView              `json:"timer"`
	Tasks   []taskpanel.View       `json:"tasks"`
}

// snapshot reads controller state on the loop and the rest directly.
func (h *Handler) snapshot(ctx context.Context) (boardState, error) {
	var st models.TimerState
	var maxMinutes int
	if err := h.loop.Do(ctx, func() {
		st = h.ctrl.State()
		maxMinutes = h.ctrl.MaxMinutes()
	}); err != nil {
		return boardState{}, err
	}
	out := boardState{
		Timer: timerView{
			Phase:            st.Phase.String(),
			TotalSeconds:     st.TotalSeconds,
			RemainingSeconds: st.RemainingSeconds,
			Progress:         st.Progress(),
			MaxMinutes:       maxMinutes,
		},
	}
	if h.display != nil {
		out.Display = h.display.Snapshot()
	}
	if h.tasks != nil {
		out.Tasks = h.tasks.Views()
	}
	return out, nil
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// loopError maps a failed loop call to a response.
func (h *Handler) loopError(c *gin.Context, err error) {
	if errors.Is(err, timer.ErrLoopStopped) {
		h.logAndJSONError(c, http.StatusServiceUnavailable, errLoopStopped, "timer_loop_stopped", err)
		return
	}
	h.logAndJSONError(c, http.StatusGatewayTimeout, err.Error(), "timer_loop_call_failed", err)
}
