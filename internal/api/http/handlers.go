package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"worktime/internal/api"
)

// Handler exposes the business API over JSON
type Handler struct {
	api api.BusinessAPI
	log *slog.Logger
}

func NewHandler(businessAPI api.BusinessAPI, logger *slog.Logger) *Handler {
	return &Handler{api: businessAPI, log: logger}
}

type createProjectReq struct {
	Name string `json:"name"`
}

type clockReq struct {
	At *time.Time `json:"at"`
}

type registerReq struct {
	IDs []int64 `json:"ids"`
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.api.ListProjects(c.Request.Context(), c.Query("since"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}

	project, err := h.api.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": project})
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.api.GetProject(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": project})
}

func (h *Handler) removeProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.api.RemoveProject(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) clockIn(c *gin.Context) {
	id, at, ok := clockParams(c)
	if !ok {
		return
	}

	interval, err := h.api.ClockIn(c.Request.Context(), id, at)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "interval": interval})
}

func (h *Handler) clockOut(c *gin.Context) {
	id, at, ok := clockParams(c)
	if !ok {
		return
	}

	interval, err := h.api.ClockOut(c.Request.Context(), id, at)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "interval": interval})
}

func (h *Handler) toggle(c *gin.Context) {
	id, at, ok := clockParams(c)
	if !ok {
		return
	}

	project, err := h.api.ToggleClock(c.Request.Context(), id, at)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": project})
}

func (h *Handler) timesheet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "offset must be an integer")
			return
		}
		offset = parsed
	}

	var hide *bool
	if raw := c.Query("hide_registered"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "hide_registered must be a boolean")
			return
		}
		hide = &parsed
	}

	timesheet, err := h.api.GetTimesheet(c.Request.Context(), id, offset, hide)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "timesheet": timesheet})
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}

	intervals, err := h.api.ToggleRegistered(c.Request.Context(), req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "intervals": intervals})
}

func (h *Handler) removeTime(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.api.RemoveTime(c.Request.Context(), []int64{id}); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// clockParams reads the project ID and the optional instant. An empty body
// means now.
func clockParams(c *gin.Context) (int64, *time.Time, bool) {
	id, ok := pathID(c)
	if !ok {
		return 0, nil, false
	}

	var req clockReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "at must be an RFC 3339 timestamp")
		return 0, nil, false
	}
	return id, req.At, true
}
