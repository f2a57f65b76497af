package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/models/request_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type SessionController struct {
	sessions services.SessionServiceInterface
}

func NewSessionController(sessions services.SessionServiceInterface) *SessionController {
	return &SessionController{sessions: sessions}
}

// SaveSession godoc
// @Summary Save a planner session under a name
// @Tags Session
// @Accept json
// @Produce json
// @Param name path string true "Session name"
// @Param request body request_models.SaveSessionRequest true "Session document"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /sessions/{name} [put]
func (s *SessionController) SaveSession(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session name is required")
		return
	}

	var req request_models.SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.sessions.Save(c.Request.Context(), name, &req.Session); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session saved successfully")
}

// LoadSession godoc
// @Summary Load a saved planner session
// @Tags Session
// @Produce json
// @Param name path string true "Session name"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{name} [get]
func (s *SessionController) LoadSession(c *gin.Context) {
	session, err := s.sessions.Load(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, session, "Session loaded successfully")
}

// ListSessions godoc
// @Summary List saved planner sessions
// @Tags Session
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /sessions [get]
func (s *SessionController) ListSessions(c *gin.Context) {
	summaries, err := s.sessions.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, summaries, "Sessions listed successfully")
}

// DeleteSession godoc
// @Summary Delete a saved planner session
// @Tags Session
// @Produce json
// @Param name path string true "Session name"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{name} [delete]
func (s *SessionController) DeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), c.Param("name")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session deleted successfully")
}
