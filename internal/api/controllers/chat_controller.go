package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/agents"
	"tripflow/internal/models/request_models"
	"tripflow/pkg/utils"
)

type ChatController struct {
	factory *agents.AgentFactory
}

func NewChatController(factory *agents.AgentFactory) *ChatController {
	return &ChatController{factory: factory}
}

// StreamChat godoc
// @Summary Chat with the travel assistant
// @Description Send a message and receive the assistant's reply as a server-sent event stream of text chunks
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.ChatRequest true "Chat request"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} utils.APIResponse
// @Router /chat [post]
func (ct *ChatController) StreamChat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	agent, err := ct.factory.Create(req.Provider)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	agent.SetDestinations(req.Destinations)
	agent.SetLanguage(req.Language)

	stream, err := agent.StreamChat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher := c.Writer.(http.Flusher)
	for {
		select {
		case chunk, ok := <-stream:
			if !ok {
				c.SSEvent("done", "")
				flusher.Flush()
				return
			}
			c.SSEvent("message", chunk)
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
