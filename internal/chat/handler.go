package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhouse/internal/api"
	"clubhouse/internal/apperr"
	"clubhouse/internal/logger"
	"clubhouse/internal/member"
)

const apologyMessage = "Sorry, something went wrong. Please try again."

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type chatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// Chat godoc
// @Summary      Club assistant chat
// @Description  Runs the conversation through the model with the club event tools.
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      chatRequest  true  "Message history"
// @Success      200      {object}  TurnResult
// @Router       /chat [post]
func (h *Handler) Chat(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.InvalidInput(err.Error()))
		return
	}

	result, err := h.svc.RunTurn(c.Request.Context(), mc, req.Messages)
	if err != nil {
		// Провайдер недоступен: отвечаем извинением, а не ошибкой
		logger.WithError(err).Error("Chat turn failed")
		c.JSON(http.StatusOK, TurnResult{Message: apologyMessage, Attachments: []EventAttachment{}})
		return
	}
	c.JSON(http.StatusOK, result)
}
