package billing

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81/webhook"

	"clubhouse/internal/api"
	"clubhouse/internal/logger"
	"clubhouse/internal/member"
)

type Handler struct {
	service       Service
	webhookSecret string
}

func NewHandler(service Service, webhookSecret string) *Handler {
	return &Handler{service: service, webhookSecret: webhookSecret}
}

// Webhook godoc
// @Summary      Receive Stripe webhook events
// @Description  Verifies the event signature and mirrors billing state into the database.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  api.ErrorResponse
// @Router       /webhooks/stripe [post]
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		logger.WithError(err).Error("Webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if err := h.service.HandleEvent(c.Request.Context(), event); err != nil {
		logger.WithError(err).Error("Webhook handler failed", "type", event.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Status godoc
// @Summary      Get member billing status
// @Description  Returns the current member's subscription status, invoices and payments.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  api.ErrorResponse
// @Router       /billing/status [get]
func (h *Handler) Status(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.service.Status(c.Request.Context(), mc)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
