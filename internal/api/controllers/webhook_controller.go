package controllers

import (
	"io"
	"net/http"
	"strconv"

	"assinazap/internal/providers"
	"assinazap/internal/repositories"
	"assinazap/internal/services"
	"assinazap/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WebhookController struct {
	subscriberService services.ISubscriberService
	webhookLogs       repositories.IWebhookLogRepository
	sources           map[string]providers.WebhookSource
}

func NewWebhookController(
	subscriberService services.ISubscriberService,
	webhookLogs repositories.IWebhookLogRepository,
	sources ...providers.WebhookSource,
) *WebhookController {
	byName := make(map[string]providers.WebhookSource, len(sources))
	for _, source := range sources {
		byName[source.Name()] = source
	}
	return &WebhookController{
		subscriberService: subscriberService,
		webhookLogs:       webhookLogs,
		sources:           byName,
	}
}

// Handle receives POST /webhook/:provider. The response code tells the
// provider what to do: 2xx/4xx stop redelivery, 5xx means try again.
func (w *WebhookController) Handle(c *gin.Context) {
	source, ok := w.sources[c.Param("provider")]
	if !ok {
		utils.RespondError(c, http.StatusNotFound, "Unknown webhook provider")
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	if err := w.subscriberService.ProcessWebhook(c.Request.Context(), source, payload); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event processed")
}

// ListLogs serves GET /admin/webhooks/logs, the audit trail of every
// delivery attempt per provider.
func (w *WebhookController) ListLogs(c *gin.Context) {
	provider := c.Query("provider")
	if provider == "" {
		utils.RespondError(c, http.StatusBadRequest, "provider is required")
		return
	}
	if _, ok := w.sources[provider]; !ok {
		utils.RespondError(c, http.StatusNotFound, "Unknown webhook provider")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := w.webhookLogs.ListByProvider(c.Request.Context(), provider, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, logs, "")
}
