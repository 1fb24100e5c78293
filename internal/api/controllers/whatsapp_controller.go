package controllers

import (
	"net/http"
	"strconv"

	"assinazap/internal/models/request_models"
	"assinazap/internal/repositories"
	"assinazap/internal/services"
	"assinazap/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WhatsAppController exposes the back-office surface the dispatcher
// consumes: the cadence configuration, the ordered message set, and the
// delivery logs.
type WhatsAppController struct {
	configService  services.IWhatsAppConfigService
	messageService services.ICadenceMessageService
	messageLogs    repositories.IMessageLogRepository
}

func NewWhatsAppController(
	configService services.IWhatsAppConfigService,
	messageService services.ICadenceMessageService,
	messageLogs repositories.IMessageLogRepository,
) *WhatsAppController {
	return &WhatsAppController{
		configService:  configService,
		messageService: messageService,
		messageLogs:    messageLogs,
	}
}

func (w *WhatsAppController) GetConfig(c *gin.Context) {
	config, err := w.configService.Get(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, config, "")
}

func (w *WhatsAppController) UpdateConfig(c *gin.Context) {
	var request request_models.UpdateWhatsAppConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	config, err := w.configService.Update(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, config, "Configuration updated")
}

func (w *WhatsAppController) ListMessages(c *gin.Context) {
	var err error
	var messages interface{}
	if c.Query("all") == "true" {
		messages, err = w.messageService.ListAll(c.Request.Context())
	} else {
		messages, err = w.messageService.ListActive(c.Request.Context())
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, messages, "")
}

func (w *WhatsAppController) CreateMessage(c *gin.Context) {
	var request request_models.CreateCadenceMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	message, err := w.messageService.Create(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, message, "Message created")
}

func (w *WhatsAppController) UpdateMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	var request request_models.UpdateCadenceMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	message, err := w.messageService.Update(c.Request.Context(), id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, message, "Message updated")
}

func (w *WhatsAppController) DeleteMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	if err := w.messageService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Message deleted")
}

func (w *WhatsAppController) ReorderMessages(c *gin.Context) {
	var request request_models.ReorderCadenceMessagesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	messages, err := w.messageService.Reorder(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, messages, "Messages reordered")
}

func (w *WhatsAppController) ListLogs(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("subscriber_id"); raw != "" {
		subscriberID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid subscriber id")
			return
		}
		logs, err := w.messageLogs.ListBySubscriber(ctx, subscriberID)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondSuccess(c, logs, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := w.messageLogs.ListRecent(ctx, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, logs, "")
}
