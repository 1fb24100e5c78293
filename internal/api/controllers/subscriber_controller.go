package controllers

import (
	"net/http"

	"assinazap/internal/models/response_models"
	"assinazap/internal/services"
	"assinazap/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubscriberController struct {
	subscriberService services.ISubscriberService
}

func NewSubscriberController(subscriberService services.ISubscriberService) *SubscriberController {
	return &SubscriberController{subscriberService: subscriberService}
}

// Consulta is the public card lookup: GET /consulta?card_id=
func (s *SubscriberController) Consulta(c *gin.Context) {
	cardID := c.Query("card_id")
	if cardID == "" {
		utils.RespondError(c, http.StatusBadRequest, "card_id is required")
		return
	}

	subscriber, err := s.subscriberService.LookupByCard(c.Request.Context(), cardID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ConsultaResponse{
		Name:        subscriber.Name,
		Status:      string(subscriber.Status),
		PlanType:    subscriber.PlanType,
		NextDueDate: utils.FormatDateBR(subscriber.NextDueDate),
	}, "Subscriber found")
}

// RemoveCorporate soft-deletes a corporate subscriber (admin only).
func (s *SubscriberController) RemoveCorporate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscriber id")
		return
	}

	if err := s.subscriberService.RemoveCorporate(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscriber removed")
}
