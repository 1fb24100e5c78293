package controllers

import (
	"net/http"

	"assinazap/internal/models/db_models"
	"assinazap/internal/models/request_models"
	"assinazap/internal/models/response_models"
	"assinazap/internal/services"
	"assinazap/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompanyController struct {
	companyService services.ICompanyService
}

func NewCompanyController(companyService services.ICompanyService) *CompanyController {
	return &CompanyController{companyService: companyService}
}

// ChangeStatus handles PATCH /admin/companies/:id/status. Cancellation
// cascades onto the company's corporate subscribers atomically.
func (co *CompanyController) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid company id")
		return
	}

	var request request_models.ChangeCompanyStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	affected, err := co.companyService.ChangeStatus(c.Request.Context(), id, db_models.CompanyStatus(request.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ChangeCompanyStatusResponse{
		Status:              request.Status,
		AffectedSubscribers: affected,
	}, "Company status updated")
}
