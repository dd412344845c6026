// internal/handlers/partner.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/i18n"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

type PartnerHandler struct {
	partnerService *services.PartnerService
}

func NewPartnerHandler(partnerService *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
	}
}

// POST /partners
func (h *PartnerHandler) CreatePartner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	partner, err := h.partnerService.CreatePartner(aid, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPartnerCreated),
		"partner": partner,
	})
}

// GET /partners
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.partnerService.ListPartners(aid, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /partners/:id
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	partner, err := h.partnerService.GetPartner(aid, id)
	if err != nil {
		utils.NotFoundResponse(c, "partner")
		return
	}

	utils.SuccessResponse(c, partner)
}

// PUT /partners/:id
func (h *PartnerHandler) UpdatePartner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req services.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	partner, err := h.partnerService.UpdatePartner(aid, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.NotFoundResponse(c, "partner")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPartnerUpdated),
		"partner": partner,
	})
}

// DELETE /partners/:id
func (h *PartnerHandler) DeletePartner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	if err := h.partnerService.DeletePartner(aid, id); err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.NotFoundResponse(c, "partner")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPartnerDeleted),
	})
}

// GET /partners/coupon/:code
func (h *PartnerHandler) LookupCoupon(c *gin.Context) {
	result, err := h.partnerService.LookupCoupon(c.Param("code"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /partners/:id/logo
func (h *PartnerHandler) UploadLogo(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		utils.BadRequestResponse(c, "logo file is required", nil)
		return
	}

	partner, err := h.partnerService.UploadLogo(aid, id, file)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.NotFoundResponse(c, "partner")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"logo_url": partner.LogoURL,
	})
}
