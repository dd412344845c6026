// internal/handlers/plan.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/i18n"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

type PlanHandler struct {
	planService *services.PlanService
}

func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// POST /plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	plan, err := h.planService.CreatePlan(aid, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPlanCreated),
		"plan":    plan,
	})
}

// GET /plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	// The wizard wants the whole active catalog, no paging
	if c.Query("all") == "true" {
		plans, err := h.planService.ListActivePlans(aid)
		if err != nil {
			utils.InternalErrorResponse(c, "")
			return
		}
		utils.SuccessResponse(c, plans)
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.planService.ListPlans(aid, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /plans/filter
func (h *PlanHandler) FilterPlans(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.PlanFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	plans, err := h.planService.FilterPlans(aid, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, plans)
}

// GET /plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
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

	plan, err := h.planService.GetPlan(aid, id)
	if err != nil {
		utils.NotFoundResponse(c, "plan")
		return
	}

	utils.SuccessResponse(c, plan)
}

// PUT /plans/:id
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
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

	var req services.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	plan, err := h.planService.UpdatePlan(aid, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.NotFoundResponse(c, "plan")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPlanUpdated),
		"plan":    plan,
	})
}

// DELETE /plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
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

	if err := h.planService.DeletePlan(aid, id); err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.NotFoundResponse(c, "plan")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPlanDeleted),
	})
}

// POST /addons
func (h *PlanHandler) CreateAddon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	addon, err := h.planService.CreateAddon(aid, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, addon)
}

// GET /addons
func (h *PlanHandler) ListAddons(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	addons, err := h.planService.ListActiveAddons(aid)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, addons)
}

// PUT /addons/:id
func (h *PlanHandler) UpdateAddon(c *gin.Context) {
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

	var req services.AddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	addon, err := h.planService.UpdateAddon(aid, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrAddonNotFound) {
			utils.NotFoundResponse(c, "addon")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, addon)
}

// DELETE /addons/:id
func (h *PlanHandler) DeleteAddon(c *gin.Context) {
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

	if err := h.planService.DeleteAddon(aid, id); err != nil {
		if errors.Is(err, services.ErrAddonNotFound) {
			utils.NotFoundResponse(c, "addon")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
