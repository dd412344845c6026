// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/i18n"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/permissions"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /accounts
func (h *UserHandler) CreateAccount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.CreateAccount(operatorTier(c), aid, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTierNotAssignable):
			utils.ForbiddenResponse(c, "")
		case errors.Is(err, services.ErrEmailTaken):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUserExists))
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserCreated),
		"user":    user,
	})
}

// GET /accounts
func (h *UserHandler) ListAccounts(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.userService.ListAccounts(aid, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /accounts/:id
func (h *UserHandler) GetAccount(c *gin.Context) {
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

	user, err := h.userService.GetAccount(aid, id)
	if err != nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /accounts/:id
func (h *UserHandler) UpdateAccount(c *gin.Context) {
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

	var req services.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.UpdateAccount(operatorTier(c), aid, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "user")
		case errors.Is(err, services.ErrTierNotAssignable):
			utils.ForbiddenResponse(c, "")
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserUpdated),
		"user":    user,
	})
}

// DELETE /accounts/:id
func (h *UserHandler) DeleteAccount(c *gin.Context) {
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

	if err := h.userService.DeleteAccount(aid, id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /accounts/:id/lock
func (h *UserHandler) LockAccount(c *gin.Context) {
	h.setStatus(c, models.UserStatusLocked, i18n.KeyUserLocked)
}

// POST /accounts/:id/unlock
func (h *UserHandler) UnlockAccount(c *gin.Context) {
	h.setStatus(c, models.UserStatusActive, i18n.KeyUserUnlocked)
}

func (h *UserHandler) setStatus(c *gin.Context, status models.UserStatus, messageKey string) {
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

	user, err := h.userService.SetAccountStatus(aid, id, status)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, messageKey),
		"user":    user,
	})
}

// GET /profile/permissions
func (h *UserHandler) GetPermissions(c *gin.Context) {
	tier := operatorTier(c)
	utils.SuccessResponse(c, gin.H{
		"perfil":           tier,
		"capabilities":     permissions.Capabilities(tier),
		"assignable_tiers": permissions.AssignableTiers(tier),
	})
}

// PUT /profile/theme
func (h *UserHandler) UpdateTheme(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	uid, ok := userID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		Theme string `json:"theme" validate:"required,oneof=light dark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.userService.UpdateTheme(uid, models.ThemePreference(req.Theme)); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserThemeUpdated),
		"theme":   req.Theme,
	})
}

// PUT /profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	uid, ok := userID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(uid, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}
