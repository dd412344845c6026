// internal/handlers/confirmation.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/i18n"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

// ConfirmationHandler serves the unauthenticated proposal confirmation pages.
type ConfirmationHandler struct {
	proposalService *services.ProposalService
}

func NewConfirmationHandler(proposalService *services.ProposalService) *ConfirmationHandler {
	return &ConfirmationHandler{
		proposalService: proposalService,
	}
}

// GET /confirmation/:id
func (h *ConfirmationHandler) GetConfirmation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		// Malformed ids look like unknown proposals from the outside
		h.renderState(c, &services.ConfirmationPage{State: services.ConfirmationNotFound})
		return
	}

	page, err := h.proposalService.GetForConfirmation(id)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	h.renderState(c, page)
}

// POST /confirmation/:id
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		h.renderState(c, &services.ConfirmationPage{State: services.ConfirmationNotFound})
		return
	}

	var req services.ConfirmProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	page, err := h.proposalService.Confirm(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrTermsNotAccepted) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyConfirmationTerms), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if page.State == services.ConfirmationAlreadyConfirmed && page.ClientName != "" {
		// This request did the confirming
		utils.SuccessResponse(c, gin.H{
			"message": i18n.T(lang, i18n.KeyConfirmationDone),
			"page":    page,
		})
		return
	}

	h.renderState(c, page)
}

// renderState maps split terminal states onto distinct responses so the
// public page can render each one differently.
func (h *ConfirmationHandler) renderState(c *gin.Context, page *services.ConfirmationPage) {
	lang := utils.GetLangFromContext(c)

	switch page.State {
	case services.ConfirmationNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND",
			i18n.T(lang, i18n.KeyConfirmationNotFound), gin.H{"state": page.State})
	case services.ConfirmationAlreadyConfirmed:
		utils.ErrorResponse(c, http.StatusConflict, "ALREADY_CONFIRMED",
			i18n.T(lang, i18n.KeyConfirmationConfirmed), gin.H{"state": page.State})
	case services.ConfirmationClosed:
		utils.ErrorResponse(c, http.StatusGone, "CLOSED",
			i18n.T(lang, i18n.KeyConfirmationClosed), gin.H{"state": page.State})
	default:
		utils.SuccessResponse(c, page)
	}
}
