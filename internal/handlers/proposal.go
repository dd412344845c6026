// internal/handlers/proposal.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/i18n"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/pricing"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

type ProposalHandler struct {
	proposalService *services.ProposalService
}

func NewProposalHandler(proposalService *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
	}
}

// POST /proposals/quote
func (h *ProposalHandler) Quote(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	totals, err := h.proposalService.Quote(aid, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, totals)
}

// POST /proposals
func (h *ProposalHandler) SaveProposal(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	uid, ok := userID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SaveProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	proposal, err := h.proposalService.Save(aid, uid, operatorTier(c), &req)
	if err != nil {
		h.saveError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyProposalSaved),
		"proposal": proposal,
	})
}

func (h *ProposalHandler) saveError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, services.ErrProposalNotFound):
		utils.NotFoundResponse(c, "proposal")
	case errors.Is(err, services.ErrProposalLocked):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProposalLocked))
	case errors.Is(err, services.ErrBelowMinimum):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProposalBelowMinimum, pricing.MinimumTotal), nil)
	case errors.Is(err, services.ErrClientName), errors.Is(err, services.ErrClientEmail):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProposalMissingClient), nil)
	case errors.Is(err, services.ErrTierNotAssignable):
		utils.ForbiddenResponse(c, "")
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// GET /proposals
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	uid, ok := userID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.proposalService.List(aid, uid, operatorTier(c), params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /proposals/:id
func (h *ProposalHandler) GetProposal(c *gin.Context) {
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

	proposal, err := h.proposalService.Get(aid, id)
	if err != nil {
		utils.NotFoundResponse(c, "proposal")
		return
	}

	utils.SuccessResponse(c, proposal)
}

// DELETE /proposals/:id
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
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

	if err := h.proposalService.Delete(aid, id); err != nil {
		if errors.Is(err, services.ErrProposalNotFound) {
			utils.NotFoundResponse(c, "proposal")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProposalDeleted),
	})
}

// PATCH /proposals/:id/status
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	aid, ok := accountID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	uid, ok := userID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	proposal, err := h.proposalService.UpdateStatus(aid, id, uid, models.ProposalStatus(req.Status))
	if err != nil {
		if errors.Is(err, services.ErrProposalNotFound) {
			utils.NotFoundResponse(c, "proposal")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyProposalStatusUpdated),
		"proposal": proposal,
	})
}

// GET /proposals/:id/link
func (h *ProposalHandler) GetConfirmationLink(c *gin.Context) {
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

	link, err := h.proposalService.ConfirmationLink(aid, id)
	if err != nil {
		utils.NotFoundResponse(c, "proposal")
		return
	}

	utils.SuccessResponse(c, gin.H{"link": link})
}

// POST /proposals/:id/send
func (h *ProposalHandler) SendProposal(c *gin.Context) {
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

	proposal, err := h.proposalService.Send(aid, id)
	if err != nil {
		h.saveError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyProposalSent),
		"proposal": proposal,
	})
}
