// internal/services/proposal_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/database"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/permissions"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/pricing"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrProposalLocked   = errors.New("approved proposals accept status-only updates")
	ErrClientName       = errors.New("client name is required")
	ErrClientEmail      = errors.New("a valid client email is required")
	ErrBelowMinimum     = errors.New("proposal total is below the minimum")
	ErrTermsNotAccepted = errors.New("terms must be accepted")
)

// ConfirmationState classifies what the public confirmation page shows.
type ConfirmationState string

const (
	ConfirmationOpen             ConfirmationState = "open"
	ConfirmationNotFound         ConfirmationState = "not_found"
	ConfirmationAlreadyConfirmed ConfirmationState = "already_confirmed"
	ConfirmationClosed           ConfirmationState = "closed"
)

type ProposalService struct {
	db            *gorm.DB
	cfg           *config.Config
	partners      *PartnerService
	notifications *NotificationService
}

// AddonLineRequest is one wizard add-on selection.
type AddonLineRequest struct {
	AddonID  uuid.UUID `json:"addon_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"gte=0"`
}

// SaveProposalRequest is the wizard's full state. An absent ID inserts, a
// present one updates; the pricing breakdown is always recomputed server-side
// from what is sent, never trusted from the client.
type SaveProposalRequest struct {
	ID *uuid.UUID `json:"id,omitempty"`

	Tier string `json:"perfil,omitempty"`

	PlanID *uuid.UUID `json:"plan_id,omitempty"`

	ClientName      string `json:"nome" validate:"omitempty,max=150"`
	ClientEmail     string `json:"email" validate:"omitempty,max=255"`
	ClientPhone     string `json:"fone,omitempty" validate:"omitempty,max=20"`
	CompanyName     string `json:"empresa,omitempty" validate:"omitempty,max=150"`
	CompanyDocument string `json:"cnpj,omitempty" validate:"omitempty,cnpj"`

	InboxCount      int `json:"inbox_count" validate:"gte=0"`
	AgentCount      int `json:"agent_count" validate:"gte=0"`
	AutomationCount int `json:"automation_count" validate:"gte=0"`

	Kanban           bool `json:"kanban"`
	HumanSupport     bool `json:"human_support"`
	OfficialWhatsApp bool `json:"official_whatsapp"`

	DiscountPct float64 `json:"desconto"`
	DiscountRaw string  `json:"desconto_txt,omitempty" validate:"omitempty,max=10"`
	CouponCode  string  `json:"cupom,omitempty" validate:"omitempty,max=30"`

	ValidityDays *int `json:"validade,omitempty" validate:"omitempty,gt=0"`

	Addons []AddonLineRequest `json:"addons" validate:"dive"`

	Submit bool `json:"submit,omitempty"`
}

// QuoteRequest previews pricing without persisting anything.
type QuoteRequest struct {
	PlanID          *uuid.UUID         `json:"plan_id,omitempty"`
	InboxCount      int                `json:"inbox_count" validate:"gte=0"`
	AgentCount      int                `json:"agent_count" validate:"gte=0"`
	AutomationCount int                `json:"automation_count" validate:"gte=0"`
	DiscountPct     float64            `json:"desconto"`
	DiscountRaw     string             `json:"desconto_txt,omitempty" validate:"omitempty,max=10"`
	CouponCode      string             `json:"cupom,omitempty"`
	Addons          []AddonLineRequest `json:"addons" validate:"dive"`
}

// ConfirmProposalRequest is the public confirmation form: company identity
// plus responsible and financial contacts. Nothing else on the proposal is
// writable through this path.
type ConfirmProposalRequest struct {
	AcceptTerms bool `json:"accept_terms"`

	CompanyName     string `json:"empresa" validate:"required,max=150"`
	CompanyDocument string `json:"cnpj" validate:"required,cnpj"`

	ResponsibleName  string `json:"resp_nome" validate:"required,max=150"`
	ResponsibleEmail string `json:"resp_email" validate:"required,email"`
	ResponsiblePhone string `json:"resp_fone,omitempty" validate:"omitempty,max=20"`

	FinancialName  string `json:"fin_nome,omitempty" validate:"omitempty,max=150"`
	FinancialEmail string `json:"fin_email,omitempty" validate:"omitempty,email"`
	FinancialPhone string `json:"fin_fone,omitempty" validate:"omitempty,max=20"`
}

// ConfirmationPage is the masked read model the public page renders. Internal
// commercial detail (per-line discounts, owner identity) stays out.
type ConfirmationPage struct {
	State        ConfirmationState `json:"state"`
	ClientName   string            `json:"nome,omitempty"`
	CompanyName  string            `json:"empresa,omitempty"`
	PlanName     string            `json:"plan_name,omitempty"`
	Total        float64           `json:"total,omitempty"`
	ValidityDays int               `json:"validade,omitempty"`
	PartnerLogo  string            `json:"partner_logo,omitempty"`
}

func NewProposalService(db *gorm.DB, cfg *config.Config, partners *PartnerService, notifications *NotificationService) *ProposalService {
	return &ProposalService{
		db:            db,
		cfg:           cfg,
		partners:      partners,
		notifications: notifications,
	}
}

// NewDraft builds the wizard's starting state. Nothing is persisted until the
// first save.
func (s *ProposalService) NewDraft(accountID, userID uuid.UUID, tier models.ProfileTier) *models.Proposal {
	return &models.Proposal{
		AccountID:    accountID,
		UserID:       userID,
		Tier:         tier,
		CompanyName:  "A definir",
		ValidityDays: s.cfg.Portal.ProposalValidityDays,
		Status:       models.ProposalStatusPending,
		Active:       true,
	}
}

// Quote prices the wizard's current selections without writing anything.
func (s *ProposalService) Quote(accountID uuid.UUID, req *QuoteRequest) (*pricing.Totals, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	subtotal, _, err := s.priceSubtotal(accountID, req.PlanID, req.InboxCount, req.AgentCount, req.AutomationCount)
	if err != nil {
		return nil, err
	}

	lines, _, err := s.priceLines(accountID, req.Addons)
	if err != nil {
		return nil, err
	}

	couponPct, _, err := s.resolveCoupon(req.CouponCode)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(subtotal, lines, discountPercent(req.DiscountRaw, req.DiscountPct), couponPct)
	return &totals, nil
}

// Save runs the wizard's persist step: recompute pricing from the submitted
// state, insert or update the header, and replace the add-on line set in the
// same transaction. With Submit set the proposal must also pass submission
// validation.
func (s *ProposalService) Save(accountID, userID uuid.UUID, operatorTier models.ProfileTier, req *SaveProposalRequest) (*models.Proposal, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var proposal *models.Proposal
	if req.ID != nil {
		existing, err := s.Get(accountID, *req.ID)
		if err != nil {
			return nil, err
		}
		if !existing.CommercialEditable() {
			return nil, ErrProposalLocked
		}
		proposal = existing
	} else {
		proposal = s.NewDraft(accountID, userID, operatorTier)
	}

	if req.Tier != "" {
		targetTier := models.ProfileTier(req.Tier)
		if !permissions.CanAssign(operatorTier, targetTier) {
			return nil, ErrTierNotAssignable
		}
		proposal.Tier = targetTier
	}

	subtotal, plan, err := s.priceSubtotal(accountID, req.PlanID, req.InboxCount, req.AgentCount, req.AutomationCount)
	if err != nil {
		return nil, err
	}
	proposal.PlanID = req.PlanID
	if plan != nil {
		proposal.PlanName = plan.Name
	} else {
		proposal.PlanName = ""
	}

	proposal.ClientName = strings.TrimSpace(req.ClientName)
	proposal.ClientEmail = strings.TrimSpace(req.ClientEmail)
	proposal.ClientPhone = req.ClientPhone
	if strings.TrimSpace(req.CompanyName) != "" {
		proposal.CompanyName = req.CompanyName
	}
	if req.CompanyDocument != "" {
		proposal.CompanyDocument = req.CompanyDocument
	}

	proposal.InboxCount = req.InboxCount
	proposal.AgentCount = req.AgentCount
	proposal.AutomationCount = req.AutomationCount
	proposal.Kanban = req.Kanban
	proposal.HumanSupport = req.HumanSupport
	proposal.OfficialWhatsApp = req.OfficialWhatsApp

	if req.ValidityDays != nil {
		proposal.ValidityDays = *req.ValidityDays
	}

	lines, addonRows, err := s.priceLines(accountID, req.Addons)
	if err != nil {
		return nil, err
	}

	couponPct, couponCode, err := s.resolveCoupon(req.CouponCode)
	if err != nil {
		return nil, err
	}
	proposal.CouponCode = couponCode
	proposal.CouponPct = couponPct
	proposal.DiscountPct = pricing.NormalizePercent(discountPercent(req.DiscountRaw, req.DiscountPct))

	totals := pricing.ComputeTotals(subtotal, lines, proposal.DiscountPct, proposal.CouponPct)
	ApplyTotals(proposal, totals)

	if req.Submit {
		if err := ValidateSubmission(proposal); err != nil {
			return nil, err
		}
	}

	proposal.UpdatedBy = &userID

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Save(proposal).Error; err != nil {
			return fmt.Errorf("failed to save proposal: %w", err)
		}

		// Replace the line set: stale lines out, current non-zero lines in.
		if err := tx.Where("proposta_id = ?", proposal.ID).
			Delete(&models.ProposalAddon{}).Error; err != nil {
			return fmt.Errorf("failed to clear add-on lines: %w", err)
		}

		if len(addonRows) > 0 {
			for i := range addonRows {
				addonRows[i].ProposalID = proposal.ID
			}
			if err := tx.Create(&addonRows).Error; err != nil {
				return fmt.Errorf("failed to insert add-on lines: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	proposal.Addons = addonRows
	return proposal, nil
}

// ValidateSubmission is the pure pre-write gate: identity present, email
// well-formed, total above the floor.
func ValidateSubmission(p *models.Proposal) error {
	if strings.TrimSpace(p.ClientName) == "" {
		return ErrClientName
	}
	if !utils.ValidEmail(strings.TrimSpace(p.ClientEmail)) {
		return ErrClientEmail
	}
	if p.Total <= pricing.MinimumTotal {
		return ErrBelowMinimum
	}
	return nil
}

// ApplyTotals copies a computed breakdown onto the header. Percentages and the
// recomputed totals are persisted; the derived currency values ride along as
// transient fields for the response only.
func ApplyTotals(p *models.Proposal, t pricing.Totals) {
	p.Subtotal = t.Subtotal
	p.AddonTotal = t.AddonTotal
	p.Total = t.Total
	p.DiscountValue = t.DiscountValue
	p.CouponValue = t.CouponValue
}

// RecomputeDerived refreshes the transient discount values on a loaded
// proposal so responses always carry a consistent breakdown.
func RecomputeDerived(p *models.Proposal) {
	base := p.Subtotal + p.AddonTotal
	p.DiscountValue = pricing.Round(base * pricing.NormalizePercent(p.DiscountPct) / 100)
	p.CouponValue = pricing.Round(base * pricing.NormalizePercent(p.CouponPct) / 100)
}

func (s *ProposalService) List(accountID uuid.UUID, operator uuid.UUID, tier models.ProfileTier, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.ProposalView{}).
		Where("account_id = ?", accountID)

	// Tiers below admin only see their own proposals
	if tier != models.TierSuperAdmin && tier != models.TierAdmin {
		query = query.Where("user_id = ?", operator)
	}

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("nome ILIKE ? OR email ILIKE ? OR plano_nome ILIKE ?", searchTerm, searchTerm, searchTerm)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count proposals: %w", err)
	}

	var proposals []models.ProposalView
	query = utils.ApplySort(query, params, []string{"created_at", "nome", "total", "status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	result := utils.CreatePaginationResult(proposals, total, params)
	return &result, nil
}

func (s *ProposalService) Get(accountID, proposalID uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := s.db.Preload("Addons").Preload("Addons.Addon").Preload("Plan").
		Where("account_id = ?", accountID).
		First(&proposal, "id = ?", proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	RecomputeDerived(&proposal)
	return &proposal, nil
}

func (s *ProposalService) Delete(accountID, proposalID uuid.UUID) error {
	result := s.db.Where("account_id = ?", accountID).Delete(&models.Proposal{}, "id = ?", proposalID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete proposal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

// UpdateStatus performs a status-only transition, the one kind of update an
// approved proposal still accepts.
func (s *ProposalService) UpdateStatus(accountID, proposalID, operatorID uuid.UUID, status models.ProposalStatus) (*models.Proposal, error) {
	switch status {
	case models.ProposalStatusPending, models.ProposalStatusAccepted,
		models.ProposalStatusApproved, models.ProposalStatusRejected,
		models.ProposalStatusExpired:
	default:
		return nil, fmt.Errorf("unknown proposal status %q", status)
	}

	proposal, err := s.Get(accountID, proposalID)
	if err != nil {
		return nil, err
	}

	proposal.Status = status
	proposal.UpdatedBy = &operatorID
	if err := s.db.Model(&models.Proposal{}).
		Where("id = ?", proposalID).
		Updates(map[string]interface{}{"status": status, "updated_by": operatorID}).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return proposal, nil
}

// ConfirmationLink builds the shareable public URL for a proposal.
func (s *ProposalService) ConfirmationLink(accountID, proposalID uuid.UUID) (string, error) {
	if _, err := s.Get(accountID, proposalID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/confirmation/%s", s.cfg.Portal.BaseURL, proposalID), nil
}

// Send emails the confirmation link to the prospect and flags the proposal.
func (s *ProposalService) Send(accountID, proposalID uuid.UUID) (*models.Proposal, error) {
	proposal, err := s.Get(accountID, proposalID)
	if err != nil {
		return nil, err
	}

	if err := ValidateSubmission(proposal); err != nil {
		return nil, err
	}

	if err := s.notifications.SendProposalEmail(proposal); err != nil {
		return nil, err
	}

	return proposal, nil
}

// GetForConfirmation is the public read boundary. It never returns the raw
// record: unknown or inactive ids map to not_found, accepted/approved ones to
// already_confirmed, rejected/expired ones to closed.
func (s *ProposalService) GetForConfirmation(proposalID uuid.UUID) (*ConfirmationPage, error) {
	var proposal models.Proposal
	err := s.db.First(&proposal, "id = ?", proposalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ConfirmationPage{State: ConfirmationNotFound}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	state := ClassifyConfirmation(&proposal)
	if state != ConfirmationOpen {
		return &ConfirmationPage{State: state}, nil
	}

	page := &ConfirmationPage{
		State:        ConfirmationOpen,
		ClientName:   proposal.ClientName,
		CompanyName:  proposal.CompanyName,
		PlanName:     proposal.PlanName,
		Total:        proposal.Total,
		ValidityDays: proposal.ValidityDays,
	}

	// Show the referring partner's logo when the owner is tied to one
	var owner models.User
	if err := s.db.Preload("Partner").First(&owner, "id = ?", proposal.UserID).Error; err == nil {
		if owner.Partner != nil {
			page.PartnerLogo = owner.Partner.LogoURL
		}
	}

	return page, nil
}

// ClassifyConfirmation maps a proposal to what the public page shows. Pure,
// so the state table is testable without a database.
func ClassifyConfirmation(p *models.Proposal) ConfirmationState {
	if !p.Active {
		return ConfirmationNotFound
	}
	switch p.Status {
	case models.ProposalStatusAccepted, models.ProposalStatusApproved:
		return ConfirmationAlreadyConfirmed
	case models.ProposalStatusRejected, models.ProposalStatusExpired:
		return ConfirmationClosed
	}
	return ConfirmationOpen
}

// Confirm applies the public form. Only the constrained contact subset is
// written; everything commercial stays untouched. The proposal becomes
// accepted, terminal for client edits.
func (s *ProposalService) Confirm(proposalID uuid.UUID, req *ConfirmProposalRequest) (*ConfirmationPage, error) {
	if !req.AcceptTerms {
		return nil, ErrTermsNotAccepted
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var proposal models.Proposal
	err := s.db.First(&proposal, "id = ?", proposalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ConfirmationPage{State: ConfirmationNotFound}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if state := ClassifyConfirmation(&proposal); state != ConfirmationOpen {
		return &ConfirmationPage{State: state}, nil
	}

	updates := map[string]interface{}{
		"empresa":    req.CompanyName,
		"cnpj":       req.CompanyDocument,
		"resp_nome":  req.ResponsibleName,
		"resp_email": req.ResponsibleEmail,
		"resp_fone":  req.ResponsiblePhone,
		"fin_nome":   req.FinancialName,
		"fin_email":  req.FinancialEmail,
		"fin_fone":   req.FinancialPhone,
		"status":     models.ProposalStatusAccepted,
	}
	if err := s.db.Model(&models.Proposal{}).
		Where("id = ?", proposalID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm proposal: %w", err)
	}

	proposal.Status = models.ProposalStatusAccepted
	proposal.CompanyName = req.CompanyName
	proposal.ClientName = firstNonEmpty(proposal.ClientName, req.ResponsibleName)

	if s.notifications != nil {
		go s.notifications.SendProposalAcceptedNotification(&proposal)
	}

	return &ConfirmationPage{
		State:        ConfirmationAlreadyConfirmed,
		ClientName:   proposal.ClientName,
		CompanyName:  proposal.CompanyName,
		PlanName:     proposal.PlanName,
		Total:        proposal.Total,
		ValidityDays: proposal.ValidityDays,
	}, nil
}

// priceSubtotal derives the plan-side subtotal: base price plus extra units
// beyond the plan's included quantities, at the plan's per-unit prices.
func (s *ProposalService) priceSubtotal(accountID uuid.UUID, planID *uuid.UUID, inboxes, agents, automations int) (float64, *models.Plan, error) {
	if planID == nil {
		return 0, nil, nil
	}

	var plan models.Plan
	if err := s.db.Where("account_id = ?", accountID).
		First(&plan, "id = ?", *planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrPlanNotFound
		}
		return 0, nil, fmt.Errorf("database error: %w", err)
	}

	subtotal := plan.Price
	if extra := inboxes - plan.InboxCount; extra > 0 {
		subtotal += float64(extra) * plan.InboxUnitPrice
	}
	if extra := agents - plan.AgentCount; extra > 0 {
		subtotal += float64(extra) * plan.AgentUnitPrice
	}
	if extra := automations - plan.AutomationCount; extra > 0 {
		subtotal += float64(extra) * plan.AutomationUnitPrice
	}

	return pricing.Round(subtotal), &plan, nil
}

// priceLines resolves the selected add-ons against the catalog and reduces
// them to the line set a save persists.
func (s *ProposalService) priceLines(accountID uuid.UUID, reqs []AddonLineRequest) ([]pricing.Line, []models.ProposalAddon, error) {
	unitPrices := make(map[uuid.UUID]float64, len(reqs))

	for _, r := range reqs {
		if r.Quantity <= 0 {
			continue
		}

		var addon models.PlanAddon
		if err := s.db.Where("account_id = ? AND active = ?", accountID, true).
			First(&addon, "id = ?", r.AddonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrAddonNotFound
			}
			return nil, nil, fmt.Errorf("database error: %w", err)
		}
		unitPrices[addon.ID] = addon.UnitPrice
	}

	lines, rows := BuildAddonRows(reqs, unitPrices)
	return lines, rows, nil
}

// BuildAddonRows reduces the wizard's selections to the exact row set a save
// persists. The save replaces lines wholesale, so the result depends only on
// the request: zero and negative quantities are dropped, and every kept line
// snapshots the catalog unit price in effect at save time.
func BuildAddonRows(reqs []AddonLineRequest, unitPrices map[uuid.UUID]float64) ([]pricing.Line, []models.ProposalAddon) {
	lines := make([]pricing.Line, 0, len(reqs))
	rows := make([]models.ProposalAddon, 0, len(reqs))

	for _, r := range reqs {
		if r.Quantity <= 0 {
			continue
		}
		price := unitPrices[r.AddonID]
		lines = append(lines, pricing.Line{Quantity: r.Quantity, UnitPrice: price})
		rows = append(rows, models.ProposalAddon{
			AddonID:   r.AddonID,
			Quantity:  r.Quantity,
			UnitPrice: price,
		})
	}

	return lines, rows
}

// discountPercent prefers the free-typed discount text when present. The
// wizard sends "10%"-style input that ParsePercent strips down to a number.
func discountPercent(raw string, pct float64) float64 {
	if strings.TrimSpace(raw) != "" {
		return pricing.ParsePercent(raw)
	}
	return pct
}

// resolveCoupon turns the typed code into a normalized percentage. Only codes
// passing the length gate hit the partner catalog; misses keep the code but
// contribute nothing.
func (s *ProposalService) resolveCoupon(code string) (float64, string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, "", nil
	}

	result, err := s.partners.LookupCoupon(code)
	if err != nil {
		return 0, "", err
	}
	if !result.Valid {
		return 0, code, nil
	}
	return result.Percent, code, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
