// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

var ErrProposalNotPayable = errors.New("only accepted proposals can be charged")

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type CreatePaymentIntentRequest struct {
	ProposalID    uuid.UUID `json:"proposal_id" validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string  `json:"client_secret"`
	PaymentID    string  `json:"payment_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	ProposalID      uuid.UUID `json:"proposal_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// CreatePaymentIntent opens a Stripe charge for an accepted proposal's total
// and records the pending payment row.
func (s *PaymentService) CreatePaymentIntent(accountID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var proposal models.Proposal
	if err := s.db.Where("account_id = ?", accountID).
		First(&proposal, "id = ?", req.ProposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if proposal.Status != models.ProposalStatusAccepted {
		return nil, ErrProposalNotPayable
	}
	if proposal.Paid {
		return nil, errors.New("proposal is already paid")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents(proposal.Total)),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("proposal_id", proposal.ID.String())
	params.AddMetadata("account_id", accountID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	payment := &models.Payment{
		ProposalID:       proposal.ID,
		Amount:           proposal.Total,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: pi.ID,
		Status:           models.PaymentStatusPending,
	}
	if err := s.db.Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Amount:       proposal.Total,
	}, nil
}

// ConfirmPayment reconciles a Stripe intent: on success the payment completes,
// the proposal is flagged paid and promoted to approved, and a contract is
// opened for the owning partner.
func (s *PaymentService) ConfirmPayment(accountID uuid.UUID, req *ConfirmPaymentRequest) (*models.Payment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	var payment models.Payment
	if err := s.db.Where("proposta_id = ? AND payment_reference = ?", req.ProposalID, req.PaymentIntentID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		payment.Status = models.PaymentStatusCompleted
		payment.ProcessedAt = &now

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&payment).Error; err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}
			if err := tx.Model(&models.Proposal{}).
				Where("id = ?", req.ProposalID).
				Updates(map[string]interface{}{
					"pay":    true,
					"status": models.ProposalStatusApproved,
				}).Error; err != nil {
				return fmt.Errorf("failed to flag proposal as paid: %w", err)
			}
			return s.openContract(tx, accountID, req.ProposalID, payment.Amount)
		})
		if err != nil {
			return nil, err
		}

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		payment.Status = models.PaymentStatusPending
		if err := s.db.Save(&payment).Error; err != nil {
			return nil, fmt.Errorf("failed to update payment: %w", err)
		}

	default:
		payment.Status = models.PaymentStatusFailed
		if err := s.db.Save(&payment).Error; err != nil {
			return nil, fmt.Errorf("failed to update payment: %w", err)
		}
	}

	return &payment, nil
}

// amountInCents converts a monetary total to Stripe's cent-denominated
// integer amount. Rounding, not truncation: 0.29 is 29 cents, never 28.
func amountInCents(total float64) int64 {
	return int64(math.Round(total * 100))
}

// openContract creates the contract row a paid proposal turns into, when the
// proposal owner belongs to a partner.
func (s *PaymentService) openContract(tx *gorm.DB, accountID, proposalID uuid.UUID, amount float64) error {
	var proposal models.Proposal
	if err := tx.First(&proposal, "id = ?", proposalID).Error; err != nil {
		return fmt.Errorf("proposal not found: %w", err)
	}

	var owner models.User
	if err := tx.First(&owner, "id = ?", proposal.UserID).Error; err != nil {
		return fmt.Errorf("proposal owner not found: %w", err)
	}
	if owner.PartnerID == nil {
		// Direct sale, no partner contract to open
		return nil
	}

	now := time.Now()
	contract := &models.Contract{
		AccountID:  accountID,
		PartnerID:  *owner.PartnerID,
		ProposalID: &proposal.ID,
		Title:      fmt.Sprintf("Contrato - %s", proposal.PlanName),
		Amount:     amount,
		Status:     models.ContractStatusActive,
		SignedAt:   &now,
	}
	if err := tx.Create(contract).Error; err != nil {
		return fmt.Errorf("failed to open contract: %w", err)
	}

	return nil
}

// ListContracts pages over the v_contrato view.
func (s *PaymentService) ListContracts(accountID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.ContractView{}).
		Where("account_id = ?", accountID)

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR partner_name ILIKE ?", searchTerm, searchTerm)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}

	var contracts []models.ContractView
	query = utils.ApplySort(query, params, []string{"created_at", "title", "amount", "status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	result := utils.CreatePaginationResult(contracts, total, params)
	return &result, nil
}

// ListPayments pages over the payment history for one account's proposals.
func (s *PaymentService) ListPayments(accountID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Payment{}).
		Joins("JOIN proposta ON proposta.id = pagamento.proposta_id").
		Where("proposta.account_id = ?", accountID)

	if params.Status != "" {
		query = query.Where("pagamento.status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	query = query.Order("pagamento.created_at desc")
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	result := utils.CreatePaginationResult(payments, total, params)
	return &result, nil
}
