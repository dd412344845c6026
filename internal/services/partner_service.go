// internal/services/partner_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/pricing"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

var ErrPartnerNotFound = errors.New("partner not found")

type PartnerService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
}

type CreatePartnerRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=150"`
	TradeName     string  `json:"fantasia,omitempty" validate:"omitempty,max=150"`
	Document      string  `json:"cnpj" validate:"required,cnpj"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"fone,omitempty" validate:"omitempty,max=20"`
	Tier          string  `json:"perfil,omitempty"`
	CouponPercent float64 `json:"cupom_desconto,omitempty"`
	IssueCoupon   bool    `json:"issue_coupon,omitempty"`
}

type UpdatePartnerRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	TradeName     *string  `json:"fantasia,omitempty" validate:"omitempty,max=150"`
	Document      *string  `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string  `json:"fone,omitempty" validate:"omitempty,max=20"`
	CouponCode    *string  `json:"cupom,omitempty" validate:"omitempty,coupon_code"`
	CouponValid   *bool    `json:"cupom_valido,omitempty"`
	CouponPercent *float64 `json:"cupom_desconto,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

// CouponResult is what the wizard's coupon field resolves to. Percent follows
// the non-positive convention; a miss is a zero-percent result, not an error.
type CouponResult struct {
	Code    string  `json:"cupom"`
	Valid   bool    `json:"valid"`
	Percent float64 `json:"cupom_desconto"`
}

func NewPartnerService(db *gorm.DB, cfg *config.Config, storage *StorageService) *PartnerService {
	return &PartnerService{db: db, cfg: cfg, storage: storage}
}

func (s *PartnerService) CreatePartner(accountID uuid.UUID, req *CreatePartnerRequest) (*models.Partner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tier := models.TierPartner
	if req.Tier != "" {
		tier = models.ProfileTier(req.Tier)
		if tier != models.TierPartner && tier != models.TierReseller && tier != models.TierClient {
			return nil, fmt.Errorf("invalid partner tier %q", req.Tier)
		}
	}

	partner := &models.Partner{
		AccountID:     accountID,
		Name:          req.Name,
		TradeName:     req.TradeName,
		Document:      req.Document,
		Email:         req.Email,
		Phone:         req.Phone,
		Tier:          tier,
		CouponPercent: pricing.NormalizePercent(req.CouponPercent),
		Active:        true,
	}

	if req.IssueCoupon {
		code, err := utils.GenerateCouponCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate coupon code: %w", err)
		}
		partner.CouponCode = code
		partner.CouponValid = true
	}

	if err := s.db.Create(partner).Error; err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	return partner, nil
}

// ListPartners pages over the v_cliente view scoped to one account.
func (s *PartnerService) ListPartners(accountID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PartnerView{}).
		Where("account_id = ?", accountID)

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR fantasia ILIKE ? OR cnpj ILIKE ?", searchTerm, searchTerm, searchTerm)
	}
	if params.Status == "active" {
		query = query.Where("active = ?", true)
	} else if params.Status == "inactive" {
		query = query.Where("active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count partners: %w", err)
	}

	var partners []models.PartnerView
	query = utils.ApplySort(query, params, []string{"created_at", "name", "fantasia", "cnpj"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	result := utils.CreatePaginationResult(partners, total, params)
	return &result, nil
}

func (s *PartnerService) GetPartner(accountID, partnerID uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := s.db.Where("account_id = ?", accountID).
		First(&partner, "id = ?", partnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &partner, nil
}

func (s *PartnerService) UpdatePartner(accountID, partnerID uuid.UUID, req *UpdatePartnerRequest) (*models.Partner, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	partner, err := s.GetPartner(accountID, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.TradeName != nil {
		partner.TradeName = *req.TradeName
	}
	if req.Document != nil {
		partner.Document = *req.Document
	}
	if req.Email != nil {
		partner.Email = *req.Email
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.CouponCode != nil {
		partner.CouponCode = strings.TrimSpace(*req.CouponCode)
	}
	if req.CouponValid != nil {
		partner.CouponValid = *req.CouponValid
	}
	if req.CouponPercent != nil {
		partner.CouponPercent = pricing.NormalizePercent(*req.CouponPercent)
	}
	if req.Active != nil {
		partner.Active = *req.Active
	}

	if err := s.db.Save(partner).Error; err != nil {
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}

	return partner, nil
}

func (s *PartnerService) DeletePartner(accountID, partnerID uuid.UUID) error {
	result := s.db.Where("account_id = ?", accountID).Delete(&models.Partner{}, "id = ?", partnerID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete partner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPartnerNotFound
	}
	return nil
}

// LookupCoupon resolves a typed coupon code. Codes that are not exactly
// sixteen characters resolve to zero discount without a database round trip,
// so partial input while typing never spams the catalog.
func (s *PartnerService) LookupCoupon(code string) (*CouponResult, error) {
	code = strings.TrimSpace(code)
	if !pricing.CouponLookupNeeded(code) {
		return &CouponResult{Code: code, Valid: false, Percent: 0}, nil
	}

	var partner models.Partner
	err := s.db.Where("cupom = ? AND cupom_valido = ? AND active = ?", code, true, true).
		First(&partner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CouponResult{Code: code, Valid: false, Percent: 0}, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &CouponResult{
		Code:    code,
		Valid:   true,
		Percent: pricing.NormalizePercent(partner.CouponPercent),
	}, nil
}

// UploadLogo stores the partner's logo in S3 and records the resulting URL.
func (s *PartnerService) UploadLogo(accountID, partnerID uuid.UUID, file *multipart.FileHeader) (*models.Partner, error) {
	partner, err := s.GetPartner(accountID, partnerID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.UploadFile(file, fmt.Sprintf("partners/%s/logo", partnerID))
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	partner.LogoURL = url
	if err := s.db.Save(partner).Error; err != nil {
		return nil, fmt.Errorf("failed to save logo URL: %w", err)
	}

	return partner, nil
}
