// internal/services/plan_service.go
package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrAddonNotFound = errors.New("add-on not found")
)

type PlanService struct {
	db  *gorm.DB
	cfg *config.Config
}

type PlanRequest struct {
	Name                string  `json:"name" validate:"required,min=2,max=100"`
	Price               float64 `json:"price" validate:"gte=0"`
	InboxCount          int     `json:"inbox_count" validate:"gte=0"`
	AgentCount          int     `json:"agent_count" validate:"gte=0"`
	AutomationCount     int     `json:"automation_count" validate:"gte=0"`
	InboxUnitPrice      float64 `json:"inbox_unit_price" validate:"gte=0"`
	AgentUnitPrice      float64 `json:"agent_unit_price" validate:"gte=0"`
	AutomationUnitPrice float64 `json:"automation_unit_price" validate:"gte=0"`
	Kanban              bool    `json:"kanban"`
	HumanSupport        bool    `json:"human_support"`
	OfficialWhatsApp    bool    `json:"official_whatsapp"`
	Active              *bool   `json:"active,omitempty"`
}

type AddonRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Active      *bool   `json:"active,omitempty"`
}

// PlanFilterRequest carries the wizard's desired resource quantities.
type PlanFilterRequest struct {
	InboxCount      int `form:"caixas_entrada" json:"inbox_count" validate:"gte=0"`
	AgentCount      int `form:"atendentes" json:"agent_count" validate:"gte=0"`
	AutomationCount int `form:"automacoes" json:"automation_count" validate:"gte=0"`
}

func NewPlanService(db *gorm.DB, cfg *config.Config) *PlanService {
	return &PlanService{db: db, cfg: cfg}
}

func (s *PlanService) CreatePlan(accountID uuid.UUID, req *PlanRequest) (*models.Plan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	plan := &models.Plan{
		AccountID:           accountID,
		Name:                req.Name,
		Price:               req.Price,
		InboxCount:          req.InboxCount,
		AgentCount:          req.AgentCount,
		AutomationCount:     req.AutomationCount,
		InboxUnitPrice:      req.InboxUnitPrice,
		AgentUnitPrice:      req.AgentUnitPrice,
		AutomationUnitPrice: req.AutomationUnitPrice,
		Kanban:              req.Kanban,
		HumanSupport:        req.HumanSupport,
		OfficialWhatsApp:    req.OfficialWhatsApp,
		Active:              true,
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := s.db.Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return plan, nil
}

func (s *PlanService) ListPlans(accountID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Plan{}).
		Where("account_id = ?", accountID)

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status == "active" {
		query = query.Where("active = ?", true)
	} else if params.Status == "inactive" {
		query = query.Where("active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count plans: %w", err)
	}

	var plans []models.Plan
	query = utils.ApplySort(query, params, []string{"created_at", "name", "price"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := utils.CreatePaginationResult(plans, total, params)
	return &result, nil
}

// ListActivePlans returns the full active catalog for the wizard's plan step,
// cheapest first.
func (s *PlanService) ListActivePlans(accountID uuid.UUID) ([]models.Plan, error) {
	var plans []models.Plan
	if err := s.db.Where("account_id = ? AND active = ?", accountID, true).
		Order("price asc").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (s *PlanService) GetPlan(accountID, planID uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.Where("account_id = ?", accountID).
		First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &plan, nil
}

func (s *PlanService) UpdatePlan(accountID, planID uuid.UUID, req *PlanRequest) (*models.Plan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	plan, err := s.GetPlan(accountID, planID)
	if err != nil {
		return nil, err
	}

	plan.Name = req.Name
	plan.Price = req.Price
	plan.InboxCount = req.InboxCount
	plan.AgentCount = req.AgentCount
	plan.AutomationCount = req.AutomationCount
	plan.InboxUnitPrice = req.InboxUnitPrice
	plan.AgentUnitPrice = req.AgentUnitPrice
	plan.AutomationUnitPrice = req.AutomationUnitPrice
	plan.Kanban = req.Kanban
	plan.HumanSupport = req.HumanSupport
	plan.OfficialWhatsApp = req.OfficialWhatsApp
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := s.db.Save(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	return plan, nil
}

func (s *PlanService) DeletePlan(accountID, planID uuid.UUID) error {
	result := s.db.Where("account_id = ?", accountID).Delete(&models.Plan{}, "id = ?", planID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// FilterPlans returns the active plans whose included quantities cover the
// requested resources, cheapest first. Resource needs above every plan's
// allowance come back as an empty list; the wizard then prices the overflow
// as extra units on the closest plan instead.
func (s *PlanService) FilterPlans(accountID uuid.UUID, req *PlanFilterRequest) ([]models.Plan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	plans, err := s.ListActivePlans(accountID)
	if err != nil {
		return nil, err
	}

	covering := make([]models.Plan, 0, len(plans))
	for _, p := range plans {
		if p.Covers(req.InboxCount, req.AgentCount, req.AutomationCount) {
			covering = append(covering, p)
		}
	}

	sort.SliceStable(covering, func(i, j int) bool {
		return covering[i].Price < covering[j].Price
	})

	return covering, nil
}

// Add-on catalog

func (s *PlanService) CreateAddon(accountID uuid.UUID, req *AddonRequest) (*models.PlanAddon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	addon := &models.PlanAddon{
		AccountID:   accountID,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Active:      true,
	}
	if req.Active != nil {
		addon.Active = *req.Active
	}

	if err := s.db.Create(addon).Error; err != nil {
		return nil, fmt.Errorf("failed to create add-on: %w", err)
	}

	return addon, nil
}

// ListActiveAddons feeds the wizard's add-on step.
func (s *PlanService) ListActiveAddons(accountID uuid.UUID) ([]models.PlanAddon, error) {
	var addons []models.PlanAddon
	if err := s.db.Where("account_id = ? AND active = ?", accountID, true).
		Order("name asc").
		Find(&addons).Error; err != nil {
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}
	return addons, nil
}

func (s *PlanService) GetAddon(accountID, addonID uuid.UUID) (*models.PlanAddon, error) {
	var addon models.PlanAddon
	if err := s.db.Where("account_id = ?", accountID).
		First(&addon, "id = ?", addonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddonNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &addon, nil
}

func (s *PlanService) UpdateAddon(accountID, addonID uuid.UUID, req *AddonRequest) (*models.PlanAddon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	addon, err := s.GetAddon(accountID, addonID)
	if err != nil {
		return nil, err
	}

	addon.Name = req.Name
	addon.Description = req.Description
	addon.UnitPrice = req.UnitPrice
	if req.Active != nil {
		addon.Active = *req.Active
	}

	if err := s.db.Save(addon).Error; err != nil {
		return nil, fmt.Errorf("failed to update add-on: %w", err)
	}

	return addon, nil
}

func (s *PlanService) DeleteAddon(accountID, addonID uuid.UUID) error {
	result := s.db.Where("account_id = ?", accountID).Delete(&models.PlanAddon{}, "id = ?", addonID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete add-on: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAddonNotFound
	}
	return nil
}
