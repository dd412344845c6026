// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/permissions"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

var (
	ErrTierNotAssignable = errors.New("profile tier not assignable by operator")
	ErrEmailTaken        = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CreateAccountRequest struct {
	Name      string     `json:"name" validate:"required,min=2,max=120"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,strong_password"`
	Phone     string     `json:"fone,omitempty" validate:"omitempty,max=20"`
	Tier      string     `json:"perfil" validate:"required"`
	PartnerID *uuid.UUID `json:"partner_id,omitempty"`
}

type UpdateAccountRequest struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone     *string    `json:"fone,omitempty" validate:"omitempty,max=20"`
	Tier      *string    `json:"perfil,omitempty"`
	PartnerID *uuid.UUID `json:"partner_id,omitempty"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone           *string `json:"fone,omitempty" validate:"omitempty,max=20"`
	Avatar          *string `json:"avatar,omitempty" validate:"omitempty,url"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty" validate:"omitempty,strong_password"`
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// CreateAccount provisions a user under the operator's account. The target
// tier must be within what the operator's own tier may hand out.
func (s *UserService) CreateAccount(operatorTier models.ProfileTier, accountID uuid.UUID, req *CreateAccountRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	targetTier := models.ProfileTier(req.Tier)
	if !permissions.CanAssign(operatorTier, targetTier) {
		return nil, ErrTierNotAssignable
	}

	// Check email uniqueness
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		AccountID: accountID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Tier:      targetTier,
		Status:    models.UserStatusActive,
		Theme:     models.ThemeLight,
		PartnerID: req.PartnerID,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListAccounts pages over the v_users view scoped to one account.
func (s *UserService) ListAccounts(accountID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.UserView{}).
		Where("account_id = ?", accountID)

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.UserView
	query = utils.ApplySort(query, params, []string{"created_at", "name", "email", "perfil", "status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

func (s *UserService) GetAccount(accountID, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Partner").
		Where("account_id = ?", accountID).
		First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateAccount(operatorTier models.ProfileTier, accountID, userID uuid.UUID, req *UpdateAccountRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetAccount(accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Tier != nil {
		targetTier := models.ProfileTier(*req.Tier)
		if targetTier != user.Tier && !permissions.CanAssign(operatorTier, targetTier) {
			return nil, ErrTierNotAssignable
		}
		user.Tier = targetTier
	}
	if req.PartnerID != nil {
		user.PartnerID = req.PartnerID
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) DeleteAccount(accountID, userID uuid.UUID) error {
	result := s.db.Where("account_id = ?", accountID).Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetAccountStatus flips a user between active and locked. Locked users keep
// their data but cannot sign in until unlocked.
func (s *UserService) SetAccountStatus(accountID, userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	user, err := s.GetAccount(accountID, userID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return user, nil
}

// UpdateTheme persists the user's light/dark preference so it follows them
// across devices.
func (s *UserService) UpdateTheme(userID uuid.UUID, theme models.ThemePreference) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}

	result := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("theme", theme)
	if result.Error != nil {
		return fmt.Errorf("failed to update theme: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfile handles the self-service profile screen, including password
// change which requires the current password.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil {
			return nil, errors.New("current password is required")
		}
		if err := user.CheckPassword(*req.CurrentPassword); err != nil {
			return nil, errors.New("current password is incorrect")
		}
		if err := user.SetPassword(*req.NewPassword); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}
