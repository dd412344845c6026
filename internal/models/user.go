// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	AccountID    uuid.UUID       `json:"account_id" gorm:"type:uuid;not null;index"`
	Name         string          `json:"name" gorm:"size:120;not null"`
	Email        string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string          `json:"-" gorm:"size:255;not null"`
	Phone        string          `json:"phone" gorm:"column:fone;size:20"`
	Tier         ProfileTier     `json:"perfil" gorm:"column:perfil;type:varchar(20);not null;index"`
	Status       UserStatus      `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Theme        ThemePreference `json:"theme" gorm:"type:varchar(10);default:'light'"`
	Avatar       string          `json:"avatar" gorm:"size:512"`
	PartnerID    *uuid.UUID      `json:"partner_id" gorm:"type:uuid;index"`
	LastLoginAt  *time.Time      `json:"last_login_at"`
	ProfileData  JSONB           `json:"profile_data" gorm:"type:jsonb"`

	// Relationships
	Partner   *Partner   `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	Proposals []Proposal `json:"proposals,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// UserView maps the denormalized v_users view backing the accounts list screen.
type UserView struct {
	ID          uuid.UUID   `json:"id"`
	AccountID   uuid.UUID   `json:"account_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone" gorm:"column:fone"`
	Tier        ProfileTier `json:"perfil" gorm:"column:perfil"`
	Status      UserStatus  `json:"status"`
	PartnerName string      `json:"partner_name"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (UserView) TableName() string { return "v_users" }
