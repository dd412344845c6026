// internal/models/partner.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a cliente row: a partner or reseller company served through the
// portal. Coupon fields live here because referral coupons are issued against
// the referring partner record, not as a first-class entity.
type Partner struct {
	BaseModel
	AccountID     uuid.UUID   `json:"account_id" gorm:"type:uuid;not null;index"`
	Name          string      `json:"name" gorm:"size:150;not null"`
	TradeName     string      `json:"trade_name" gorm:"column:fantasia;size:150"`
	Document      string      `json:"document" gorm:"column:cnpj;size:18;index"`
	Email         string      `json:"email" gorm:"size:255;not null"`
	Phone         string      `json:"phone" gorm:"column:fone;size:20"`
	Tier          ProfileTier `json:"perfil" gorm:"column:perfil;type:varchar(20);default:'partner'"`
	LogoURL       string      `json:"logo_url" gorm:"size:512"`
	CouponCode    string      `json:"cupom" gorm:"column:cupom;size:16;index"`
	CouponValid   bool        `json:"cupom_valido" gorm:"column:cupom_valido;default:false"`
	CouponPercent float64     `json:"cupom_desconto" gorm:"column:cupom_desconto;type:decimal(5,2);default:0"`
	Active        bool        `json:"active" gorm:"default:true;index"`

	// Relationships
	Users     []User     `json:"users,omitempty" gorm:"foreignKey:PartnerID"`
	Contracts []Contract `json:"contracts,omitempty" gorm:"foreignKey:PartnerID"`
}

func (Partner) TableName() string { return "cliente" }

// PartnerView maps the v_cliente view backing the partners list screen.
type PartnerView struct {
	ID            uuid.UUID   `json:"id"`
	AccountID     uuid.UUID   `json:"account_id"`
	Name          string      `json:"name"`
	TradeName     string      `json:"trade_name" gorm:"column:fantasia"`
	Document      string      `json:"document" gorm:"column:cnpj"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone" gorm:"column:fone"`
	Tier          ProfileTier `json:"perfil" gorm:"column:perfil"`
	Active        bool        `json:"active"`
	ProposalCount int64       `json:"proposal_count"`
	ContractCount int64       `json:"contract_count"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (PartnerView) TableName() string { return "v_cliente" }
