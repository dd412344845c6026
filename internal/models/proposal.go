// internal/models/proposal.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Proposal is a proposta header row: one draft or finalized quote for a
// prospective client. Discount percentages are stored non-positive in
// [-100, 0]; the derived currency values (desconto_valor,
// cupom_desconto_valor) are recomputed on read and never persisted.
type Proposal struct {
	BaseModel
	AccountID uuid.UUID   `json:"account_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Tier      ProfileTier `json:"perfil" gorm:"column:perfil;type:varchar(20);not null"`

	// Chosen plan; name denormalized at selection time
	PlanID   *uuid.UUID `json:"plan_id" gorm:"column:plano_id;type:uuid;index"`
	PlanName string     `json:"plan_name" gorm:"column:plano_nome;size:100"`

	// Prospective client identity and contact
	ClientName      string `json:"nome" gorm:"column:nome;size:150"`
	ClientEmail     string `json:"email" gorm:"size:255"`
	ClientPhone     string `json:"fone" gorm:"column:fone;size:20"`
	CompanyName     string `json:"empresa" gorm:"column:empresa;size:150"`
	CompanyDocument string `json:"cnpj" gorm:"column:cnpj;size:18"`

	// Responsible and financial contact, collected on public confirmation
	ResponsibleName  string `json:"resp_nome" gorm:"column:resp_nome;size:150"`
	ResponsibleEmail string `json:"resp_email" gorm:"column:resp_email;size:255"`
	ResponsiblePhone string `json:"resp_fone" gorm:"column:resp_fone;size:20"`
	FinancialName    string `json:"fin_nome" gorm:"column:fin_nome;size:150"`
	FinancialEmail   string `json:"fin_email" gorm:"column:fin_email;size:255"`
	FinancialPhone   string `json:"fin_fone" gorm:"column:fin_fone;size:20"`

	// Quantities
	InboxCount      int `json:"inbox_count" gorm:"column:caixas_entrada;default:0"`
	AgentCount      int `json:"agent_count" gorm:"column:atendentes;default:0"`
	AutomationCount int `json:"automation_count" gorm:"column:automacoes;default:0"`

	// Feature flags
	Kanban           bool `json:"kanban" gorm:"default:false"`
	HumanSupport     bool `json:"human_support" gorm:"column:suporte_humano;default:false"`
	OfficialWhatsApp bool `json:"official_whatsapp" gorm:"column:whatsapp_oficial;default:false"`

	// Monetary fields; percentages ≤ 0, currency values derived
	Subtotal       float64 `json:"subtotal" gorm:"type:decimal(10,2);default:0"`
	AddonTotal     float64 `json:"total_addons" gorm:"column:total_addons;type:decimal(10,2);default:0"`
	DiscountPct    float64 `json:"desconto" gorm:"column:desconto;type:decimal(5,2);default:0"`
	CouponCode     string  `json:"cupom" gorm:"column:cupom;size:16"`
	CouponPct      float64 `json:"cupom_desconto" gorm:"column:cupom_desconto;type:decimal(5,2);default:0"`
	Total          float64 `json:"total" gorm:"type:decimal(10,2);default:0"`
	DiscountValue  float64 `json:"desconto_valor" gorm:"-"`
	CouponValue    float64 `json:"cupom_desconto_valor" gorm:"-"`

	ValidityDays int            `json:"validade" gorm:"column:validade;default:10"`
	MailSent     bool           `json:"mail_send" gorm:"column:mail_send;default:false"`
	Paid         bool           `json:"pay" gorm:"column:pay;default:false"`
	Status       ProposalStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Active       bool           `json:"active" gorm:"default:true;index"`
	UpdatedBy    *uuid.UUID     `json:"updated_by" gorm:"type:uuid"`

	// Relationships
	User   User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Plan   *Plan           `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	Addons []ProposalAddon `json:"addons,omitempty" gorm:"foreignKey:ProposalID"`
}

func (Proposal) TableName() string { return "proposta" }

// CommercialEditable reports whether the proposal still accepts edits to
// commercial fields through the normal screens. Approved proposals only take
// status-only updates elsewhere in the system.
func (p *Proposal) CommercialEditable() bool {
	return p.Status != ProposalStatusApproved
}

// ExpiresAt is the end of the proposal's validity window.
func (p *Proposal) ExpiresAt() time.Time {
	return p.CreatedAt.AddDate(0, 0, p.ValidityDays)
}

// ProposalAddon is one proposta_addon line: (proposal, add-on) with quantity
// and the unit price captured at selection time, so later catalog price
// changes do not drift already issued quotes.
type ProposalAddon struct {
	BaseModel
	ProposalID uuid.UUID `json:"proposal_id" gorm:"column:proposta_id;type:uuid;not null;index"`
	AddonID    uuid.UUID `json:"addon_id" gorm:"type:uuid;not null;index"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Addon PlanAddon `json:"addon,omitempty" gorm:"foreignKey:AddonID"`
}

func (ProposalAddon) TableName() string { return "proposta_addon" }

// ProposalView maps the denormalized v_proposta view backing the proposals
// list screen.
type ProposalView struct {
	ID         uuid.UUID      `json:"id"`
	AccountID  uuid.UUID      `json:"account_id"`
	UserID     uuid.UUID      `json:"user_id"`
	UserName   string         `json:"user_name"`
	ClientName string         `json:"nome" gorm:"column:nome"`
	Email      string         `json:"email"`
	PlanName   string         `json:"plan_name" gorm:"column:plano_nome"`
	Total      float64        `json:"total"`
	Status     ProposalStatus `json:"status"`
	MailSent   bool           `json:"mail_send" gorm:"column:mail_send"`
	Paid       bool           `json:"pay" gorm:"column:pay"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (ProposalView) TableName() string { return "v_proposta" }
