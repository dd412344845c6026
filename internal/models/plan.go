// internal/models/plan.go
package models

import (
	"github.com/google/uuid"
)

// Plan is a plano catalog row: included resource quantities, extra-unit
// pricing and feature flags for one subscription tier.
type Plan struct {
	BaseModel
	AccountID uuid.UUID `json:"account_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`

	// Included quantities per resource type
	InboxCount      int `json:"inbox_count" gorm:"column:caixas_entrada;default:0"`
	AgentCount      int `json:"agent_count" gorm:"column:atendentes;default:0"`
	AutomationCount int `json:"automation_count" gorm:"column:automacoes;default:0"`

	// Extra-unit pricing per resource type
	InboxUnitPrice      float64 `json:"inbox_unit_price" gorm:"column:caixa_adicional;type:decimal(10,2);default:0"`
	AgentUnitPrice      float64 `json:"agent_unit_price" gorm:"column:atendente_adicional;type:decimal(10,2);default:0"`
	AutomationUnitPrice float64 `json:"automation_unit_price" gorm:"column:automacao_adicional;type:decimal(10,2);default:0"`

	// Included feature flags
	Kanban           bool `json:"kanban" gorm:"default:false"`
	HumanSupport     bool `json:"human_support" gorm:"column:suporte_humano;default:false"`
	OfficialWhatsApp bool `json:"official_whatsapp" gorm:"column:whatsapp_oficial;default:false"`

	Active bool `json:"active" gorm:"default:true;index"`
}

func (Plan) TableName() string { return "plano" }

// Covers reports whether the plan's included quantities satisfy the
// requested resource counts.
func (p *Plan) Covers(inboxes, agents, automations int) bool {
	return p.InboxCount >= inboxes &&
		p.AgentCount >= agents &&
		p.AutomationCount >= automations
}

// PlanAddon is a plano_addon catalog row: an extra purchasable unit with its
// own price.
type PlanAddon struct {
	BaseModel
	AccountID   uuid.UUID `json:"account_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Active      bool      `json:"active" gorm:"default:true;index"`
}

func (PlanAddon) TableName() string { return "plano_addon" }
