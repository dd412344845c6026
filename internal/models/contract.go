// internal/models/contract.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Contract is the signed agreement that an approved proposal turns into.
type Contract struct {
	BaseModel
	AccountID   uuid.UUID      `json:"account_id" gorm:"type:uuid;not null;index"`
	PartnerID   uuid.UUID      `json:"partner_id" gorm:"type:uuid;not null;index"`
	ProposalID  *uuid.UUID     `json:"proposal_id" gorm:"column:proposta_id;type:uuid;index"`
	Title       string         `json:"title" gorm:"size:150;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status      ContractStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SignedAt    *time.Time     `json:"signed_at"`
	Attachments pq.StringArray `json:"attachments" gorm:"type:text[]"`

	// Relationships
	Partner  Partner   `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	Proposal *Proposal `json:"proposal,omitempty" gorm:"foreignKey:ProposalID"`
}

func (Contract) TableName() string { return "contrato" }

// ContractView maps the v_contrato view backing the financial list screen.
type ContractView struct {
	ID          uuid.UUID      `json:"id"`
	AccountID   uuid.UUID      `json:"account_id"`
	PartnerName string         `json:"partner_name"`
	Title       string         `json:"title"`
	Amount      float64        `json:"amount"`
	Status      ContractStatus `json:"status"`
	SignedAt    *time.Time     `json:"signed_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (ContractView) TableName() string { return "v_contrato" }

// Payment records one charge attempt against an accepted proposal.
type Payment struct {
	BaseModel
	ProposalID       uuid.UUID     `json:"proposal_id" gorm:"column:proposta_id;type:uuid;not null;index"`
	Amount           float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod    string        `json:"payment_method" gorm:"size:50"`
	PaymentReference string        `json:"payment_reference" gorm:"size:255"`
	Status           PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time    `json:"processed_at"`

	// Relationships
	Proposal Proposal `json:"proposal,omitempty" gorm:"foreignKey:ProposalID"`
}

func (Payment) TableName() string { return "pagamento" }
