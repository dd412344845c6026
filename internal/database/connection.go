// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Partner{},
		&models.Plan{},
		&models.PlanAddon{},
		&models.Proposal{},
		&models.ProposalAddon{},
		&models.Contract{},
		&models.Payment{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	// Create list views
	if err := createViews(db); err != nil {
		return fmt.Errorf("failed to create views: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_perfil_status ON users(perfil, status)",
		"CREATE INDEX IF NOT EXISTS idx_users_account ON users(account_id)",

		// Partner indexes
		"CREATE INDEX IF NOT EXISTS idx_cliente_cupom ON cliente(cupom) WHERE cupom_valido = true",
		"CREATE INDEX IF NOT EXISTS idx_cliente_account_active ON cliente(account_id, active)",

		// Plan indexes
		"CREATE INDEX IF NOT EXISTS idx_plano_account_active ON plano(account_id, active)",
		"CREATE INDEX IF NOT EXISTS idx_plano_addon_account_active ON plano_addon(account_id, active)",

		// Proposal indexes
		"CREATE INDEX IF NOT EXISTS idx_proposta_user ON proposta(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_proposta_status_active ON proposta(status, active)",
		"CREATE INDEX IF NOT EXISTS idx_proposta_created_at ON proposta(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_proposta_addon_parent ON proposta_addon(proposta_id)",

		// Contract and payment indexes
		"CREATE INDEX IF NOT EXISTS idx_contrato_partner ON contrato(partner_id)",
		"CREATE INDEX IF NOT EXISTS idx_pagamento_proposta ON pagamento(proposta_id)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// createViews materializes the denormalized read models the list screens are
// bound to.
func createViews(db *gorm.DB) error {
	views := []string{
		`CREATE OR REPLACE VIEW v_users AS
			SELECT u.id, u.account_id, u.name, u.email, u.fone, u.perfil, u.status,
			       COALESCE(c.name, '') AS partner_name, u.created_at
			FROM users u
			LEFT JOIN cliente c ON c.id = u.partner_id
			WHERE u.deleted_at IS NULL`,
		`CREATE OR REPLACE VIEW v_cliente AS
			SELECT c.id, c.account_id, c.name, c.fantasia, c.cnpj, c.email, c.fone, c.perfil, c.active,
			       (SELECT COUNT(*) FROM proposta p
			          JOIN users u ON u.id = p.user_id
			         WHERE u.partner_id = c.id AND p.deleted_at IS NULL) AS proposal_count,
			       (SELECT COUNT(*) FROM contrato ct
			         WHERE ct.partner_id = c.id AND ct.deleted_at IS NULL) AS contract_count,
			       c.created_at
			FROM cliente c
			WHERE c.deleted_at IS NULL`,
		`CREATE OR REPLACE VIEW v_proposta AS
			SELECT p.id, p.account_id, p.user_id, u.name AS user_name, p.nome, p.email,
			       p.plano_nome, p.total, p.status, p.mail_send, p.pay, p.created_at
			FROM proposta p
			JOIN users u ON u.id = p.user_id
			WHERE p.deleted_at IS NULL AND p.active = true`,
		`CREATE OR REPLACE VIEW v_contrato AS
			SELECT ct.id, ct.account_id, c.name AS partner_name, ct.title, ct.amount,
			       ct.status, ct.signed_at, ct.created_at
			FROM contrato ct
			JOIN cliente c ON c.id = ct.partner_id
			WHERE ct.deleted_at IS NULL`,
	}

	for _, view := range views {
		if err := db.Exec(view).Error; err != nil {
			return fmt.Errorf("failed to create view: %w", err)
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var adminCount int64
	db.Model(&models.User{}).Where("perfil = ?", models.TierSuperAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Name:   "Administrador",
			Email:  "admin@portaldocliente.com.br",
			Tier:   models.TierSuperAdmin,
			Status: models.UserStatusActive,
			Theme:  models.ThemeLight,
		}
		admin.AccountID = admin.ID

		if err := admin.SetPassword("Mudar123!"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		// Self-referencing tenant root
		if err := db.Model(admin).Update("account_id", admin.ID).Error; err != nil {
			return fmt.Errorf("failed to stamp admin account: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
