package migration

import (
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger) *MigrationManager {
	return &MigrationManager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", nil)

	if err := m.db.AutoMigrate(
		&model.Wallet{},
		&model.Transfer{},
		&model.PaymentMethod{},
		&model.AuditLog{},
		&model.Cashout{},
		&model.PaymentRequest{},
		&model.Friendship{},
		&model.FeedItem{},
	); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}
