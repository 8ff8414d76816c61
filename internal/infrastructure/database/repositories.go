package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roomlet/payment-service/internal/adapter/repository"
	domainRepo "github.com/roomlet/payment-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Payment domainRepo.PaymentRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Payment: repository.NewPaymentRepository(db, logger),
	}
}
