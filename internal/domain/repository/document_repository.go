package repository

import (
	"context"

	"medconnect/internal/domain/entity"
)

// Document-store repositories. They own their client, so no *gorm.DB is passed.

type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	FindByID(ctx context.Context, id string) (*entity.Supply, error)
	FindAll(ctx context.Context, filter *entity.SupplyFilter) ([]entity.Supply, error)
	Update(ctx context.Context, supply *entity.Supply) error
	// AdjustQuantity applies delta atomically and returns the updated supply.
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Supply, error)
	Delete(ctx context.Context, id string) error
}

type FinancialTransactionRepository interface {
	Create(ctx context.Context, tx *entity.FinancialTransaction) error
	FindByID(ctx context.Context, id string) (*entity.FinancialTransaction, error)
	FindAll(ctx context.Context, filter *entity.TransactionFilter) ([]entity.FinancialTransaction, error)
	Update(ctx context.Context, tx *entity.FinancialTransaction) error
	Delete(ctx context.Context, id string) error
}

type ExamResultRepository interface {
	Create(ctx context.Context, result *entity.ExamResult) error
	FindByID(ctx context.Context, id string) (*entity.ExamResult, error)
	FindAll(ctx context.Context, filter *entity.ExamResultFilter) ([]entity.ExamResult, error)
	Update(ctx context.Context, result *entity.ExamResult) error
	Delete(ctx context.Context, id string) error
}
