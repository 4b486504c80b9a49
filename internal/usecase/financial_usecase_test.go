package usecase

import (
	"context"
	"testing"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(kind entity.TransactionType, status entity.TransactionStatus, category, amount string) entity.FinancialTransaction {
	return entity.FinancialTransaction{
		Type:     kind,
		Status:   status,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestSummarizeTransactions(t *testing.T) {
	summary := summarizeTransactions([]entity.FinancialTransaction{
		txn(entity.TransactionTypeIncome, entity.TransactionStatusCompleted, "consultation", "150.10"),
		txn(entity.TransactionTypeIncome, entity.TransactionStatusCompleted, "consultation", "49.90"),
		txn(entity.TransactionTypeIncome, entity.TransactionStatusCompleted, "exam", "80"),
		txn(entity.TransactionTypeExpense, entity.TransactionStatusCompleted, "supplies", "30.25"),
		txn(entity.TransactionTypeExpense, entity.TransactionStatusPending, "supplies", "1000"),
		txn(entity.TransactionTypeIncome, entity.TransactionStatusCancelled, "exam", "999"),
	})

	assert.True(t, decimal.RequireFromString("280").Equal(summary.TotalIncome))
	assert.True(t, decimal.RequireFromString("30.25").Equal(summary.TotalExpense))
	assert.True(t, decimal.RequireFromString("249.75").Equal(summary.Balance))
	assert.Equal(t, 4, summary.Count)

	require.Len(t, summary.ByCategory, 3)
	assert.Equal(t, "expense", summary.ByCategory[0].Type)
	assert.Equal(t, "consultation", summary.ByCategory[1].Category)
	assert.True(t, decimal.RequireFromString("200").Equal(summary.ByCategory[1].Total))
	assert.Equal(t, "exam", summary.ByCategory[2].Category)
}

func TestSummarizeTransactions_Empty(t *testing.T) {
	summary := summarizeTransactions(nil)
	assert.True(t, summary.Balance.IsZero())
	assert.Equal(t, 0, summary.Count)
	assert.NotNil(t, summary.ByCategory)
}

func TestFinancialSummary_OnlyCompleted(t *testing.T) {
	repo := &mockTransactionRepo{}
	var got *entity.TransactionFilter
	repo.FindAllFn = func(ctx context.Context, filter *entity.TransactionFilter) ([]entity.FinancialTransaction, error) {
		got = filter
		return nil, nil
	}
	uc := NewFinancialUsecase(quietLogger(), repo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := uc.Summary(context.Background(), &from, &to)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, got.Status)

	_, err = uc.Summary(context.Background(), &to, &from)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestFinancialCreate(t *testing.T) {
	repo := &mockTransactionRepo{}
	uc := NewFinancialUsecase(quietLogger(), repo)
	adminID := uuid.New()
	ctx := ctxAs(adminID, entity.RoleIDAdmin)

	resp, err := uc.Create(ctx, &dto.FinancialTransactionRequest{
		Type:     "income",
		Category: "consultation",
		Amount:   decimal.RequireFromString("120.00"),
		Date:     "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "2026-03-02", resp.Date)
	require.Len(t, repo.Created, 1)
	assert.Equal(t, adminID.String(), repo.Created[0].CreatedBy)

	_, err = uc.Create(ctx, &dto.FinancialTransactionRequest{
		Type:     "expense",
		Category: "rent",
		Amount:   decimal.Zero,
		Date:     "2026-03-02",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = uc.Create(ctx, &dto.FinancialTransactionRequest{
		Type:     "expense",
		Category: "rent",
		Amount:   decimal.NewFromInt(10),
		Date:     "02/03/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
