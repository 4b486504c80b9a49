package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrTransactionNotFound = errors.New("financial transaction not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDateRange    = errors.New("from must not be after to")
)

type FinancialUsecase interface {
	List(ctx context.Context, query *dto.TransactionListQuery) ([]dto.FinancialTransactionResponse, error)
	Get(ctx context.Context, id string) (*dto.FinancialTransactionResponse, error)
	Create(ctx context.Context, req *dto.FinancialTransactionRequest) (*dto.FinancialTransactionResponse, error)
	Update(ctx context.Context, id string, req *dto.FinancialTransactionRequest) (*dto.FinancialTransactionResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, from, to *time.Time) (*dto.FinancialSummaryResponse, error)
}

type financialUsecase struct {
	log             *logrus.Logger
	transactionRepo repository.FinancialTransactionRepository
}

func NewFinancialUsecase(log *logrus.Logger, transactionRepo repository.FinancialTransactionRepository) FinancialUsecase {
	return &financialUsecase{
		log:             log,
		transactionRepo: transactionRepo,
	}
}

func (u *financialUsecase) List(ctx context.Context, query *dto.TransactionListQuery) ([]dto.FinancialTransactionResponse, error) {
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, ErrInvalidDateRange
	}

	transactions, err := u.transactionRepo.FindAll(ctx, &entity.TransactionFilter{
		Type:   entity.TransactionType(query.Type),
		Status: entity.TransactionStatus(query.Status),
		From:   query.From,
		To:     query.To,
	})
	if err != nil {
		u.log.Warnf("Failed to list financial transactions: %+v", err)
		return nil, err
	}
	return converter.TransactionsToResponses(transactions), nil
}

func (u *financialUsecase) Get(ctx context.Context, id string) (*dto.FinancialTransactionResponse, error) {
	transaction, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.TransactionToResponse(transaction), nil
}

func (u *financialUsecase) Create(ctx context.Context, req *dto.FinancialTransactionRequest) (*dto.FinancialTransactionResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	transaction := &entity.FinancialTransaction{CreatedBy: a.ID.String()}
	if err := applyTransactionRequest(transaction, req); err != nil {
		return nil, err
	}

	if err := u.transactionRepo.Create(ctx, transaction); err != nil {
		u.log.Warnf("Failed to create financial transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Financial transaction recorded: id=%s, type=%s, amount=%s", transaction.ID, transaction.Type, transaction.Amount)
	return converter.TransactionToResponse(transaction), nil
}

func (u *financialUsecase) Update(ctx context.Context, id string, req *dto.FinancialTransactionRequest) (*dto.FinancialTransactionResponse, error) {
	transaction, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTransactionRequest(transaction, req); err != nil {
		return nil, err
	}

	if err := u.transactionRepo.Update(ctx, transaction); err != nil {
		u.log.Warnf("Failed to update financial transaction %s: %+v", id, err)
		return nil, err
	}
	return converter.TransactionToResponse(transaction), nil
}

func (u *financialUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.find(ctx, id); err != nil {
		return err
	}
	if err := u.transactionRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete financial transaction %s: %+v", id, err)
		return err
	}
	return nil
}

// Summary totals completed transactions in the range. Pending and cancelled
// entries are left out of every figure.
func (u *financialUsecase) Summary(ctx context.Context, from, to *time.Time) (*dto.FinancialSummaryResponse, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidDateRange
	}

	transactions, err := u.transactionRepo.FindAll(ctx, &entity.TransactionFilter{
		Status: entity.TransactionStatusCompleted,
		From:   from,
		To:     to,
	})
	if err != nil {
		u.log.Warnf("Failed to load transactions for summary: %+v", err)
		return nil, err
	}
	return summarizeTransactions(transactions), nil
}

func (u *financialUsecase) find(ctx context.Context, id string) (*entity.FinancialTransaction, error) {
	transaction, err := u.transactionRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find financial transaction %s: %+v", id, err)
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

func applyTransactionRequest(t *entity.FinancialTransaction, req *dto.FinancialTransactionRequest) error {
	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	for _, raw := range []string{req.PatientID, req.ProfessionalID, req.AppointmentID} {
		if _, err := parseOptionalUUID(raw); err != nil {
			return err
		}
	}

	status := entity.TransactionStatus(req.Status)
	if status == "" {
		status = entity.TransactionStatusCompleted
	}

	t.Type = entity.TransactionType(req.Type)
	t.Category = req.Category
	t.Description = req.Description
	t.Amount = req.Amount
	t.PaymentMethod = req.PaymentMethod
	t.Status = status
	t.Date = date
	t.PatientID = req.PatientID
	t.ProfessionalID = req.ProfessionalID
	t.AppointmentID = req.AppointmentID
	return nil
}

func summarizeTransactions(transactions []entity.FinancialTransaction) *dto.FinancialSummaryResponse {
	summary := &dto.FinancialSummaryResponse{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByCategory:   []dto.CategoryTotal{},
	}

	type key struct {
		category string
		kind     entity.TransactionType
	}
	totals := map[key]decimal.Decimal{}

	for _, t := range transactions {
		if t.Status != entity.TransactionStatusCompleted {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case entity.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
		default:
			continue
		}
		summary.Count++
		k := key{category: t.Category, kind: t.Type}
		totals[k] = totals[k].Add(t.Amount)
	}

	for k, total := range totals {
		summary.ByCategory = append(summary.ByCategory, dto.CategoryTotal{
			Category: k.category,
			Type:     string(k.kind),
			Total:    total,
		})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Category < b.Category
	})

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}
