package repository

import (
	"context"
	"time"

	"medconnect/internal/domain/entity"
	domainRepo "medconnect/internal/domain/repository"
	"medconnect/internal/infrastructure/docstore"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const financialTransactionsCollection = "financial_transactions"

type financialTransactionDoc struct {
	Type           string    `firestore:"type"`
	Category       string    `firestore:"category"`
	Description    string    `firestore:"description"`
	Amount         string    `firestore:"amount"`
	PaymentMethod  string    `firestore:"payment_method"`
	Status         string    `firestore:"status"`
	Date           time.Time `firestore:"date"`
	PatientID      string    `firestore:"patient_id"`
	ProfessionalID string    `firestore:"professional_id"`
	AppointmentID  string    `firestore:"appointment_id"`
	CreatedBy      string    `firestore:"created_by"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func newFinancialTransactionDoc(t *entity.FinancialTransaction) financialTransactionDoc {
	return financialTransactionDoc{
		Type:           string(t.Type),
		Category:       t.Category,
		Description:    t.Description,
		Amount:         t.Amount.String(),
		PaymentMethod:  t.PaymentMethod,
		Status:         string(t.Status),
		Date:           t.Date,
		PatientID:      t.PatientID,
		ProfessionalID: t.ProfessionalID,
		AppointmentID:  t.AppointmentID,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (d financialTransactionDoc) toEntity(id string) (entity.FinancialTransaction, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return entity.FinancialTransaction{}, err
	}
	return entity.FinancialTransaction{
		ID:             id,
		Type:           entity.TransactionType(d.Type),
		Category:       d.Category,
		Description:    d.Description,
		Amount:         amount,
		PaymentMethod:  d.PaymentMethod,
		Status:         entity.TransactionStatus(d.Status),
		Date:           d.Date,
		PatientID:      d.PatientID,
		ProfessionalID: d.ProfessionalID,
		AppointmentID:  d.AppointmentID,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

func decodeFinancialTransaction(snap *firestore.DocumentSnapshot) (entity.FinancialTransaction, error) {
	var doc financialTransactionDoc
	if err := snap.DataTo(&doc); err != nil {
		return entity.FinancialTransaction{}, err
	}
	return doc.toEntity(snap.Ref.ID)
}

type financialTransactionRepository struct {
	client *firestore.Client
	log    *logrus.Logger
}

func NewFinancialTransactionRepository(client *firestore.Client, log *logrus.Logger) domainRepo.FinancialTransactionRepository {
	return &financialTransactionRepository{client: client, log: log}
}

func (r *financialTransactionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(financialTransactionsCollection)
}

func (r *financialTransactionRepository) Create(ctx context.Context, tx *entity.FinancialTransaction) error {
	ref := r.collection().NewDoc()
	now := time.Now().UTC()
	tx.ID = ref.ID
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := ref.Create(ctx, newFinancialTransactionDoc(tx))
	return err
}

func (r *financialTransactionRepository) FindByID(ctx context.Context, id string) (*entity.FinancialTransaction, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	tx, err := decodeFinancialTransaction(snap)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// FindAll orders by date, newest first. Equality filters run in the store on
// both paths; the date range is only pushed down on the ordered path.
func (r *financialTransactionRepository) FindAll(ctx context.Context, filter *entity.TransactionFilter) ([]entity.FinancialTransaction, error) {
	if filter == nil {
		filter = &entity.TransactionFilter{}
	}

	base := r.collection().Query
	if filter.Type != "" {
		base = base.Where("type", "==", string(filter.Type))
	}
	if filter.Status != "" {
		base = base.Where("status", "==", string(filter.Status))
	}

	ordered := func(ctx context.Context) ([]entity.FinancialTransaction, error) {
		query := base
		if filter.From != nil {
			query = query.Where("date", ">=", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("date", "<=", *filter.To)
		}
		return docstore.Collect(query.OrderBy("date", firestore.Desc).Documents(ctx), decodeFinancialTransaction)
	}
	unordered := func(ctx context.Context) ([]entity.FinancialTransaction, error) {
		rows, err := docstore.Collect(base.Documents(ctx), decodeFinancialTransaction)
		if err != nil {
			return nil, err
		}
		return filterTransactionsByDate(rows, filter.From, filter.To), nil
	}

	return docstore.QueryWithFallback(ctx, r.log, financialTransactionsCollection, ordered, unordered,
		func(a, b entity.FinancialTransaction) bool { return a.Date.After(b.Date) })
}

func filterTransactionsByDate(rows []entity.FinancialTransaction, from, to *time.Time) []entity.FinancialTransaction {
	if from == nil && to == nil {
		return rows
	}
	kept := rows[:0]
	for _, row := range rows {
		if from != nil && row.Date.Before(*from) {
			continue
		}
		if to != nil && row.Date.After(*to) {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

func (r *financialTransactionRepository) Update(ctx context.Context, tx *entity.FinancialTransaction) error {
	tx.UpdatedAt = time.Now().UTC()
	_, err := r.collection().Doc(tx.ID).Set(ctx, newFinancialTransactionDoc(tx))
	return err
}

func (r *financialTransactionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	return err
}
