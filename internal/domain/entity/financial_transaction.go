package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// FinancialTransaction is an income or expense entry kept in the document store
type FinancialTransaction struct {
	ID             string            `json:"id"`
	Type           TransactionType   `json:"type"`
	Category       string            `json:"category"`
	Description    string            `json:"description,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	PaymentMethod  string            `json:"payment_method,omitempty"`
	Status         TransactionStatus `json:"status"`
	Date           time.Time         `json:"date"`
	PatientID      string            `json:"patient_id,omitempty"`
	ProfessionalID string            `json:"professional_id,omitempty"`
	AppointmentID  string            `json:"appointment_id,omitempty"`
	CreatedBy      string            `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type TransactionFilter struct {
	Type   TransactionType
	Status TransactionStatus
	From   *time.Time
	To     *time.Time
}
