package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinancialTransactionRequest struct {
	Type           string          `json:"type" validate:"required,oneof=income expense"`
	Category       string          `json:"category" validate:"required,max=100"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method" validate:"omitempty,max=50"`
	Status         string          `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	PatientID      string          `json:"patient_id" validate:"omitempty,uuid"`
	ProfessionalID string          `json:"professional_id" validate:"omitempty,uuid"`
	AppointmentID  string          `json:"appointment_id" validate:"omitempty,uuid"`
}

type TransactionListQuery struct {
	Type   string
	Status string
	From   *time.Time
	To     *time.Time
}

type FinancialTransactionResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Status         string          `json:"status"`
	Date           string          `json:"date"`
	PatientID      string          `json:"patient_id,omitempty"`
	ProfessionalID string          `json:"professional_id,omitempty"`
	AppointmentID  string          `json:"appointment_id,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

type FinancialSummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
	ByCategory   []CategoryTotal `json:"by_category"`
}
