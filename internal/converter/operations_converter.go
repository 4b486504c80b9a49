package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
)

func SupplyToResponse(supply *entity.Supply) *dto.SupplyResponse {
	if supply == nil {
		return nil
	}

	response := &dto.SupplyResponse{
		ID:          supply.ID,
		Name:        supply.Name,
		Category:    supply.Category,
		Quantity:    supply.Quantity,
		MinQuantity: supply.MinQuantity,
		Unit:        supply.Unit,
		UnitCost:    supply.UnitCost,
		Supplier:    supply.Supplier,
		Location:    supply.Location,
		IsLowStock:  supply.IsLowStock(),
		CreatedAt:   supply.CreatedAt,
		UpdatedAt:   supply.UpdatedAt,
	}
	if supply.ExpiryDate != nil {
		response.ExpiryDate = supply.ExpiryDate.Format(dto.DateLayout)
	}
	return response
}

func SuppliesToResponses(supplies []entity.Supply) []dto.SupplyResponse {
	responses := make([]dto.SupplyResponse, len(supplies))
	for i := range supplies {
		responses[i] = *SupplyToResponse(&supplies[i])
	}
	return responses
}

func TransactionToResponse(t *entity.FinancialTransaction) *dto.FinancialTransactionResponse {
	if t == nil {
		return nil
	}
	return &dto.FinancialTransactionResponse{
		ID:             t.ID,
		Type:           string(t.Type),
		Category:       t.Category,
		Description:    t.Description,
		Amount:         t.Amount,
		PaymentMethod:  t.PaymentMethod,
		Status:         string(t.Status),
		Date:           t.Date.Format(dto.DateLayout),
		PatientID:      t.PatientID,
		ProfessionalID: t.ProfessionalID,
		AppointmentID:  t.AppointmentID,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func TransactionsToResponses(transactions []entity.FinancialTransaction) []dto.FinancialTransactionResponse {
	responses := make([]dto.FinancialTransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *TransactionToResponse(&transactions[i])
	}
	return responses
}
