package handler

import (
	"net/http"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"

	"github.com/gorilla/mux"
)

// OperationsHandler serves the back-office stores: financial transactions and
// the supply inventory. Both use document ids.
type OperationsHandler struct {
	financialUsecase usecase.FinancialUsecase
	supplyUsecase    usecase.SupplyUsecase
	validator        *validator.CustomValidator
}

func NewOperationsHandler(financialUsecase usecase.FinancialUsecase, supplyUsecase usecase.SupplyUsecase, validator *validator.CustomValidator) *OperationsHandler {
	return &OperationsHandler{
		financialUsecase: financialUsecase,
		supplyUsecase:    supplyUsecase,
		validator:        validator,
	}
}

func writeOperationsError(w http.ResponseWriter, err error, fallback string) {
	if handleAccessError(w, err) {
		return
	}
	switch err {
	case usecase.ErrTransactionNotFound:
		response.NotFound(w, "Transaction not found")
	case usecase.ErrSupplyNotFound:
		response.NotFound(w, "Supply not found")
	case usecase.ErrInvalidAmount, usecase.ErrInvalidDateRange, usecase.ErrInsufficientStock, usecase.ErrZeroDelta:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// ListTransactions returns financial transactions
// @Summary List transactions
// @Tags Financial
// @Security BearerAuth
// @Param type query string false "income or expense"
// @Param status query string false "pending, completed or cancelled"
// @Param from query string false "From date"
// @Param to query string false "To date"
// @Router /financial/transactions [get]
func (h *OperationsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		response.BadRequest(w, "Invalid from date")
		return
	}
	to, err := queryEndTime(r, "to")
	if err != nil {
		response.BadRequest(w, "Invalid to date")
		return
	}

	transactions, err := h.financialUsecase.List(r.Context(), &dto.TransactionListQuery{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
		From:   from,
		To:     to,
	})
	if err != nil {
		writeOperationsError(w, err, "Failed to get transactions")
		return
	}

	response.Success(w, http.StatusOK, "Transactions retrieved successfully", transactions)
}

func (h *OperationsHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.financialUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeOperationsError(w, err, "Failed to get transaction")
		return
	}

	response.Success(w, http.StatusOK, "Transaction retrieved successfully", transaction)
}

func (h *OperationsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.FinancialTransactionRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	transaction, err := h.financialUsecase.Create(r.Context(), &req)
	if err != nil {
		writeOperationsError(w, err, "Failed to create transaction")
		return
	}

	response.Success(w, http.StatusCreated, "Transaction created successfully", transaction)
}

func (h *OperationsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.FinancialTransactionRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	transaction, err := h.financialUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeOperationsError(w, err, "Failed to update transaction")
		return
	}

	response.Success(w, http.StatusOK, "Transaction updated successfully", transaction)
}

func (h *OperationsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.financialUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeOperationsError(w, err, "Failed to delete transaction")
		return
	}

	response.Success(w, http.StatusOK, "Transaction deleted successfully", nil)
}

func (h *OperationsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		response.BadRequest(w, "Invalid from date")
		return
	}
	to, err := queryEndTime(r, "to")
	if err != nil {
		response.BadRequest(w, "Invalid to date")
		return
	}

	summary, err := h.financialUsecase.Summary(r.Context(), from, to)
	if err != nil {
		writeOperationsError(w, err, "Failed to summarize transactions")
		return
	}

	response.Success(w, http.StatusOK, "Financial summary retrieved successfully", summary)
}

func (h *OperationsHandler) ListSupplies(w http.ResponseWriter, r *http.Request) {
	supplies, err := h.supplyUsecase.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeOperationsError(w, err, "Failed to get supplies")
		return
	}

	response.Success(w, http.StatusOK, "Supplies retrieved successfully", supplies)
}

func (h *OperationsHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	supplies, err := h.supplyUsecase.LowStock(r.Context())
	if err != nil {
		writeOperationsError(w, err, "Failed to get low stock supplies")
		return
	}

	response.Success(w, http.StatusOK, "Low stock supplies retrieved successfully", supplies)
}

func (h *OperationsHandler) GetSupply(w http.ResponseWriter, r *http.Request) {
	supply, err := h.supplyUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeOperationsError(w, err, "Failed to get supply")
		return
	}

	response.Success(w, http.StatusOK, "Supply retrieved successfully", supply)
}

func (h *OperationsHandler) CreateSupply(w http.ResponseWriter, r *http.Request) {
	var req dto.SupplyRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	supply, err := h.supplyUsecase.Create(r.Context(), &req)
	if err != nil {
		writeOperationsError(w, err, "Failed to create supply")
		return
	}

	response.Success(w, http.StatusCreated, "Supply created successfully", supply)
}

func (h *OperationsHandler) UpdateSupply(w http.ResponseWriter, r *http.Request) {
	var req dto.SupplyRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	supply, err := h.supplyUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeOperationsError(w, err, "Failed to update supply")
		return
	}

	response.Success(w, http.StatusOK, "Supply updated successfully", supply)
}

// AdjustQuantity applies a signed stock movement
// @Summary Adjust supply quantity
// @Tags Supplies
// @Security BearerAuth
// @Param request body dto.AdjustSupplyQuantityRequest true "Delta"
// @Failure 400 {object} response.Response "Stock would go negative"
// @Router /supplies/{id}/quantity [patch]
func (h *OperationsHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustSupplyQuantityRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	supply, err := h.supplyUsecase.AdjustQuantity(r.Context(), mux.Vars(r)["id"], req.Delta)
	if err != nil {
		writeOperationsError(w, err, "Failed to adjust supply quantity")
		return
	}

	response.Success(w, http.StatusOK, "Supply quantity adjusted successfully", supply)
}

func (h *OperationsHandler) DeleteSupply(w http.ResponseWriter, r *http.Request) {
	if err := h.supplyUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeOperationsError(w, err, "Failed to delete supply")
		return
	}

	response.Success(w, http.StatusOK, "Supply deleted successfully", nil)
}
