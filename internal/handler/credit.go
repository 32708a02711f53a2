package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/crediario/credit-engine/internal/domain"
	"github.com/crediario/credit-engine/internal/service"
	customError "github.com/crediario/credit-engine/pkg/errors"
	"github.com/crediario/credit-engine/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

type CreditHandler struct {
	reconciler *service.ReconciliationService
	payments   *service.PaymentService
	validator  *validator.Validate
}

func NewCreditHandler(reconciler *service.ReconciliationService, payments *service.PaymentService) *CreditHandler {
	return &CreditHandler{
		reconciler: reconciler,
		payments:   payments,
		validator:  validator.New(),
	}
}

// ListInstallments runs a reconciliation sweep and returns the considered
// set. Optional from/to query parameters (YYYY-MM-DD, inclusive) scope the
// sweep to a due-date range.
func (h *CreditHandler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r, "from")
	if err != nil {
		response.BadRequest(w, "invalid 'from' date, expected YYYY-MM-DD", err)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		response.BadRequest(w, "invalid 'to' date, expected YYYY-MM-DD", err)
		return
	}

	today := time.Now()

	var result *domain.ReconcileResult
	if from == nil && to == nil {
		result, err = h.reconciler.ReconcileAll(r.Context(), today)
	} else {
		result, err = h.reconciler.ReconcileRange(r.Context(), from, to, today)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, result)
}

// GetInstallment returns one installment with its parent sale.
func (h *CreditHandler) GetInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid installment id", err)
		return
	}

	installment, err := h.reconciler.GetInstallment(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, installment)
}

// ApplyPayment records a payment against an installment.
func (h *CreditHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	msg, err := h.payments.ApplyPayment(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, domain.ApplyPaymentResponse{Message: msg})
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	var bizErr *customError.BusinessError
	if errors.As(err, &bizErr) {
		switch bizErr.Code {
		case customError.ErrCodeInstallmentNotFound,
			customError.ErrCodeStatusNotFound,
			customError.ErrCodeSaleNotFound:
			response.NotFound(w, bizErr.Message)
			return
		case customError.ErrCodeInvalidPaymentDate,
			customError.ErrCodeInvalidAmount:
			response.BadRequest(w, bizErr.Message, bizErr.Err)
			return
		}
	}

	response.InternalServerError(w, "internal error", err)
}
