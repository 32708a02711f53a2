package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidPaymentDate  = errors.New("payment date cannot be in the future")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrStatusNotFound      = errors.New("payment status not found")
	ErrInvalidAmount       = errors.New("invalid monetary amount")
	ErrSaleNotFound        = errors.New("sale not found")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidPaymentDate  = "INVALID_PAYMENT_DATE"
	ErrCodeInstallmentNotFound = "INSTALLMENT_NOT_FOUND"
	ErrCodeStatusNotFound      = "STATUS_NOT_FOUND"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeSaleNotFound        = "SALE_NOT_FOUND"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapInvalidPaymentDate(paymentDate string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentDate,
		fmt.Sprintf("Payment date %s is in the future", paymentDate),
		ErrInvalidPaymentDate,
	)
}

func WrapInstallmentNotFound(installmentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentNotFound,
		fmt.Sprintf("Installment with ID %d not found", installmentID),
		ErrInstallmentNotFound,
	)
}

func WrapStatusNotFound(statusID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeStatusNotFound,
		fmt.Sprintf("Payment status with ID %d not found", statusID),
		ErrStatusNotFound,
	)
}

func WrapInvalidAmount(raw string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid monetary amount: %s", raw),
		errors.Join(ErrInvalidAmount, err),
	)
}

func WrapSaleNotFound(saleID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeSaleNotFound,
		fmt.Sprintf("Sale with ID %d not found", saleID),
		ErrSaleNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
