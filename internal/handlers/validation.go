package handlers

import (
	"sync"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the "category" and "txnkind" tags to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("txnkind", validateTransactionKind)
	})
}

func validateCategory(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).IsValid()
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	return domain.TransactionKind(fl.Field().String()).IsValid()
}
