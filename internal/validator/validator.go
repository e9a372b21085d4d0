// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("entry_side", validateEntrySide)
		_ = v.RegisterValidation("proposal_status", validateProposalStatus)
		_ = v.RegisterValidation("accounting_method", validateAccountingMethod)
		_ = v.RegisterValidation("org_role", validateOrgRole)
	}
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asset", "liability", "equity", "income", "expense":
		return true
	}
	return false
}

func validateEntrySide(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debit", "credit":
		return true
	}
	return false
}

func validateProposalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "approved", "rejected":
		return true
	}
	return false
}

func validateAccountingMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "accrual":
		return true
	}
	return false
}

func validateOrgRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "owner", "bookkeeper", "viewer":
		return true
	}
	return false
}
