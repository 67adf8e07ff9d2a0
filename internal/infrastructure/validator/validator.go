package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// AppValidator validates handler input that gin's binding tags cannot cover,
// such as path parameters.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new AppValidator with the custom rules registered.
func NewValidator() *AppValidator {
	v := validator.New()
	_ = v.RegisterValidation("itemid", itemIDFL)
	return &AppValidator{validate: v}
}

// ValidateItemID checks that an item ID is non-empty, within bounds and free
// of whitespace.
func (av *AppValidator) ValidateItemID(itemID string) error {
	return av.validate.Var(itemID, "required,max=128,itemid")
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("itemid", itemIDFL)
	}
}

// itemIDFL rejects IDs containing whitespace.
func itemIDFL(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
}
