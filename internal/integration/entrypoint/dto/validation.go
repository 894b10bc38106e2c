package dto

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// RegisterValidators registers the ledger-specific tags on gin's validator:
// datekey (YYYY-MM-DD), timekey (HH:mm:ss), objectid (24 hex) and phone.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	validators := map[string]validator.Func{
		"datekey":  stringRule(valueobject.IsDateKey),
		"timekey":  stringRule(valueobject.IsTimeKey),
		"objectid": stringRule(valueobject.IsValidID),
		"phone":    stringRule(phonePattern.MatchString),
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

func stringRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

// ValidationDetails flattens binding errors into "field: rule" pairs.
func ValidationDetails(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	details := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		details[i] = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
	return strings.Join(details, "; ")
}
