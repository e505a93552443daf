// Package validation wraps schema validation of outbound carrier
// payloads behind a pass/fail result.
package validation

import (
	"fmt"
	"strings"

	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating a payload. Reasons is populated
// only when OK is false.
type Result struct {
	OK      bool
	Reasons []string
}

// PayloadValidator checks an order payload against the carrier schema
// before submission.
type PayloadValidator interface {
	Validate(payload *carrier.OrderPayload) Result
}

// Validator validates payloads using their declared field constraints.
type Validator struct {
	v *validator.Validate
}

// New creates a payload validator.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the payload and reports every violated constraint.
func (val *Validator) Validate(payload *carrier.OrderPayload) Result {
	err := val.v.Struct(payload)
	if err == nil {
		return Result{OK: true}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Reasons: []string{err.Error()}}
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reasons = append(reasons, describe(fe))
	}
	return Result{Reasons: reasons}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "OrderPayload.")
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed '%s=%s'", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: failed '%s'", field, fe.Tag())
}

var _ PayloadValidator = (*Validator)(nil)
