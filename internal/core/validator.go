package core

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"feedguard/internal/types"
)

// Validator wraps go-playground/validator with the domain rules the optimizer
// requests need and translates raw tag failures into structured, client-safe
// validation errors.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// ValidationError is a single field failure reported back to the client in
// the error response's details.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidator creates a Validator and registers the custom rules:
//
//   - ordered_range: a two-element numeric array whose first element must not
//     exceed its second (used for ideal_range).
//
// Field names in validation errors use the struct's JSON tag names so that
// clients see the wire-level field, not the Go identifier.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// ordered_range applies to [2]float64 fields.
	_ = v.RegisterValidation("ordered_range", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.Array && f.Kind() != reflect.Slice {
			return false
		}
		if f.Len() != 2 {
			return false
		}
		return f.Index(0).Float() <= f.Index(1).Float()
	})

	return &Validator{
		validate: v,
		logger:   logger,
	}
}

// ValidateStruct validates s against its struct tags. It returns nil when the
// struct is valid, or a *types.AppError (400) carrying every field failure in
// details["validation_errors"].
//
// The returned AppError's code is the code of the first failure, so a request
// with a single problem surfaces a precise top-level code while the details
// list remains complete.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the caller passed something that is not a
		// struct. This is a programming fault, not a client error.
		v.logger.Error("validator invoked with non-struct value",
			slog.String("error", err.Error()))
		return types.NewAppError(types.ErrCodeInternalUnexpected,
			"an unexpected error occurred", err)
	}

	fieldErrors := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors = append(fieldErrors, ValidationError{
			Field:   fieldPath(fe),
			Code:    string(tagToErrorCode(fe.Tag())),
			Message: messageFor(fe),
		})
	}

	return types.NewAppErrorWithDetails(
		tagToErrorCode(validationErrs[0].Tag()),
		"request validation failed",
		nil,
		map[string]any{"validation_errors": fieldErrors},
	)
}

// fieldPath returns the JSON path of the failed field, stripping the root
// struct name ("TemperatureRequest.ideal_range[0]" -> "ideal_range[0]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// tagToErrorCode maps a validator tag to the service's error code taxonomy.
func tagToErrorCode(tag string) types.ErrorCode {
	switch tag {
	case "required":
		return types.ErrCodeValidationMissingField
	case "oneof":
		return types.ErrCodeValidationInvalidEnum
	case "ordered_range":
		return types.ErrCodeValidationRangeOrder
	case "gte", "lte", "gt", "lt", "min", "max":
		return types.ErrCodeValidationOutOfRange
	default:
		return types.ErrCodeValidationOutOfRange
	}
}

// messageFor renders a human-readable message for a single field failure.
func messageFor(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "ordered_range":
		return fmt.Sprintf("%s bounds must be ordered low to high", field)
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation rule %q", field, fe.Tag())
	}
}
