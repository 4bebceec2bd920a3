package req

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/meadowlark"
)

// enumTag marks fields holding a meadowlark.Enumerable, or a slice of them.
const enumTag = "enum"

type validator struct {
	valid *v10.Validate
}

func newValidator() validator {
	v := v10.New()
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation(enumTag, validateEnumerable); err != nil {
		panic(err)
	}

	return validator{v}
}

// fieldName reports a field by its "json" name, else its "schema" name,
// so errors name the field as the client sent it.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks structPtr against its "validate" struct tags,
// returning every failure as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, toValidationError(fe))
	}

	return errs
}

// toValidationError describes fe by the field's path below the top-level struct
// and the rule it broke, e.g. "gt=10; int64".
func toValidationError(fe v10.FieldError) ValidationError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule = fmt.Sprintf("%s=%s", rule, fe.Param())
	}

	return ValidationError{Field: field, Got: fe.Value(), Rule: rule + "; " + fe.Type().String()}
}

// validateEnumerable passes a valid meadowlark.Enumerable or a non-empty slice of them.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return checkEnums(field)
	}

	items := make([]reflect.Value, field.Len())
	for i := range items {
		items[i] = field.Index(i)
	}

	return checkEnums(items...)
}

func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		if !item.CanInterface() {
			return false
		}

		enum, ok := item.Interface().(meadowlark.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}
