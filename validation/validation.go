// Package validation configures gin's validator and turns binding failures
// into field-keyed validation errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/qasemB/Ecommerce-Api/models"
)

var (
	textPattern  = regexp.MustCompile(`^[\p{L}\p{N}\s\-_.,:!?،؟()/#@]+$`)
	colorPattern = regexp.MustCompile(`^#\w{3,8}$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
	setupOnce    sync.Once
)

// Setup makes gin's validator report json field names and registers the
// custom rules: text, color, digits.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		mustRegister(v, "text", textPattern)
		mustRegister(v, "color", colorPattern)
		mustRegister(v, "digits", digitPattern)
	})
}

// IsText reports whether s only holds letters, digits, spaces and common
// punctuation.
func IsText(s string) bool {
	return textPattern.MatchString(s)
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// FromBinding converts an error returned by c.ShouldBind* into a
// *models.ValidationError. Errors of other kinds are returned unchanged.
func FromBinding(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		out := models.NewValidationError()
		for _, fe := range ves {
			out.Add(fieldKey(fe.Namespace()), message(fe))
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return models.Invalid(field, "must be of type "+typeErr.Type.String())
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return models.Invalid("body", "malformed JSON")
	}
	return err
}

// fieldKey turns "createCartRequest.products[1].count" into
// "products.1.count".
func fieldKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return indexPattern.ReplaceAllString(ns, ".$1")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_without":
		return "is required"
	case "ne":
		return fmt.Sprintf("must not be %s", fe.Param())
	case "min", "gte":
		switch fe.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must have at least %s elements", fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "numeric", "digits":
		return "must contain digits only"
	case "text":
		return "contains invalid characters"
	case "color":
		return "must be a color code like #fff"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "failed on " + fe.Tag()
}
