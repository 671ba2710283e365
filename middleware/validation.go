package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	RuleRequired = "required"
	RuleNullable = "nullable"
	RuleNumeric  = "numeric"
	RuleString   = "string"
)

// Exists builds the rule that requires the value to match a row of table.column.
func Exists(table, column string) string {
	return "exists=" + table + ":" + column
}

// Rules maps each input field to its ordered constraints. Constraints run in
// order and the first failure stops the remaining ones for that field.
type Rules map[string][]string

type ValidationResult struct {
	Errors map[string][]string
}

func (r ValidationResult) Failed() bool {
	return len(r.Errors) > 0
}

// ExistenceChecker answers exists= rules against the backing store.
type ExistenceChecker interface {
	Exists(ctx context.Context, table, column string, value any) (bool, error)
}

var messages = map[string]string{
	RuleRequired: "The %s field is required.",
	RuleNumeric:  "The %s field must be a number.",
	RuleString:   "The %s field must be a string.",
	"exists":     "The selected %s is invalid.",
}

type lookupFault struct{ err error }

type lookupFaultKey struct{}

type Validator struct {
	validate *validator.Validate
	checker  ExistenceChecker
}

func NewValidator(checker ExistenceChecker) *Validator {
	v := &Validator{validate: validator.New(), checker: checker}

	// Registration only fails for restricted tag names.
	_ = v.validate.RegisterValidation(RuleString, isString)
	_ = v.validate.RegisterValidationCtx("exists", v.exists)

	return v
}

// Validate checks input against rules. A non-nil error means a rule could not
// be evaluated (e.g. the store was unreachable), not that the input is invalid.
func (v *Validator) Validate(ctx context.Context, input map[string]any, rules Rules) (ValidationResult, error) {
	result := ValidationResult{Errors: map[string][]string{}}
	fault := &lookupFault{}
	ctx = context.WithValue(ctx, lookupFaultKey{}, fault)

	for _, field := range slices.Sorted(maps.Keys(rules)) {
		constraints := rules[field]
		value := input[field]

		if absent(value) {
			if slices.Contains(constraints, RuleRequired) {
				result.Errors[field] = []string{message(field, RuleRequired)}
			}
			continue
		}

		for _, rule := range constraints {
			if rule == RuleRequired || rule == RuleNullable {
				continue
			}

			err := v.validate.VarCtx(ctx, value, rule)
			if fault.err != nil {
				return result, fmt.Errorf("validate %s: %w", field, fault.err)
			}
			if err == nil {
				continue
			}

			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return result, fmt.Errorf("validate %s: %w", field, err)
			}
			result.Errors[field] = []string{message(field, verrs[0].Tag())}
			break
		}
	}

	return result, nil
}

func (v *Validator) exists(ctx context.Context, fl validator.FieldLevel) bool {
	table, column, ok := strings.Cut(fl.Param(), ":")
	if !ok || v.checker == nil {
		return false
	}

	found, err := v.checker.Exists(ctx, table, column, normalize(fl.Field().Interface()))
	if err != nil {
		if fault, ok := ctx.Value(lookupFaultKey{}).(*lookupFault); ok {
			fault.err = err
		}
		return false
	}
	return found
}

var stringType = reflect.TypeOf("")

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Type() == stringType
}

// absent treats missing keys, nulls and blank strings as not provided.
func absent(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	default:
		return false
	}
}

// normalize turns numeric strings into numbers so exists= lookups compare
// against integer keys.
func normalize(v any) any {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	default:
		return v
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return v
}

func message(field, tag string) string {
	format, ok := messages[tag]
	if !ok {
		format = "The %s field is invalid."
	}
	return fmt.Sprintf(format, Attribute(field))
}

// Attribute turns a field key into readable words: room_id -> room id,
// perPage -> per page.
func Attribute(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RequestInput merges query parameters and the request body, body winning.
// JSON numbers are kept as json.Number. An unreadable body yields no body keys;
// the rules then report what is missing.
func RequestInput(c *gin.Context) map[string]any {
	input := map[string]any{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			input[key] = values[len(values)-1]
		}
	}

	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return input
	}

	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		var err error
		if c.ContentType() == gin.MIMEMultipartPOSTForm {
			err = c.Request.ParseMultipartForm(32 << 20)
		} else {
			err = c.Request.ParseForm()
		}
		if err != nil {
			return input
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				input[key] = values[len(values)-1]
			}
		}
	default:
		var body map[string]any
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err == nil {
			maps.Copy(input, body)
		}
	}

	return input
}

var structValidate = validator.New()

// ValidateStruct checks tagged structs and reports field errors in the same
// shape as Validate. Field keys come from json tags.
func ValidateStruct(s any) (ValidationResult, error) {
	result := ValidationResult{Errors: map[string][]string{}}

	err := structValidate.Struct(s)
	if err == nil {
		return result, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return result, err
	}
	for _, e := range verrs {
		field := jsonName(s, e.StructField())
		result.Errors[field] = append(result.Errors[field], structMessage(field, e.Tag()))
	}
	return result, nil
}

func structMessage(field, tag string) string {
	if tag == "email" {
		return fmt.Sprintf("The %s field must be a valid email address.", Attribute(field))
	}
	return message(field, tag)
}

func jsonName(s any, structField string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
	}
	return structField
}
