// Package inputval validates admin and visitor form input with
// waffle/pantry/validate and turns failures into the API's messages.
//
// Tags on the form struct drive it:
//
//	validate:"required,max=100"   rules
//	label:"Blog title"            name used in messages
//	msg:"Please fill all ..."     replaces the message for a missing value
package inputval

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds the failures of one Validate call. Missing-value failures
// come first, then the rest in field order.
type Result struct {
	Errors []FieldError
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string // json name
	Rule    string
	Message string
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the message the API reports, or "" when valid.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Fields converts the failures to the JSON field-error shape.
func (r *Result) Fields() []jsonutil.FieldError {
	out := make([]jsonutil.FieldError, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = jsonutil.FieldError{Field: e.Field, Message: e.Message}
	}
	return out
}

var (
	validator     *validate.Validator
	validatorOnce sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		validator = validate.New()
		validator.RegisterRuleFunc("categorytype", func(value any) bool {
			s, ok := value.(string)
			return ok && models.IsValidCategoryType(strings.ToLower(strings.TrimSpace(s)))
		}, "categorytype")
	})
	return validator
}

type fieldTags struct {
	label string
	msg   string
}

// Validate checks s, a struct or pointer to one, against its tags.
func Validate(s any) *Result {
	res := &Result{}
	err := getValidator().Struct(s)
	if err == nil {
		return res
	}
	errs, ok := err.(validate.Errors)
	if !ok {
		return res
	}

	tags := tagsOf(s)
	for _, e := range errs {
		t := tags[e.Field]
		if t.label == "" {
			t.label = e.Field
		}
		msg := message(t.label, e.Rule, e.Param)
		if e.Rule == "required" && t.msg != "" {
			msg = t.msg
		}
		res.Errors = append(res.Errors, FieldError{Field: e.Field, Rule: e.Rule, Message: msg})
	}
	sort.SliceStable(res.Errors, func(i, j int) bool {
		return res.Errors[i].Rule == "required" && res.Errors[j].Rule != "required"
	})
	return res
}

// tagsOf indexes label and msg tags by json field name, the name the
// validator reports.
func tagsOf(s any) map[string]fieldTags {
	out := make(map[string]fieldTags)
	typ := reflect.TypeOf(s)
	if typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := f.Name
		if j := strings.Split(f.Tag.Get("json"), ",")[0]; j != "" && j != "-" {
			name = j
		}
		out[name] = fieldTags{label: f.Tag.Get("label"), msg: f.Tag.Get("msg")}
	}
	return out
}

func message(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email address"
	case "max":
		return label + " cannot exceed " + param + " characters"
	case "min":
		return label + " must be at least " + param + " characters"
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "categorytype":
		return label + " must be " + strings.Join(models.AllCategoryTypes(), " or ")
	default:
		return label + " is invalid"
	}
}
