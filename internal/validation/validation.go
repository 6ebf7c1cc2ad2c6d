// Package validation checks request payloads against struct tags and turns
// failures into English messages naming the offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// phonePattern allows digits and the +()- punctuation only.
	phonePattern = regexp.MustCompile(`^[0-9+()-]+$`)

	// accountEmailPattern is the address format accepted for user accounts.
	accountEmailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
)

// Error is a failed input check. Message is safe to return to clients.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error for checks performed outside struct tags.
func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// IsAccountEmail reports whether email is acceptable as a login address.
func IsAccountEmail(email string) bool {
	return accountEmailPattern.MatchString(email)
}

// Validator validates structs tagged with `validate:"..."`.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with the custom "phone" and "account_email" tags and
// English messages registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return IsAccountEmail(fl.Field().String())
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(v, trans)

	registerMessage(v, trans, "phone", "{0} may only contain digits and the characters + ( ) -")
	registerMessage(v, trans, "account_email", "please enter a valid email address.")

	return &Validator{validate: v, trans: trans}
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	})
}

// Struct validates s and returns the first failure as an *Error.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	fe := fieldErrs[0]
	path := fieldPath(fe)
	msg := fe.Translate(v.trans)
	if path != fe.Field() {
		msg = strings.Replace(msg, fe.Field(), path, 1)
	}
	return &Error{Field: path, Message: msg}
}

// fieldPath drops the top-level struct name from the namespace, so
// "CreateContactRequest.address.city" becomes "address.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
