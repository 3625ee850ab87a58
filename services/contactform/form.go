// Package contactform holds the state and rules of one contact form instance:
// the field values, per-field validation errors and the submission status.
package contactform

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Field identifies a form input
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldCompany Field = "company"
	FieldMessage Field = "message"
)

// Validation messages shown next to the offending input
const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Email is invalid"
	MsgMessageRequired = "Message is required"
)

var (
	ErrUnknownField     = errors.New("unknown form field")
	ErrValidation       = errors.New("form has validation errors")
	ErrAlreadySubmitted = errors.New("form already submitted")
)

// emailPattern accepts <non-space>@<non-space>.<non-space>
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldSet describes which optional inputs a form variant collects.
// Name and email are always collected and always required.
type FieldSet struct {
	Company         bool
	Message         bool
	MessageRequired bool
}

// Fields returns the collected fields in display order
func (fs FieldSet) Fields() []Field {
	fields := []Field{FieldName, FieldEmail}
	if fs.Company {
		fields = append(fields, FieldCompany)
	}
	if fs.Message {
		fields = append(fields, FieldMessage)
	}
	return fields
}

// Has reports whether the field is collected by this set
func (fs FieldSet) Has(f Field) bool {
	switch f {
	case FieldName, FieldEmail:
		return true
	case FieldCompany:
		return fs.Company
	case FieldMessage:
		return fs.Message
	}
	return false
}

// FormState is the current value of every input
type FormState struct {
	Name    string
	Email   string
	Company string
	Message string
}

// Get returns the value of a field, empty for unknown fields
func (s FormState) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldCompany:
		return s.Company
	case FieldMessage:
		return s.Message
	}
	return ""
}

func (s *FormState) set(f Field, value string) bool {
	switch f {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldCompany:
		s.Company = value
	case FieldMessage:
		s.Message = value
	default:
		return false
	}
	return true
}

// IsEmpty reports whether every field is the empty string
func (s FormState) IsEmpty() bool {
	return s == FormState{}
}

// Values encodes the collected fields the way a native form post would
func (s FormState) Values(fs FieldSet) url.Values {
	v := url.Values{}
	for _, f := range fs.Fields() {
		v.Set(string(f), s.Get(f))
	}
	return v
}

// ValidationErrors maps a field to its error message. A missing key means the field is valid.
type ValidationErrors map[Field]string

// Has reports whether an error is recorded for the field
func (e ValidationErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

func (e ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Check runs every rule against the state and returns the full error set
func Check(fs FieldSet, s FormState) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(s.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	if strings.TrimSpace(s.Email) == "" {
		errs[FieldEmail] = MsgEmailRequired
	} else if !emailPattern.MatchString(s.Email) {
		errs[FieldEmail] = MsgEmailInvalid
	}

	if fs.Message && fs.MessageRequired && strings.TrimSpace(s.Message) == "" {
		errs[FieldMessage] = MsgMessageRequired
	}

	return errs
}

// ParseField maps an input name to a Field
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldName, FieldEmail, FieldCompany, FieldMessage:
		return f, nil
	}
	return "", ErrUnknownField
}
