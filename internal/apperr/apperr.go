package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags a failure so callers can tell validation problems, a missing
// database and backend failures apart.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindStorageWrite       Kind = "storage_write"
	KindStorageRead        Kind = "storage_read"
	KindUnexpected         Kind = "unexpected"
)

// ErrStorageUnavailable is returned when no database connection was configured.
var ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable, Op: "store", Err: errors.New("database not initialized")}

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func Write(op string, err error) error { return Wrap(KindStorageWrite, op, err) }

func Read(op string, err error) error { return Wrap(KindStorageRead, op, err) }

// KindOf reports the kind of the outermost tagged error in the chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}

	return KindUnexpected
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationError collects every violated field, not only the first.
type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) Add(field, rule, param, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Rule: rule, Param: param, Message: message})
}

// Has reports whether field already carries a violation.
func (v *ValidationError) Has(field string) bool {
	for _, f := range v.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when nothing was collected.
func (v *ValidationError) OrNil() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msg := f.Message
		if msg == "" {
			msg = "failed " + f.Rule + " validation"
		}
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
