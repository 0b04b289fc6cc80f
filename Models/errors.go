package Models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the offending form fields with a user-facing
// message each. It blocks rendering and uploading.
type ValidationError struct {
	Fields map[string]string
}

// MissingChecklistType is returned when a record without a type tag is
// about to be rendered.
func MissingChecklistType() *ValidationError {
	return &ValidationError{Fields: map[string]string{
		"tipoChecklist": "Por favor, selecione um 'Tipo de Checklist' antes de salvar.",
	}}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message joins the field messages in field order.
func (e *ValidationError) Message() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// MalformedDraftError is returned when a stored draft no longer decodes
// into a ChecklistRecord.
type MalformedDraftError struct {
	Key string
	Err error
}

func (e *MalformedDraftError) Error() string {
	return fmt.Sprintf("draft %s is malformed: %v", e.Key, e.Err)
}

func (e *MalformedDraftError) Unwrap() error {
	return e.Err
}
