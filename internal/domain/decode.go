package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeError means the upstream answered 2xx but the body is not a valid
// employee list.
type DecodeError struct {
	Index int // record index for schema errors, -1 for malformed JSON
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode employees: %v", e.Err)
	}
	return fmt.Sprintf("decode employees: record %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeEmployees parses a JSON array of employee records and validates each
// record against the schema.
func DecodeEmployees(body []byte) ([]Employee, error) {
	var out []Employee
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DecodeError{Index: -1, Err: err}
	}
	if out == nil {
		return nil, &DecodeError{Index: -1, Err: errors.New("expected a JSON array, got null")}
	}

	for i := range out {
		if err := validate.Struct(out[i]); err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
	}
	return out, nil
}
