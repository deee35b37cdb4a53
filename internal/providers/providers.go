package providers

import (
	"context"

	"ninja-fellowship/internal/domain"
)

// EmployeeSource is anything that can produce the directory's employee list.
// Raw is the body exactly as received, for verbatim pass-through.
type EmployeeSource interface {
	Name() string
	FetchEmployees(ctx context.Context) (employees []domain.Employee, raw []byte, err error)
}
