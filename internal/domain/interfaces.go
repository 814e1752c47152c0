package domain

import "context"

// EmployeeClient is the single point of contact with the upstream employee
// API. Implementations own the retry policy and error translation.
type EmployeeClient interface {
	FetchAll(ctx context.Context) ([]Employee, error)
	FetchByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, req EmployeeCreateRequest) (Employee, error)
	DeleteByName(ctx context.Context, name string) (bool, error)
}

// EmployeeService exposes the employee operations served to callers,
// including the derived reads computed over a fresh fetch-all.
type EmployeeService interface {
	GetAll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	SearchByName(ctx context.Context, fragment string) ([]Employee, error)
	MaxSalary(ctx context.Context) (int, error)
	TopEarners(ctx context.Context, n int) ([]string, error)
	Create(ctx context.Context, req EmployeeCreateRequest) (Employee, error)
	DeleteByID(ctx context.Context, id string) (string, error)
}
