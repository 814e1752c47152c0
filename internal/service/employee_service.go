package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/locvowork/employee_api_gateway/internal/domain"
	"github.com/locvowork/employee_api_gateway/internal/logger"
)

// DefaultTopEarners is how many names the top-earners report returns when
// the caller does not say otherwise.
const DefaultTopEarners = 10

type employeeService struct {
	client domain.EmployeeClient
}

// NewEmployeeService creates the facade over the upstream client. Derived
// reads are computed in memory over a fresh fetch-all; nothing is cached.
func NewEmployeeService(client domain.EmployeeClient) domain.EmployeeService {
	return &employeeService{client: client}
}

func (s *employeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return s.client.FetchAll(ctx)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (domain.Employee, error) {
	return s.client.FetchByID(ctx, id)
}

// SearchByName returns employees whose name contains fragment, compared
// case-insensitively. An empty result is a valid answer, not an error.
func (s *employeeService) SearchByName(ctx context.Context, fragment string) ([]domain.Employee, error) {
	employees, err := s.client.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(fragment)
	matched := make([]domain.Employee, 0)
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// MaxSalary returns the highest salary on the roster, or 0 when the roster
// is empty. The zero default matches the upstream API's documented behavior.
func (s *employeeService) MaxSalary(ctx context.Context) (int, error) {
	employees, err := s.client.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	max := 0
	for _, e := range employees {
		if e.Salary > max {
			max = e.Salary
		}
	}
	return max, nil
}

// TopEarners returns the names of the n highest-paid employees, highest
// first. Ties keep the upstream's fetch order. Fewer than n employees
// yields all of them.
func (s *employeeService) TopEarners(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultTopEarners
	}

	employees, err := s.client.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.Employee, len(employees))
	copy(ranked, employees)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Salary > ranked[j].Salary
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	names := make([]string, 0, n)
	for _, e := range ranked[:n] {
		names = append(names, e.Name)
	}
	return names, nil
}

func (s *employeeService) Create(ctx context.Context, req domain.EmployeeCreateRequest) (domain.Employee, error) {
	return s.client.Create(ctx, req)
}

// DeleteByID resolves the employee's name first, because the upstream
// delete endpoint is name-keyed, then issues the delete. A failed lookup
// short-circuits without touching the delete endpoint. An upstream that
// accepts the delete but reports false is surfaced as a not-found for the
// requested id. On success the resolved name is returned.
func (s *employeeService) DeleteByID(ctx context.Context, id string) (string, error) {
	employee, err := s.client.FetchByID(ctx, id)
	if err != nil {
		return "", err
	}

	deleted, err := s.client.DeleteByName(ctx, employee.Name)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", &domain.NotFoundError{
			Resource: id,
			Message:  fmt.Sprintf("deletion failed for employee id: %s", id),
		}
	}

	logger.InfoLog(ctx, "Successfully deleted employee with id: %s", id)
	return employee.Name, nil
}
