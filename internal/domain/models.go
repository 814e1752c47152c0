package domain

// Employee is a single record as the upstream API returns it. Records are
// read-only once fetched; nothing in this service mutates them.
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"employee_name"`
	Salary int    `json:"employee_salary"`
	Age    int    `json:"employee_age"`
	Title  string `json:"employee_title"`
}

// EmployeeCreateRequest is the inbound payload for creating an employee.
// Validation happens at the HTTP edge; the upstream client trusts it.
type EmployeeCreateRequest struct {
	Name   string `json:"name" validate:"required"`
	Salary int    `json:"salary" validate:"min=1"`
	Age    int    `json:"age" validate:"gte=16,lte=75"`
	Title  string `json:"title" validate:"required"`
}

// DeleteEmployeeRequest is the upstream delete contract. The upstream API
// deletes by name, not by id.
type DeleteEmployeeRequest struct {
	Name string `json:"name"`
}

// Envelope is the wrapper the upstream API puts around every payload.
// Data is a pointer so an absent payload can be told apart from a zero value.
type Envelope[T any] struct {
	Data   *T     `json:"data"`
	Status string `json:"status,omitempty"`
}
