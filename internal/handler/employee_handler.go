package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_api_gateway/internal/domain"
	"github.com/locvowork/employee_api_gateway/internal/export"
	"github.com/locvowork/employee_api_gateway/internal/service"
	"github.com/locvowork/employee_api_gateway/internal/service/serviceutils"
)

type EmployeeHandler struct {
	svc      domain.EmployeeService
	exporter *export.RosterExporter
}

func NewEmployeeHandler(svc domain.EmployeeService, exporter *export.RosterExporter) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, exporter: exporter}
}

func (h *EmployeeHandler) GetAllHandler(c echo.Context) error {
	employees, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return h.serviceError(c, "Failed to fetch employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees retrieved successfully", employees)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id := c.Param("id")

	emp, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, "Failed to fetch employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee retrieved successfully", emp)
}

func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	employees, err := h.svc.SearchByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return h.serviceError(c, "Failed to search employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees searched successfully", employees)
}

func (h *EmployeeHandler) HighestSalaryHandler(c echo.Context) error {
	salary, err := h.svc.MaxSalary(c.Request().Context())
	if err != nil {
		return h.serviceError(c, "Failed to compute highest salary", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Highest salary computed successfully", salary)
}

func (h *EmployeeHandler) TopEarnersHandler(c echo.Context) error {
	names, err := h.svc.TopEarners(c.Request().Context(), service.DefaultTopEarners)
	if err != nil {
		return h.serviceError(c, "Failed to compute top earners", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Top earners computed successfully", names)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req domain.EmployeeCreateRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return serviceutils.ResponseValidationError(c, http.StatusBadRequest, validationMessages(err))
	}

	emp, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return h.serviceError(c, "Failed to create employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employee created successfully", emp)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id := c.Param("id")

	name, err := h.svc.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, "Failed to delete employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee deleted successfully", name)
}

func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	employees, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return h.serviceError(c, "Failed to fetch employees for export", err)
	}

	data, err := h.exporter.Build(employees)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate excel file", err)
	}

	c.Response().Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", `attachment; filename="employee_roster.xlsx"`)
	c.Response().Header().Set("Content-Transfer-Encoding", "binary")

	_, err = c.Response().Write(data)
	return err
}

// serviceError maps the domain error kinds onto HTTP statuses: not-found to
// 404, exhausted retries to 429, everything else to 500.
func (h *EmployeeHandler) serviceError(c echo.Context, message string, err error) error {
	switch {
	case domain.IsNotFound(err):
		return serviceutils.ResponseError(c, http.StatusNotFound, err.Error(), err)
	case domain.IsRateLimit(err):
		return serviceutils.ResponseError(c, http.StatusTooManyRequests, err.Error(), err)
	default:
		return serviceutils.ResponseError(c, http.StatusInternalServerError, message, err)
	}
}

func validationMessages(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["request"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Name":
			fields["name"] = "Name is required"
		case "Title":
			fields["title"] = "Title is required"
		case "Salary":
			fields["salary"] = "Salary must be greater than 0"
		case "Age":
			fields["age"] = "Age must be between 16 and 75"
		default:
			fields[fe.Field()] = "Invalid value"
		}
	}
	return fields
}
