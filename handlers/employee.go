package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"goride.io/booking/employee"
)

type EmployeeHandler interface {
	CheckAuthorization(c echo.Context) error
	AddEmployee(c echo.Context) error
}

type employeeHandler struct {
	Employee employee.Service
}

func NewEmployeeHandler(Employee employee.Service) EmployeeHandler {
	return &employeeHandler{
		Employee: Employee,
	}
}

// CheckAuthorization handles GET /employees/authorized
func (eh *employeeHandler) CheckAuthorization(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing email"})
	}

	authorized, err := eh.Employee.IsAuthorized(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check authorization"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"authorized": authorized})
}

// AddEmployee handles POST /employees
func (eh *employeeHandler) AddEmployee(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing email"})
	}

	added, err := eh.Employee.Add(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrAlreadyAuthorized) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Email is already authorized"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add employee"})
	}

	return c.JSON(http.StatusCreated, added)
}
