package dto

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	FullName string          `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string          `json:"phone"     validate:"omitempty,max=20"`
	Address  string          `json:"address"`
	Position string          `json:"position"  validate:"required,oneof=supervisor monitor worker"`
	Salary   decimal.Decimal `json:"salary"    validate:"omitempty,min=0"`
	HireDate string          `json:"hire_date" validate:"required"` // YYYY-MM-DD

	// Account credentials for the linked user; the user role mirrors the
	// position.
	Username string `json:"username" validate:"required,min=1,max=80"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	CompanyID    *string `json:"company_id"    validate:"omitempty,uuid"`
	SupervisorID *string `json:"supervisor_id" validate:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName     string           `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone        *string          `json:"phone"     validate:"omitempty,max=20"`
	Address      *string          `json:"address"`
	Position     string           `json:"position"  validate:"omitempty,oneof=supervisor monitor worker"`
	Salary       *decimal.Decimal `json:"salary"    validate:"omitempty"`
	CompanyID    *string          `json:"company_id"    validate:"omitempty,uuid"`
	SupervisorID *string          `json:"supervisor_id" validate:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     string          `json:"hire_date"`
	CompanyID    *string         `json:"company_id"`
	SupervisorID *string         `json:"supervisor_id"`
	Active       bool            `json:"active"`
}
