package dto

type SubmitAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Date       string `json:"date"        validate:"required,datetime=2006-01-02"`
	ShiftType  string `json:"shift_type"  validate:"required,oneof=morning evening"`
	Status     string `json:"status"      validate:"required,oneof=present absent late"`
	CheckIn    string `json:"check_in"    validate:"omitempty"` // HH:MM
	CheckOut   string `json:"check_out"   validate:"omitempty"` // HH:MM
	Notes      string `json:"notes"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Employee   string `json:"employee,omitempty"`
	Date       string `json:"date"`
	ShiftType  string `json:"shift_type"`
	Status     string `json:"status"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	Notes      string `json:"notes,omitempty"`
}
