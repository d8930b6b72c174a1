package dto

type SubmitEvaluationRequest struct {
	Date                string `json:"date"                  validate:"required,datetime=2006-01-02"`
	PlaceID             string `json:"place_id"              validate:"required,uuid"`
	EvaluatedEmployeeID string `json:"evaluated_employee_id" validate:"required,uuid"`

	Cleanliness        int    `json:"cleanliness"         validate:"required,min=1,max=5"`
	Organization       int    `json:"organization"        validate:"required,min=1,max=5"`
	EquipmentCondition int    `json:"equipment_condition" validate:"required,min=1,max=5"`
	SafetyMeasures     int    `json:"safety_measures"     validate:"required,min=1,max=5"`
	Timeliness         int    `json:"timeliness"          validate:"required,min=1,max=5"`
	Comments           string `json:"comments"`
}

type EvaluationResponse struct {
	ID                  string  `json:"id"`
	Date                string  `json:"date"`
	PlaceID             string  `json:"place_id"`
	PlaceName           string  `json:"place_name,omitempty"`
	EvaluatedEmployeeID string  `json:"evaluated_employee_id"`
	EvaluatedEmployee   string  `json:"evaluated_employee,omitempty"`
	EvaluatorID         string  `json:"evaluator_id"`
	Evaluator           string  `json:"evaluator,omitempty"`
	Cleanliness         int     `json:"cleanliness"`
	Organization        int     `json:"organization"`
	EquipmentCondition  int     `json:"equipment_condition"`
	SafetyMeasures      int     `json:"safety_measures"`
	Timeliness          int     `json:"timeliness"`
	OverallScore        float64 `json:"overall_score"`
	Comments            string  `json:"comments,omitempty"`
}
