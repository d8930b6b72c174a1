package dto

// ─── Companies ───────────────────────────────────────────────────────────────

type CreateCompanyRequest struct {
	Name          string `json:"name"           validate:"required,min=2,max=100"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=100"`
	Phone         string `json:"phone"          validate:"omitempty,max=20"`
	Email         string `json:"email"          validate:"omitempty,email"`
}

type UpdateCompanyRequest struct {
	Name          string  `json:"name"           validate:"omitempty,min=2,max=100"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	Phone         *string `json:"phone"          validate:"omitempty,max=20"`
	Email         *string `json:"email"          validate:"omitempty,email"`
}

type CompanyResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Active        bool   `json:"active"`
}

// ─── Areas / Locations / Places ──────────────────────────────────────────────

type CreateAreaRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=100"`
	SupervisorID *string `json:"supervisor_id" validate:"omitempty,uuid"`
}

type UpdateAreaRequest struct {
	Name         string  `json:"name"          validate:"omitempty,min=2,max=100"`
	SupervisorID *string `json:"supervisor_id" validate:"omitempty,uuid"`
}

type AreaResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CompanyID    string  `json:"company_id"`
	SupervisorID *string `json:"supervisor_id"`
	Active       bool    `json:"active"`
}

type CreateLocationRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=100"`
	MonitorID *string `json:"monitor_id" validate:"omitempty,uuid"`
}

type UpdateLocationRequest struct {
	Name      string  `json:"name"       validate:"omitempty,min=2,max=100"`
	MonitorID *string `json:"monitor_id" validate:"omitempty,uuid"`
}

type LocationResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AreaID    string  `json:"area_id"`
	MonitorID *string `json:"monitor_id"`
	Active    bool    `json:"active"`
}

type CreatePlaceRequest struct {
	Name     string  `json:"name"      validate:"required,min=2,max=100"`
	WorkerID *string `json:"worker_id" validate:"omitempty,uuid"`
}

type UpdatePlaceRequest struct {
	Name     string  `json:"name"      validate:"omitempty,min=2,max=100"`
	WorkerID *string `json:"worker_id" validate:"omitempty,uuid"`
}

type PlaceResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	LocationID string  `json:"location_id"`
	WorkerID   *string `json:"worker_id"`
	Active     bool    `json:"active"`
}
