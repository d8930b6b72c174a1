package service

import (
	"context"
	"errors"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmployeeService interface {
	Create(ctx context.Context, ident authz.Identity, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Get(ctx context.Context, ident authz.Identity, id uuid.UUID) (*dto.EmployeeResponse, error)
	List(ctx context.Context, ident authz.Identity, includeInactive bool) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Deactivate(ctx context.Context, ident authz.Identity, id uuid.UUID) error
	Reactivate(ctx context.Context, ident authz.Identity, id uuid.UUID) error
}

type employeeService struct {
	repo     repository.EmployeeRepository
	userRepo repository.UserRepository
	resolver *authz.Resolver
}

func NewEmployeeService(repo repository.EmployeeRepository, userRepo repository.UserRepository, resolver *authz.Resolver) EmployeeService {
	return &employeeService{repo: repo, userRepo: userRepo, resolver: resolver}
}

// Create provisions the staff account and its profile in one transaction:
// a half-created employee with no login is not a state we want to repair by
// hand.
func (s *employeeService) Create(ctx context.Context, ident authz.Identity, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if ident.Role != authz.RoleOwner {
		return nil, reject(ReasonUnauthorized, "only the owner can create employees")
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid hire date %q", req.HireDate)
	}
	companyID, err := parseOptionalID(req.CompanyID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid company id")
	}
	supervisorID, err := parseOptionalID(req.SupervisorID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid supervisor id")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &model.Employee{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Address:      req.Address,
		Position:     req.Position,
		Salary:       req.Salary,
		HireDate:     hireDate,
		CompanyID:    companyID,
		SupervisorID: supervisorID,
		Active:       true,
	}

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &model.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         req.Position,
			Active:       true,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		employee.UserID = &user.ID
		return s.repo.Create(ctx, tx, employee)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, reject(ReasonDuplicateRecord, "username or email already taken")
		}
		return nil, err
	}

	resp := employeeToResponse(employee)
	return &resp, nil
}

func (s *employeeService) Get(ctx context.Context, ident authz.Identity, id uuid.UUID) (*dto.EmployeeResponse, error) {
	if ident.Role != authz.RoleOwner {
		visible, err := s.resolver.VisibleEmployees(ctx, ident)
		if err != nil {
			return nil, err
		}
		if !visible.Has(id) {
			return nil, reject(ReasonUnauthorized, "employee is outside your scope")
		}
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "employee does not exist")
		}
		return nil, err
	}
	resp := employeeToResponse(e)
	return &resp, nil
}

// List returns the full roster to the owner and the caller's visible scope
// to everyone else.
func (s *employeeService) List(ctx context.Context, ident authz.Identity, includeInactive bool) ([]dto.EmployeeResponse, error) {
	var (
		employees []model.Employee
		err       error
	)
	if includeInactive && ident.Role == authz.RoleOwner {
		employees, err = s.repo.ListAll(ctx)
	} else {
		employees, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if ident.Role != authz.RoleOwner {
		visible, err := s.resolver.VisibleEmployees(ctx, ident)
		if err != nil {
			return nil, err
		}
		scoped := employees[:0]
		for i := range employees {
			if visible.Has(employees[i].ID) {
				scoped = append(scoped, employees[i])
			}
		}
		employees = scoped
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, employeeToResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) Update(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if ident.Role != authz.RoleOwner {
		return nil, reject(ReasonUnauthorized, "only the owner can edit employees")
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "employee does not exist")
		}
		return nil, err
	}

	if req.FullName != "" {
		e.FullName = req.FullName
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Position != "" {
		e.Position = req.Position
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.CompanyID != nil {
		companyID, err := parseOptionalID(req.CompanyID)
		if err != nil {
			return nil, reject(ReasonNotFound, "invalid company id")
		}
		e.CompanyID = companyID
	}
	if req.SupervisorID != nil {
		supervisorID, err := parseOptionalID(req.SupervisorID)
		if err != nil {
			return nil, reject(ReasonNotFound, "invalid supervisor id")
		}
		if supervisorID != nil && *supervisorID == e.ID {
			return nil, reject(ReasonDuplicateRecord, "an employee cannot supervise themselves")
		}
		e.SupervisorID = supervisorID
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := employeeToResponse(e)
	return &resp, nil
}

// Deactivate retires the profile and disables its login together, so
// attendance and evaluation history stay intact while access is cut.
func (s *employeeService) Deactivate(ctx context.Context, ident authz.Identity, id uuid.UUID) error {
	if ident.Role != authz.RoleOwner {
		return reject(ReasonUnauthorized, "only the owner can deactivate employees")
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reject(ReasonNotFound, "employee does not exist")
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if e.UserID != nil {
		return s.userRepo.SoftDelete(ctx, *e.UserID)
	}
	return nil
}

func (s *employeeService) Reactivate(ctx context.Context, ident authz.Identity, id uuid.UUID) error {
	if ident.Role != authz.RoleOwner {
		return reject(ReasonUnauthorized, "only the owner can reactivate employees")
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reject(ReasonNotFound, "employee does not exist")
		}
		return err
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return err
	}
	if e.UserID != nil {
		return s.userRepo.Reactivate(ctx, *e.UserID)
	}
	return nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func employeeToResponse(e *model.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:       e.ID.String(),
		FullName: e.FullName,
		Phone:    e.Phone,
		Address:  e.Address,
		Position: e.Position,
		Salary:   e.Salary,
		HireDate: e.HireDate.Format("2006-01-02"),
		Active:   e.Active,
	}
	if e.CompanyID != nil {
		v := e.CompanyID.String()
		resp.CompanyID = &v
	}
	if e.SupervisorID != nil {
		v := e.SupervisorID.String()
		resp.SupervisorID = &v
	}
	return resp
}
