package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/domain/shared"
)

// DepartmentService handles department administration. The whole surface is
// super-only; department-scoped admins never manage departments.
type DepartmentService struct {
	departmentRepo catalog.DepartmentRepository
	cache          CacheInvalidator
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo catalog.DepartmentRepository, cache CacheInvalidator) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		cache:          cache,
	}
}

// Create creates a new department. The slug is normalized; a duplicate slug
// is accepted and the newer record wins on lookup.
func (s *DepartmentService) Create(ctx context.Context, scope identity.Scope, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}

	department, err := catalog.NewDepartment(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if req.WhatsAppPhone != "" {
		if err := department.SetWhatsAppPhone(req.WhatsAppPhone); err != nil {
			return nil, err
		}
	}
	if req.ColorHex != "" {
		if err := department.Update(req.Name, req.ColorHex); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		department.SetActive(*req.Active)
	}

	if err := s.departmentRepo.Save(ctx, department); err != nil {
		return nil, err
	}
	s.cache.InvalidateDepartments()

	response := ToDepartmentResponse(department)
	return &response, nil
}

// GetByID retrieves a department
func (s *DepartmentService) GetByID(ctx context.Context, scope identity.Scope, departmentID uuid.UUID) (*DepartmentResponse, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}
	department, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	response := ToDepartmentResponse(department)
	return &response, nil
}

// List retrieves all departments
func (s *DepartmentService) List(ctx context.Context, scope identity.Scope) ([]DepartmentResponse, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}
	departments, err := s.departmentRepo.FindAll(ctx, shared.Filter{OrderBy: "nombre", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return ToDepartmentResponses(departments), nil
}

// Update updates a department. The slug is immutable after creation because
// products and orders reference it by value.
func (s *DepartmentService) Update(ctx context.Context, scope identity.Scope, departmentID uuid.UUID, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}
	department, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.ColorHex != nil {
		name := department.Name
		colorHex := department.ColorHex
		if req.Name != nil {
			name = *req.Name
		}
		if req.ColorHex != nil {
			colorHex = *req.ColorHex
		}
		if err := department.Update(name, colorHex); err != nil {
			return nil, err
		}
	}
	if req.WhatsAppPhone != nil {
		if err := department.SetWhatsAppPhone(*req.WhatsAppPhone); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		department.SetActive(*req.Active)
	}

	if err := s.departmentRepo.Save(ctx, department); err != nil {
		return nil, err
	}
	s.cache.InvalidateDepartments()

	response := ToDepartmentResponse(department)
	return &response, nil
}

// Delete removes a department. Products pointing at the deleted slug keep it;
// the storefront renders them under no department.
func (s *DepartmentService) Delete(ctx context.Context, scope identity.Scope, departmentID uuid.UUID) error {
	if err := scope.RequireSuper(); err != nil {
		return err
	}
	if err := s.departmentRepo.Delete(ctx, departmentID); err != nil {
		return err
	}
	s.cache.InvalidateDepartments()
	return nil
}
