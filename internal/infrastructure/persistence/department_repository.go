package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/shared"
)

// GormDepartmentRepository implements catalog.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// FindByID finds a department by its ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Department, error) {
	var dept catalog.Department
	if err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

// FindBySlug finds a department by its slug. Slug uniqueness is not
// enforced at write time; on duplicates the most recently updated wins.
func (r *GormDepartmentRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Department, error) {
	var dept catalog.Department
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("updated_at DESC").
		First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

// FindAll finds all departments matching the filter
func (r *GormDepartmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Department, error) {
	var depts []catalog.Department
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Department{}), filter)
	if err := query.Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// FindActive finds departments visible on the storefront
func (r *GormDepartmentRepository) FindActive(ctx context.Context) ([]catalog.Department, error) {
	var depts []catalog.Department
	if err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("nombre ASC").
		Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// Save creates or updates a department
func (r *GormDepartmentRepository) Save(ctx context.Context, dept *catalog.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// Delete deletes a department
func (r *GormDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Department{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts departments matching the filter
func (r *GormDepartmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Department{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(nombre) LIKE ?", pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDepartmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(nombre) LIKE ?", pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "activo":
			query = query.Where("activo = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("nombre ASC")
	}
	return query
}

// Ensure GormDepartmentRepository implements DepartmentRepository
var _ catalog.DepartmentRepository = (*GormDepartmentRepository)(nil)
