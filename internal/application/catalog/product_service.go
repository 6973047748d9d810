// Package catalog contains the application services for the product and
// department surfaces of the admin console.
package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/domain/shared"
)

// CacheInvalidator is the slice of the snapshot cache the catalog services
// need: marking slices stale after a successful write.
type CacheInvalidator interface {
	InvalidateProducts()
	InvalidateDepartments()
}

// ObjectStorageService is implemented by the infrastructure storage layer
// (S3-compatible backends, or a stub when storage is disabled).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading an image
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading an image
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an image from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// ProductService handles product writes for the admin console. Every
// operation takes the caller's Scope; department-scoped admins only ever
// touch products inside their assigned slugs.
type ProductService struct {
	productRepo   catalog.ProductRepository
	cache         CacheInvalidator
	storage       ObjectStorageService
	presignExpiry time.Duration
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	cache CacheInvalidator,
	storage ObjectStorageService,
	presignExpiry time.Duration,
) *ProductService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &ProductService{
		productRepo:   productRepo,
		cache:         cache,
		storage:       storage,
		presignExpiry: presignExpiry,
	}
}

// Create creates a new product. A department outside the caller's scope is
// coerced to their first assigned slug rather than rejected.
func (s *ProductService) Create(ctx context.Context, scope identity.Scope, req CreateProductRequest) (*ProductResponse, error) {
	if !scope.CanManageProducts() {
		return nil, shared.ErrForbidden
	}

	department, err := scope.CoerceProductDepartment(catalog.Slugify(req.Department))
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Price, department, catalog.Unit(req.Unit))
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Category != "" {
		if err := product.Update(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		if err := product.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.ByWeight != nil {
		product.SetByWeight(*req.ByWeight)
	}
	if req.Available != nil {
		product.SetAvailability(*req.Available)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.cache.InvalidateProducts()

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product visible to the caller's scope
func (s *ProductService) GetByID(ctx context.Context, scope identity.Scope, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !scope.CanViewDepartment(product.Department) {
		return nil, shared.ErrForbidden
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products visible to the caller's scope
func (s *ProductService) List(ctx context.Context, scope identity.Scope, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := buildProductFilter(filter)

	slugs, all := scope.VisibleDepartments()
	if all {
		products, err := s.productRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err := s.productRepo.Count(ctx, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		return ToProductResponses(products), total, nil
	}

	if len(slugs) == 0 {
		return nil, 0, shared.ErrForbidden
	}
	products, err := s.productRepo.FindByDepartment(ctx, slugs, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	countFilter, visible := scopedCountFilter(domainFilter, slugs)
	var total int64
	if visible {
		total, err = s.productRepo.Count(ctx, countFilter)
		if err != nil {
			return nil, 0, err
		}
	}
	return ToProductResponses(products), total, nil
}

// scopedCountFilter restricts a count to the visible departments while
// keeping every other active filter, so the reported total matches the
// listed rows. An explicit department filter outside the visible set
// matches nothing; the second return value reports whether anything can
// match at all.
func scopedCountFilter(filter shared.Filter, slugs []string) (shared.Filter, bool) {
	countFilter := filter
	countFilter.Filters = make(map[string]interface{}, len(filter.Filters)+1)
	for k, v := range filter.Filters {
		countFilter.Filters[k] = v
	}
	if requested, ok := countFilter.Filters["departamento"].(string); ok {
		for _, slug := range slugs {
			if slug == requested {
				return countFilter, true
			}
		}
		return countFilter, false
	}
	countFilter.Filters["departamento"] = slugs
	return countFilter, true
}

// Update updates a product. Moving the product to another department goes
// through the same scope coercion as Create.
func (s *ProductService) Update(ctx context.Context, scope identity.Scope, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !scope.CanViewDepartment(product.Department) {
		return nil, shared.ErrForbidden
	}

	if req.Name != nil || req.Description != nil || req.Category != nil {
		name := product.Name
		description := product.Description
		category := product.Category
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Category != nil {
			category = *req.Category
		}
		if err := product.Update(name, description, category); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := product.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.Department != nil {
		department, err := scope.CoerceProductDepartment(catalog.Slugify(*req.Department))
		if err != nil {
			return nil, err
		}
		if err := product.SetDepartment(department); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		if err := product.SetUnit(catalog.Unit(*req.Unit)); err != nil {
			return nil, err
		}
	}
	if req.ByWeight != nil {
		product.SetByWeight(*req.ByWeight)
	}
	if req.Available != nil {
		product.SetAvailability(*req.Available)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.cache.InvalidateProducts()

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product. Existing orders keep their embedded snapshot of
// it, so deletion never corrupts order history.
func (s *ProductService) Delete(ctx context.Context, scope identity.Scope, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !scope.CanViewDepartment(product.Department) {
		return shared.ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.cache.InvalidateProducts()
	return nil
}

// GenerateImageUpload issues a presigned upload slot for a product image.
// The returned storage key is what the client should write into imagen_url
// (via PublicURL) once the upload completes.
func (s *ProductService) GenerateImageUpload(ctx context.Context, scope identity.Scope, req ImageUploadRequest) (*ImageUploadResponse, error) {
	if !scope.CanManageProducts() {
		return nil, shared.ErrForbidden
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only image uploads are accepted")
	}

	ext := path.Ext(req.FileName)
	storageKey := fmt.Sprintf("productos/%s%s", uuid.NewString(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.presignExpiry)
	if err != nil {
		return nil, err
	}

	downloadURL, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.presignExpiry)
	if err != nil {
		return nil, err
	}

	return &ImageUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		PublicURL:  downloadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// buildProductFilter converts the list filter into a domain filter
func buildProductFilter(filter ProductListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "nombre"
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Department != "" {
		domainFilter.Filters["departamento"] = filter.Department
	}
	if filter.Category != "" {
		domainFilter.Filters["categoria"] = filter.Category
	}
	if filter.Unit != "" {
		domainFilter.Filters["unidad"] = filter.Unit
	}
	if filter.Available != nil {
		domainFilter.Filters["disponible"] = *filter.Available
	}
	if filter.Featured != nil {
		domainFilter.Filters["destacado"] = *filter.Featured
	}
	return domainFilter
}
