package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jx4/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string           `json:"nombre" binding:"required,min=1,max=200"`
	Description string           `json:"descripcion" binding:"max=2000"`
	Price       decimal.Decimal  `json:"precio" binding:"required"`
	Stock       *int             `json:"stock"`
	ImageURL    string           `json:"imagen_url" binding:"max=500"`
	Category    string           `json:"categoria" binding:"max=100"`
	Department  string           `json:"departamento" binding:"required,min=1,max=50"`
	Unit        string           `json:"unidad" binding:"required"`
	ByWeight    *bool            `json:"peso_referencial"`
	Available   *bool            `json:"disponible"`
	Featured    *bool            `json:"destacado"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"imagen_url" binding:"omitempty,max=500"`
	Category    *string          `json:"categoria" binding:"omitempty,max=100"`
	Department  *string          `json:"departamento" binding:"omitempty,min=1,max=50"`
	Unit        *string          `json:"unidad"`
	ByWeight    *bool            `json:"peso_referencial"`
	Available   *bool            `json:"disponible"`
	Featured    *bool            `json:"destacado"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imagen_url"`
	Category    string          `json:"categoria"`
	Department  string          `json:"departamento"`
	Unit        string          `json:"unidad"`
	ByWeight    bool            `json:"peso_referencial"`
	Available   bool            `json:"disponible"`
	Featured    bool            `json:"destacado"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string `form:"search"`
	Department string `form:"departamento"`
	Category   string `form:"categoria"`
	Unit       string `form:"unidad"`
	Available  *bool  `form:"disponible"`
	Featured   *bool  `form:"destacado"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateDepartmentRequest represents a request to create a department
type CreateDepartmentRequest struct {
	Name          string `json:"nombre" binding:"required,min=1,max=100"`
	Slug          string `json:"slug" binding:"max=50"`
	WhatsAppPhone string `json:"telefono_whatsapp" binding:"max=30"`
	ColorHex      string `json:"color_hex" binding:"max=9"`
	Active        *bool  `json:"activo"`
}

// UpdateDepartmentRequest represents a request to update a department
type UpdateDepartmentRequest struct {
	Name          *string `json:"nombre" binding:"omitempty,min=1,max=100"`
	WhatsAppPhone *string `json:"telefono_whatsapp" binding:"omitempty,max=30"`
	ColorHex      *string `json:"color_hex" binding:"omitempty,max=9"`
	Active        *bool   `json:"activo"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"nombre"`
	Slug          string    `json:"slug"`
	WhatsAppPhone string    `json:"telefono_whatsapp"`
	ColorHex      string    `json:"color_hex"`
	Active        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ImageUploadRequest asks for a presigned upload slot for a product image
type ImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=200"`
	ContentType string `json:"content_type" binding:"required"`
}

// ImageUploadResponse carries the presigned URL the client uploads to
type ImageUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Department:  p.Department,
		Unit:        string(p.Unit),
		ByWeight:    p.ByWeight,
		Available:   p.Available,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToDepartmentResponse converts a domain Department to DepartmentResponse
func ToDepartmentResponse(d *catalog.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Slug:          d.Slug,
		WhatsAppPhone: d.WhatsAppPhone,
		ColorHex:      d.ColorHex,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDepartmentResponses converts a slice of domain Departments
func ToDepartmentResponses(departments []catalog.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = ToDepartmentResponse(&departments[i])
	}
	return responses
}
