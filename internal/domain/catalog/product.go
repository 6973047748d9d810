package catalog

import (
	"strings"
	"time"

	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Unit represents the unit of measure a product is sold by
type Unit string

const (
	UnitUnd     Unit = "und"
	UnitKg      Unit = "kg"
	UnitGr      Unit = "gr"
	UnitCaja    Unit = "caja"
	UnitPaquete Unit = "paquete"
	UnitBulto   Unit = "bulto"
	UnitSaco    Unit = "saco"
	UnitMetro   Unit = "metro"
	UnitLitro   Unit = "litro"
	UnitDocena  Unit = "docena"
)

var validUnits = map[Unit]bool{
	UnitUnd: true, UnitKg: true, UnitGr: true, UnitCaja: true,
	UnitPaquete: true, UnitBulto: true, UnitSaco: true,
	UnitMetro: true, UnitLitro: true, UnitDocena: true,
}

// Product represents a sellable item in the catalog.
// It is the aggregate root for product-related operations.
// Column and JSON names stay compatible with the original store schema.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"column:nombre;type:varchar(200);not null" json:"nombre"`
	Description string          `gorm:"column:descripcion;type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"column:precio;type:decimal(18,2);not null;default:0" json:"precio"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	ImageURL    string          `gorm:"column:imagen_url;type:varchar(500)" json:"imagen_url"`
	Category    string          `gorm:"column:categoria;type:varchar(100)" json:"categoria"`
	Department  string          `gorm:"column:departamento;type:varchar(50);not null;index" json:"departamento"`
	Unit        Unit            `gorm:"column:unidad;type:varchar(20);not null;default:'und'" json:"unidad"`
	ByWeight    bool            `gorm:"column:peso_referencial;not null;default:false" json:"peso_referencial"`
	Available   bool            `gorm:"column:disponible;not null;default:true" json:"disponible"`
	Featured    bool            `gorm:"column:destacado;not null;default:false" json:"destacado"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, department string, unit Unit) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if err := validateDepartmentSlug(department); err != nil {
		return nil, err
	}
	if err := ValidateUnit(unit); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Price:      price,
		Department: department,
		Unit:       unit,
		Available:  true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice sets the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock sets the advisory stock count.
// Stock is informational only; no operation in this system decrements it.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// SetImageURL sets the product image reference
func (p *Product) SetImageURL(imageURL string) error {
	if len(imageURL) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()
	return nil
}

// SetDepartment moves the product to another department
func (p *Product) SetDepartment(slug string) error {
	if err := validateDepartmentSlug(slug); err != nil {
		return err
	}
	p.Department = slug
	p.UpdatedAt = time.Now()
	return nil
}

// SetUnit sets the unit of measure
func (p *Product) SetUnit(unit Unit) error {
	if err := ValidateUnit(unit); err != nil {
		return err
	}
	p.Unit = unit
	p.UpdatedAt = time.Now()
	return nil
}

// SetByWeight marks the price as referential per weight
func (p *Product) SetByWeight(byWeight bool) {
	p.ByWeight = byWeight
	p.UpdatedAt = time.Now()
}

// SetAvailability toggles storefront visibility
func (p *Product) SetAvailability(available bool) {
	p.Available = available
	p.UpdatedAt = time.Now()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
}

// IsCarrier reports whether the product belongs to the reserved logistics
// department. Carriers are selectable only during checkout, never via the cart.
func (p *Product) IsCarrier() bool {
	return p.Department == CarrierDepartmentSlug
}

// PriceMoney returns the unit price as a USD Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// ValidateUnit validates the unit of measure
func ValidateUnit(unit Unit) error {
	if !validUnits[unit] {
		return shared.NewDomainError("INVALID_UNIT", "Unknown unit of measure")
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateDepartmentSlug validates the department reference.
// Existence of the department is not checked here: the source of truth accepts
// products pointing at departments created later (last-write-wins convention).
func validateDepartmentSlug(slug string) error {
	if strings.TrimSpace(slug) == "" {
		return shared.NewDomainError("INVALID_DEPARTMENT", "Department slug cannot be empty")
	}
	if len(slug) > 50 {
		return shared.NewDomainError("INVALID_DEPARTMENT", "Department slug cannot exceed 50 characters")
	}
	return nil
}
