package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/jx4/backend/internal/domain/shared"
)

// CarrierDepartmentSlug is the reserved department for logistics options.
// Products under it are carriers: priced add-ons selectable only at checkout.
const CarrierDepartmentSlug = "transporte"

var whitespaceRe = regexp.MustCompile(`\s+`)

// Department is a tenant/category partition of the catalog. It is also the
// unit of admin authorization scoping and the routing key for outbound
// WhatsApp messages.
type Department struct {
	shared.BaseEntity
	Name          string `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Slug          string `gorm:"column:slug;type:varchar(50);not null;index" json:"slug"`
	WhatsAppPhone string `gorm:"column:telefono_whatsapp;type:varchar(30)" json:"telefono_whatsapp"`
	ColorHex      string `gorm:"column:color_hex;type:varchar(9)" json:"color_hex"`
	Active        bool   `gorm:"column:activo;not null;default:true" json:"activo"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

// NewDepartment creates a new department. The slug is normalized from the
// given value (or derived from the name when empty). Slug uniqueness is a
// convention, not a constraint: a duplicate slug wins over the older record.
func NewDepartment(name, slug string) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Department name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Department name cannot exceed 100 characters")
	}

	if strings.TrimSpace(slug) == "" {
		slug = name
	}
	normalized := Slugify(slug)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Department slug cannot be empty")
	}
	if len(normalized) > 50 {
		return nil, shared.NewDomainError("INVALID_SLUG", "Department slug cannot exceed 50 characters")
	}

	return &Department{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       normalized,
		Active:     true,
	}, nil
}

// Update updates the department's display attributes
func (d *Department) Update(name, colorHex string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Department name cannot be empty")
	}
	d.Name = name
	d.ColorHex = colorHex
	d.UpdatedAt = time.Now()
	return nil
}

// SetWhatsAppPhone sets the contact address orders are routed to
func (d *Department) SetWhatsAppPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}
	d.WhatsAppPhone = phone
	d.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles storefront visibility
func (d *Department) SetActive(active bool) {
	d.Active = active
	d.UpdatedAt = time.Now()
}

// IsCarrierDepartment reports whether this is the reserved logistics department
func (d *Department) IsCarrierDepartment() bool {
	return d.Slug == CarrierDepartmentSlug
}

// Slugify normalizes a value into a lower-kebab-case slug: lower-cased with
// whitespace runs replaced by single hyphens.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return whitespaceRe.ReplaceAllString(value, "-")
}
