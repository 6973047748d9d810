package identity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jx4/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the admin console role
type Role string

const (
	RoleSuper     Role = "super"      // unrestricted
	RoleDeptAdmin Role = "dept_admin" // scoped to assigned department slugs
)

// Password cost for bcrypt
const bcryptCost = 12

var usernameRe = regexp.MustCompile(`^[a-z0-9_.-]{3,50}$`)

// DeptSlugs is the set of department slugs a scoped admin may operate on
type DeptSlugs []string

// Value implements driver.Valuer, serializing the slugs as JSON
func (s DeptSlugs) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *DeptSlugs) Scan(value interface{}) error {
	if value == nil {
		*s = DeptSlugs{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for DeptSlugs: %T", value)
	}
	return json.Unmarshal(data, s)
}

// Contains reports whether the given slug is in the set
func (s DeptSlugs) Contains(slug string) bool {
	for _, v := range s {
		if v == slug {
			return true
		}
	}
	return false
}

// AdminUser is a console operator. Super users manage everything including
// other admin users; department-scoped users manage only their slugs.
type AdminUser struct {
	shared.BaseEntity
	Username     string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	Role         Role      `gorm:"column:role;type:varchar(20);not null" json:"role"`
	DeptSlugs    DeptSlugs `gorm:"column:dept_slugs;type:jsonb" json:"dept_slugs"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
}

// TableName returns the table name for GORM
func (AdminUser) TableName() string {
	return "admin_users"
}

// NewAdminUser creates a new admin user with a hashed credential.
// A department-scoped user needs at least one assigned slug.
func NewAdminUser(username, password string, role Role, deptSlugs []string) (*AdminUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernameRe.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters of lowercase letters, digits, dot, dash or underscore")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role != RoleSuper && role != RoleDeptAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown admin role")
	}
	if role == RoleDeptAdmin && len(deptSlugs) == 0 {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Department-scoped admin needs at least one department")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &AdminUser{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		DeptSlugs:    deptSlugs,
	}, nil
}

// CheckPassword verifies the credential against the stored hash
func (u *AdminUser) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the credential
func (u *AdminUser) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// SetScope replaces role and department assignment
func (u *AdminUser) SetScope(role Role, deptSlugs []string) error {
	if role != RoleSuper && role != RoleDeptAdmin {
		return shared.NewDomainError("INVALID_ROLE", "Unknown admin role")
	}
	if role == RoleDeptAdmin && len(deptSlugs) == 0 {
		return shared.NewDomainError("INVALID_SCOPE", "Department-scoped admin needs at least one department")
	}
	u.Role = role
	if role == RoleSuper {
		u.DeptSlugs = nil
	} else {
		u.DeptSlugs = deptSlugs
	}
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *AdminUser) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// IsSuper reports whether the user has the unrestricted role
func (u *AdminUser) IsSuper() bool {
	return u.Role == RoleSuper
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
