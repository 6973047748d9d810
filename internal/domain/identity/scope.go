package identity

import (
	"github.com/jx4/backend/internal/domain/shared"
)

// Scope is the capability view computed from an admin identity. It is a pure
// value: stateless given (user, requested record), and consulted before every
// admin-initiated write reaches the persistence layer.
type Scope struct {
	role      Role
	deptSlugs DeptSlugs
}

// ResolveScope computes the capability view for an admin user
func ResolveScope(user *AdminUser) Scope {
	if user == nil {
		return Scope{}
	}
	return Scope{role: user.Role, deptSlugs: user.DeptSlugs}
}

// SuperScope returns the unrestricted capability view
func SuperScope() Scope {
	return Scope{role: RoleSuper}
}

// IsSuper reports whether the scope is unrestricted
func (s Scope) IsSuper() bool {
	return s.role == RoleSuper
}

// RequireSuper returns ErrForbidden unless the scope is unrestricted.
// Departments, site configuration and admin-user administration are
// super-only surfaces.
func (s Scope) RequireSuper() error {
	if !s.IsSuper() {
		return shared.ErrForbidden
	}
	return nil
}

// CanManageProducts reports whether the scope may write products at all
func (s Scope) CanManageProducts() bool {
	return s.IsSuper() || len(s.deptSlugs) > 0
}

// CoerceProductDepartment resolves the department a product write lands in.
// A super user keeps the requested department. A department-scoped user keeps
// it only when it is inside their assigned set; otherwise it is silently
// coerced to the first assigned slug. This permissive fallback is deliberate:
// a malformed client payload must not create an orphaned cross-tenant record.
func (s Scope) CoerceProductDepartment(requested string) (string, error) {
	if s.IsSuper() {
		return requested, nil
	}
	if len(s.deptSlugs) == 0 {
		return "", shared.ErrForbidden
	}
	if s.deptSlugs.Contains(requested) {
		return requested, nil
	}
	return s.deptSlugs[0], nil
}

// CanViewDepartment reports whether records of the given department slug are
// visible to this scope (products and orders).
func (s Scope) CanViewDepartment(slug string) bool {
	return s.IsSuper() || s.deptSlugs.Contains(slug)
}

// VisibleDepartments returns the slugs this scope is limited to. all is true
// for super users, in which case the slice is nil.
func (s Scope) VisibleDepartments() (slugs []string, all bool) {
	if s.IsSuper() {
		return nil, true
	}
	return s.deptSlugs, false
}
