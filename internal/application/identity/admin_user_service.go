package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/domain/shared"
)

// AdminUserService administers console operators. The whole surface is
// super-only.
type AdminUserService struct {
	userRepo identity.AdminUserRepository
	logger   *zap.Logger
}

// NewAdminUserService creates a new AdminUserService
func NewAdminUserService(userRepo identity.AdminUserRepository, logger *zap.Logger) *AdminUserService {
	return &AdminUserService{userRepo: userRepo, logger: logger}
}

// Create creates a new admin user
func (s *AdminUserService) Create(ctx context.Context, scope identity.Scope, req CreateAdminUserRequest) (*UserInfo, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewAdminUser(req.Username, req.Password, identity.Role(req.Role), req.DeptSlugs)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Admin user created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	info := ToUserInfo(user)
	return &info, nil
}

// List returns all admin users
func (s *AdminUserService) List(ctx context.Context, scope identity.Scope) ([]UserInfo, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll(ctx, shared.Filter{OrderBy: "username", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return ToUserInfos(users), nil
}

// Update changes an operator's credential or scope
func (s *AdminUserService) Update(ctx context.Context, scope identity.Scope, userID uuid.UUID, req UpdateAdminUserRequest) (*UserInfo, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if req.Role != nil {
		// Demoting the last super would lock everyone out of the console
		if user.IsSuper() && identity.Role(*req.Role) != identity.RoleSuper {
			supers, err := s.userRepo.CountSupers(ctx)
			if err != nil {
				return nil, err
			}
			if supers <= 1 {
				return nil, shared.NewDomainError("LAST_SUPER", "Cannot demote the last super user")
			}
		}
		slugs := req.DeptSlugs
		if slugs == nil {
			slugs = user.DeptSlugs
		}
		if err := user.SetScope(identity.Role(*req.Role), slugs); err != nil {
			return nil, err
		}
	} else if req.DeptSlugs != nil {
		if err := user.SetScope(user.Role, req.DeptSlugs); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// Delete removes an operator. Super users are never deletable through this
// operation; demote them first via Update, which keeps its own guard against
// demoting the last super.
func (s *AdminUserService) Delete(ctx context.Context, scope identity.Scope, userID uuid.UUID) error {
	if err := scope.RequireSuper(); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsSuper() {
		return shared.NewDomainError("SUPER_NOT_DELETABLE", "Super users cannot be deleted; demote first")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Admin user deleted", zap.String("username", user.Username))
	return nil
}
