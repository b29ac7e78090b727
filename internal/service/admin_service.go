package service

import (
	"context"
	"errors"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/pkg"
	"github.com/venturelab/venturehub/internal/policy"
	"github.com/venturelab/venturehub/internal/repository/mysql"
	"github.com/venturelab/venturehub/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type AdminService struct {
	repo   *mysql.AdminRepository
	tokens *redis.TokenRepository
}

func NewAdminService(repo *mysql.AdminRepository, tokens *redis.TokenRepository) *AdminService {
	return &AdminService{repo: repo, tokens: tokens}
}

func (s *AdminService) Login(ctx context.Context, username, password string) (*pkg.Pair, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("admin not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(admin.ID, pkg.PrincipalAdmin)
	if err != nil {
		return nil, err
	}
	if err = s.tokens.AddToken(pkg.PrincipalAdmin, admin.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AdminService) Logout(adminID uint64) error {
	return s.tokens.DeleteToken(pkg.PrincipalAdmin, adminID)
}

// CreateAdmin 只有 SUPER_ADMIN 能建管理员，权限集必须是已知枚举的子集
func (s *AdminService) CreateAdmin(ctx context.Context, actorID uint64, username, password, email string, perms []string) (*model.Admin, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() {
		return nil, errs.ErrUnauthorized
	}

	for _, p := range perms {
		if !policy.ValidPermission(policy.Permission(p)) {
			return nil, errs.ErrInvalidState
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Username:    username,
		Password:    string(hash),
		Email:       email,
		Role:        model.AdminRoleAdmin,
		Permissions: model.PermissionList(perms),
	}
	if err = s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdatePermissions SUPER_ADMIN 调整其他管理员的权限集
func (s *AdminService) UpdatePermissions(ctx context.Context, actorID, adminID uint64, perms []string) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsSuperAdmin() {
		return errs.ErrUnauthorized
	}
	for _, p := range perms {
		if !policy.ValidPermission(policy.Permission(p)) {
			return errs.ErrInvalidState
		}
	}
	if _, err = s.repo.FindByID(ctx, adminID); err != nil {
		return err
	}
	return s.repo.UpdatePermissions(ctx, adminID, model.PermissionList(perms))
}

func (s *AdminService) GetByID(ctx context.Context, id uint64) (*model.Admin, error) {
	return s.repo.FindByID(ctx, id)
}
