package service

import (
	"context"
	"errors"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/pkg"
	"github.com/venturelab/venturehub/internal/repository/mysql"
	"github.com/venturelab/venturehub/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     *mysql.UserRepository
	tokens   *redis.TokenRepository
	emailSvc *EmailService
}

func NewUserService(repo *mysql.UserRepository, tokens *redis.TokenRepository, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		emailSvc: emailSvc,
	}
}

// Register 验证邮箱验证码后落库；角色限定在平台身份枚举内
func (s *UserService) Register(ctx context.Context, username, password, email, code, role string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeRegister, email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	if role == "" {
		role = model.RoleEntrepreneur
	}
	if !model.ValidUserRole(role) {
		return errs.ErrInvalidState
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
		Role:     role,
		IsActive: true,
	})
}

// Login 单会话：新登录会顶掉旧 token
func (s *UserService) Login(ctx context.Context, login, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errs.ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(user.ID, pkg.PrincipalUser)
	if err != nil {
		return nil, err
	}
	if err = s.tokens.AddToken(pkg.PrincipalUser, user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.tokens.DeleteToken(pkg.PrincipalUser, userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ResetPassword 凭邮箱验证码重置
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeReset, email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user, string(hash))
}

// ChangePassword 登录态修改密码，成功后强制下线
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return err
	}
	return s.Logout(userID)
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}
