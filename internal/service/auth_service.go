package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/config"
	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/jwt"
)

// ── Auth module business errors ──

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminExists          = errors.New("admin already exists")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrRegistrationDisabled = errors.New("registration is disabled")
)

// TokenBlacklist revokes tokens by JWT ID. Nil-able: without Redis,
// logout is a client-side discard only.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService is the admin authentication interface.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AdminResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentAdmin(ctx context.Context, adminID string) (*dto.AdminResponse, error)
	ChangePassword(ctx context.Context, adminID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService instance.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.repo.Admin.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup admin failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(admin.AdminID, admin.Username)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AdminResponse, error) {
	if !s.cfg.Feature.RegistrationEnabled {
		return nil, ErrRegistrationDisabled
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	admin := &model.Admin{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminExists
		}
		s.logger.Error("create admin failed", zap.Error(err))
		return nil, err
	}

	return &dto.AdminResponse{ID: admin.AdminID, Username: admin.Username}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil {
		s.logger.Warn("logout without redis: token not blacklisted")
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentAdmin(ctx context.Context, adminID string) (*dto.AdminResponse, error) {
	admin, err := s.repo.Admin.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("lookup admin failed", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	return &dto.AdminResponse{ID: admin.AdminID, Username: admin.Username}, nil
}

func (s *authService) ChangePassword(ctx context.Context, adminID string, req *dto.ChangePasswordRequest) error {
	admin, err := s.repo.Admin.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		s.logger.Error("lookup admin failed", zap.String("admin_id", adminID), zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}

	if err := s.repo.Admin.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		s.logger.Error("update password failed", zap.String("admin_id", adminID), zap.Error(err))
		return err
	}
	return nil
}
