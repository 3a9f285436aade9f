package auth

import (
	"context"
	"os"
	"time"

	autherrors "leaveflow/internal/auth/errors"
	"leaveflow/internal/domain"
	"leaveflow/internal/user"
	usererrors "leaveflow/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAnnualAllotment = 25
	defaultSickAllotment   = 10
	defaultCasualAllotment = 5

	tokenTTL = 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	GetMe(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := domain.RoleEmployee
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			return AuthResponse{}, usererrors.ErrInvalidRole
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.Error(err))
		return AuthResponse{}, err
	}

	u := &user.User{
		ID:              uuid.New(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        string(hashed),
		Role:            role,
		IsActive:        true,
		AnnualAllotment: defaultAnnualAllotment,
		SickAllotment:   defaultSickAllotment,
		CasualAllotment: defaultCasualAllotment,
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.logger.Warn("register persist failed", zap.String("email", req.Email), zap.Error(err))
		return AuthResponse{}, user.MapRepositoryError(err)
	}

	token, err := s.generateToken(u.ID.String(), u.Role)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role.String()),
	)

	return AuthResponse{Token: token, User: user.MapToResponse(*u)}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return AuthResponse{}, usererrors.ErrUserInactive
	}

	token, err := s.generateToken(u.ID.String(), u.Role)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))

	return AuthResponse{Token: token, User: user.MapToResponse(*u)}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return user.UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, usererrors.ErrUserNotFound
	}

	return user.MapToResponse(*u), nil
}

func (s *service) generateToken(userID string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role.String(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
