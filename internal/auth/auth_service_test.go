package auth_test

import (
	"context"
	"errors"
	"testing"

	"leaveflow/internal/auth"
	autherrors "leaveflow/internal/auth/errors"
	"leaveflow/internal/domain"
	"leaveflow/internal/user"
	usererrors "leaveflow/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn      func(ctx context.Context, u *user.User) error
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findAllFn     func(ctx context.Context) ([]user.User, error)
	findByRoleFn  func(ctx context.Context, role domain.Role) ([]user.User, error)
	updateFn      func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByRole(ctx context.Context, role domain.Role) ([]user.User, error) {
	if f.findByRoleFn != nil {
		return f.findByRoleFn(ctx, role)
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success seeds default allotments", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			FirstName: "Raka",
			LastName:  "Wijaya",
			Email:     "raka@example.com",
			Password:  "secret123",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.NotNil(t, created)
		assert.Equal(t, domain.RoleEmployee, created.Role)
		assert.True(t, created.IsActive)
		assert.Equal(t, 25, created.AnnualAllotment)
		assert.Equal(t, 10, created.SickAllotment)
		assert.Equal(t, 5, created.CasualAllotment)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	})

	t.Run("success explicit admin role", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			FirstName: "Sari",
			LastName:  "Lestari",
			Email:     "sari@example.com",
			Password:  "secret123",
			Role:      "admin",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, created.Role)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				return gorm.ErrDuplicatedKey
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			FirstName: "Raka",
			LastName:  "Wijaya",
			Email:     "raka@example.com",
			Password:  "secret123",
		})

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
	})

	t.Run("negative repository outage is not a conflict", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				return errors.New("connection refused")
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			FirstName: "Raka",
			LastName:  "Wijaya",
			Email:     "raka@example.com",
			Password:  "secret123",
		})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			FirstName: "Raka",
			LastName:  "Wijaya",
			Email:     "raka@example.com",
			Password:  "secret123",
			Role:      "SUPERVISOR",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	storedUser := func() *user.User {
		return &user.User{
			ID:       uuid.New(),
			Email:    "raka@example.com",
			Password: string(hashed),
			Role:     domain.RoleEmployee,
			IsActive: true,
		}
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, "raka@example.com", email)
				return storedUser(), nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.Login(ctx, "raka@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return storedUser(), nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, "raka@example.com", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Login(ctx, "ghost@example.com", "secret123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative deactivated account", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				u := storedUser()
				u.IsActive = false
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, "raka@example.com", "secret123")

		assert.ErrorIs(t, err, usererrors.ErrUserInactive)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, userID string) (*user.User, error) {
				return &user.User{
					ID:        id,
					FirstName: "Raka",
					LastName:  "Wijaya",
					Email:     "raka@example.com",
					Role:      domain.RoleEmployee,
					IsActive:  true,
				}, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.GetMe(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}
