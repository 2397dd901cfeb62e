package auth_test

import (
	"context"
	"testing"

	"go-employee/internal/auth"
	autherrors "go-employee/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error { return nil }
func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	assert.NoError(t, err)

	adminUser := &auth.User{
		ID:       userID,
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(hash),
		IsActive: true,
	}

	t.Run("success returns a signed token", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, "admin@example.com", email)
				return adminUser, nil
			},
		}
		svc := auth.NewService(repo)

		token, resp, err := svc.Login(ctx, "admin@example.com", "rahasia123")

		assert.NoError(t, err)
		assert.Equal(t, userID.String(), resp.ID)
		assert.Equal(t, "admin@example.com", resp.Email)

		parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, userID.String(), claims["user_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return adminUser, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, err := svc.Login(ctx, "admin@example.com", "salah")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error as a wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := auth.NewService(repo)

		_, _, err := svc.Login(ctx, "siapa@example.com", "rahasia123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, userID, id)
				return &auth.User{ID: userID, Name: "Admin", Email: "admin@example.com"}, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Admin", resp.Name)
	})

	t.Run("non uuid id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})
		_, err := svc.GetMe(ctx, "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.GetMe(ctx, uuid.New().String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
