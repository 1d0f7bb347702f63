package service

import (
	"testing"
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*gorm.DB, AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	svc := NewAuthService(
		userRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	return testDB, svc
}

func TestAuthService_Register(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		role     model.UserRole
		wantRole model.UserRole
		wantErr  error
	}{
		{
			name:     "Staff registration",
			email:    "staff@example.com",
			password: "password123",
			userName: "Staff Member",
			role:     model.RoleStaff,
			wantRole: model.RoleStaff,
		},
		{
			name:     "Admin registration",
			email:    "admin@example.com",
			password: "password123",
			userName: "Admin User",
			role:     model.RoleAdmin,
			wantRole: model.RoleAdmin,
		},
		{
			name:     "Unknown role falls back to staff",
			email:    "other@example.com",
			password: "password123",
			userName: "Other User",
			role:     "superuser",
			wantRole: model.RoleStaff,
		},
		{
			name:     "Duplicate email",
			email:    "staff@example.com",
			password: "password456",
			userName: "Another User",
			role:     model.RoleStaff,
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(tt.email, tt.password, tt.userName, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.wantRole, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.Register("staff@example.com", "password123", "Staff Member", model.RoleStaff)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid credentials",
			email:    "staff@example.com",
			password: "password123",
		},
		{
			name:     "Wrong password",
			email:    "staff@example.com",
			password: "wrong",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: "password123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := svc.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, err := svc.Register("staff@example.com", "password123", "Staff Member", model.RoleStaff)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "Renamed Member", "010-1234-5678")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Member", updated.Name)
	assert.Equal(t, "010-1234-5678", updated.Phone)

	// Empty fields leave the stored values alone.
	updated, err = svc.UpdateProfile(user.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Member", updated.Name)

	_, err = svc.UpdateProfile(9999, "Ghost", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_DeleteUser(t *testing.T) {
	testDB, svc := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, err := svc.Register("staff@example.com", "password123", "Staff Member", model.RoleStaff)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))

	_, err = svc.GetUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.DeleteUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
