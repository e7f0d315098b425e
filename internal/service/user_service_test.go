package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kitchensaver/internal/auth"
	"kitchensaver/internal/errors"
	"kitchensaver/internal/model"
	"kitchensaver/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRoleNot(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestUserService(repo repository.UserRepository) UserService {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewUserService(repo, jwtService, nil)
}

func validRegistration() *UserInput {
	return &UserInput{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Username:        "janedoe",
		Cell:            "555-1234",
		Office:          "North",
		Role:            "cabinet_maker",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*UserInput)
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "janedoe").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:   "password mismatch",
			mutate: func(in *UserInput) { in.ConfirmPassword = "different" },
			setupMock: func(m *MockUserRepository) {
			},
			expectedError: errors.ErrPasswordMismatch,
		},
		{
			name: "email already exists",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{Email: "jane@example.com"}, nil)
			},
			expectedError: errors.ErrEmailExists,
		},
		{
			name: "username already exists",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "janedoe").Return(&model.User{Username: "janedoe"}, nil)
			},
			expectedError: errors.ErrUsernameExists,
		},
		{
			name:   "blank first name",
			mutate: func(in *UserInput) { in.FirstName = "" },
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "janedoe").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.Required("First name"),
		},
		{
			name:   "invalid role",
			mutate: func(in *UserInput) { in.Role = "manager" },
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "janedoe").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := newTestUserService(mockRepo)

			in := validRegistration()
			if tt.mutate != nil {
				tt.mutate(in)
			}

			user, token, err := svc.Register(context.Background(), in)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, "jane@example.com", user.Email)
				assert.Equal(t, model.RoleCabinetMaker, user.Role)
				// password is stored only as a hash
				assert.NotEqual(t, "password123", user.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_RegisterThenLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("FindByUsername", mock.Anything, "janedoe").Return(nil, gorm.ErrRecordNotFound)

	var created *model.User
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*model.User)
		created.ID = 42
	}).Return(nil)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewUserService(mockRepo, jwtService, nil)

	_, _, err := svc.Register(context.Background(), validRegistration())
	assert.NoError(t, err)

	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(created, nil)

	user, token, err := svc.Login(context.Background(), "jane@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)

	claims, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Subject)
	assert.Equal(t, model.RoleCabinetMaker, claims.Role)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestUserService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jane@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					ID:       7,
					Email:    "jane@example.com",
					Role:     model.RoleInstaller,
					Password: string(hashed),
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					Email:    "jane@example.com",
					Password: string(hashed),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := newTestUserService(mockRepo)

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// same message whether the email or the password was wrong
				assert.EqualError(t, err, errors.ErrInvalidCredentials.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateProfile_PartialMerge(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	existing := &model.User{
		ID:        3,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Username:  "janedoe",
		Cell:      "555-0000",
		Office:    "North",
		Role:      model.RoleCabinetMaker,
		Password:  string(hashed),
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewUserService(mockRepo, jwtService, nil)

	user, token, err := svc.UpdateProfile(context.Background(), "jane@example.com", &UserInput{Cell: "555-1234"})
	assert.NoError(t, err)

	// exactly the cell changes, everything else is untouched
	assert.Equal(t, "555-1234", user.Cell)
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "janedoe", user.Username)
	assert.Equal(t, model.RoleCabinetMaker, user.Role)
	assert.Equal(t, string(hashed), user.Password)

	claims, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Subject)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_EmailChangeRemintsToken(t *testing.T) {
	existing := &model.User{
		ID:    3,
		Email: "old@example.com",
		Role:  model.RoleInstaller,
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "old@example.com").Return(existing, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewUserService(mockRepo, jwtService, nil)

	user, token, err := svc.UpdateProfile(context.Background(), "old@example.com", &UserInput{Email: "new@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)

	claims, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Subject)
}

func TestUserService_UpdateEmployee(t *testing.T) {
	target := func() *model.User {
		return &model.User{
			ID:        5,
			FirstName: "Bob",
			LastName:  "Smith",
			Email:     "bob@example.com",
			Username:  "bobsmith",
			Cell:      "555-2222",
			Office:    "South",
			Role:      model.RoleInstaller,
			Password:  "hash",
		}
	}

	tests := []struct {
		name          string
		input         *UserInput
		setupMock     func(*MockUserRepository)
		expectedError error
		check         func(*testing.T, *model.User)
	}{
		{
			name:  "id required",
			input: &UserInput{FirstName: "Robert"},
			setupMock: func(m *MockUserRepository) {
			},
			expectedError: errors.Required("Id"),
		},
		{
			name:  "target not found",
			input: &UserInput{ID: "99"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:  "email taken by another user",
			input: &UserInput{ID: "5", Email: "taken@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(target(), nil)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 8, Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrEmailExists,
		},
		{
			name:  "email update to own email is allowed",
			input: &UserInput{ID: "5", Email: "bob@example.com", FirstName: "Robert"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(target(), nil)
				m.On("FindByEmail", mock.Anything, "bob@example.com").Return(&model.User{ID: 5, Email: "bob@example.com"}, nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, "Robert", u.FirstName)
				assert.Equal(t, "Smith", u.LastName)
			},
		},
		{
			name:  "password change requires confirmation",
			input: &UserInput{ID: "5", Password: "newpass", ConfirmPassword: "other"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(target(), nil)
			},
			expectedError: errors.ErrPasswordMismatch,
		},
		{
			name:  "role change",
			input: &UserInput{ID: "5", Role: "cabinet_maker"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(target(), nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.RoleCabinetMaker, u.Role)
			},
		},
		{
			name:  "invalid role rejected",
			input: &UserInput{ID: "5", Role: "boss"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(target(), nil)
			},
			expectedError: errors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := newTestUserService(mockRepo)

			user, err := svc.UpdateEmployee(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, user)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_ListEmployees(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("ListByRoleNot", mock.Anything, model.RoleAdmin).Return([]model.User{
		{ID: 1, Role: model.RoleCabinetMaker},
		{ID: 2, Role: model.RoleInstaller},
	}, nil)
	svc := newTestUserService(mockRepo)

	users, err := svc.ListEmployees(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete_MissingIDIsNoOp(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Delete", mock.Anything, uint(9)).Return(nil)
	svc := newTestUserService(mockRepo)

	err := svc.Delete(context.Background(), 9)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
