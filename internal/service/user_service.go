package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kitchensaver/internal/auth"
	"kitchensaver/internal/cache"
	"kitchensaver/internal/errors"
	"kitchensaver/internal/model"
	"kitchensaver/internal/repository"
)

const (
	bcryptCost      = 10
	profileCacheTTL = 5 * time.Minute
)

// UserInput carries the fields accepted by registration and by the two
// partial update endpoints. For updates, empty fields are left unchanged.
type UserInput struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Cell            string `json:"cell"`
	Office          string `json:"office"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserService handles accounts: registration, login, profile updates
// and the admin-only employee operations.
type UserService interface {
	Register(ctx context.Context, in *UserInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	UpdateProfile(ctx context.Context, email string, in *UserInput) (*model.User, string, error)
	UpdateEmployee(ctx context.Context, in *UserInput) (*model.User, error)
	GetSelf(ctx context.Context, email string) (*model.User, error)
	ListEmployees(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	repo       repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewUserService builds a UserService with repository, token codec and cache.
func NewUserService(repo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) UserService {
	return &userService{
		repo:       repo,
		jwtService: jwtService,
		cache:      cache,
	}
}

func profileCacheKey(email string) string {
	return "user:profile:" + email
}

// Register validates the input, persists the user with a hashed
// password and returns the created user plus a freshly minted token.
//
// The duplicate checks here are advisory; the unique indexes on email
// and username resolve concurrent registrations at the storage boundary.
func (s *userService) Register(ctx context.Context, in *UserInput) (*model.User, string, error) {
	if in.Password != in.ConfirmPassword {
		return nil, "", errors.ErrPasswordMismatch
	}

	if existing, err := s.repo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, "", errors.ErrEmailExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check email existence: %w", err)
	}

	if existing, err := s.repo.FindByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, "", errors.ErrUsernameExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check username existence: %w", err)
	}

	for _, f := range []struct{ label, value string }{
		{"First name", in.FirstName},
		{"Last name", in.LastName},
		{"Email", in.Email},
		{"Cell number", in.Cell},
		{"Office", in.Office},
		{"Role", in.Role},
		{"Username", in.Username},
		{"Password", in.Password},
	} {
		if f.value == "" {
			return nil, "", errors.Required(f.label)
		}
	}

	role, ok := model.ParseRole(in.Role)
	if !ok {
		return nil, "", errors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Username:  in.Username,
		Cell:      in.Cell,
		Office:    in.Office,
		Role:      role,
		Password:  string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Mint(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password and returns the user with
// a minted token. Unknown email and wrong password produce the same
// error so the response does not reveal which field was wrong.
func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Mint(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	return user, token, nil
}

// UpdateProfile merges the non-empty fields of in into the caller's
// own record, identified by the authenticated email, and mints a new
// token reflecting any identity change.
func (s *userService) UpdateProfile(ctx context.Context, email string, in *UserInput) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrUserNotFound
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, "", fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if in.Cell != "" {
		user.Cell = in.Cell
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, "", fmt.Errorf("save user: %w", err)
	}
	// the cached profile may be keyed under the pre-update email
	_ = s.cache.Delete(ctx, profileCacheKey(email))
	_ = s.cache.Delete(ctx, profileCacheKey(user.Email))

	token, err := s.jwtService.Mint(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	return user, token, nil
}

// UpdateEmployee merges the non-empty fields of in into the user
// addressed by in.ID. Email changes are re-validated for uniqueness
// against all other users, and a password change must be confirmed.
func (s *userService) UpdateEmployee(ctx context.Context, in *UserInput) (*model.User, error) {
	if in.ID == "" {
		return nil, errors.Required("Id")
	}
	id, err := strconv.ParseUint(in.ID, 10, 64)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	user, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	prevEmail := user.Email

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Email != "" {
		if other, err := s.repo.FindByEmail(ctx, in.Email); err == nil && other.ID != user.ID {
			return nil, errors.ErrEmailExists
		}
		user.Email = in.Email
	}
	if in.Cell != "" {
		user.Cell = in.Cell
	}
	if in.Office != "" {
		user.Office = in.Office
	}
	if in.Role != "" {
		role, ok := model.ParseRole(in.Role)
		if !ok {
			return nil, errors.ErrInvalidRole
		}
		user.Role = role
	}
	if in.Password != "" {
		if in.Password != in.ConfirmPassword {
			return nil, errors.ErrPasswordMismatch
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(prevEmail))
	_ = s.cache.Delete(ctx, profileCacheKey(user.Email))
	return user, nil
}

// GetSelf returns the caller's own record, served from cache when warm.
func (s *userService) GetSelf(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(email), payload, profileCacheTTL)
	}
	return user, nil
}

// ListEmployees returns every user except admins.
func (s *userService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.repo.ListByRoleNot(ctx, model.RoleAdmin)
}

// Delete removes a user by id. Deleting an id that no longer exists is
// a no-op: the row is gone either way. Jobs referencing the user keep
// their stored ids; their display names resolve to empty strings.
func (s *userService) Delete(ctx context.Context, id uint) error {
	if user, err := s.repo.FindByID(ctx, id); err == nil {
		_ = s.cache.Delete(ctx, profileCacheKey(user.Email))
	}
	return s.repo.Delete(ctx, id)
}
