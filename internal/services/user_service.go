package services

import (
	"cafeteria/internal/auth"
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type UserService interface {
	Register(ctx context.Context, reg Registration) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, password string) error
	CountCustomers(ctx context.Context) (int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates a customer account.
func (s *userService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Phone = strings.TrimSpace(reg.Phone)
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     reg.Username,
		PasswordHash: hash,
		Role:         string(models.RoleCustomer),
		Email:        reg.Email,
		Phone:        reg.Phone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateUsername, reg.Username)
		}
		return nil, storageError("create user", err)
	}
	return user, nil
}

func validateRegistration(reg Registration) error {
	switch {
	case reg.Username == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case len(reg.Username) < 3:
		return fmt.Errorf("%w: username must be at least 3 characters long", ErrValidation)
	case reg.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case !emailPattern.MatchString(reg.Email):
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	case reg.Phone != "" && !phonePattern.MatchString(reg.Phone):
		return fmt.Errorf("%w: phone number must have 9-15 digits", ErrValidation)
	}
	return validatePassword(reg.Password)
}

func validatePassword(password string) error {
	switch {
	case len(password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	case !lowerPattern.MatchString(password):
		return fmt.Errorf("%w: password must include a lowercase letter", ErrValidation)
	case !upperPattern.MatchString(password):
		return fmt.Errorf("%w: password must include an uppercase letter", ErrValidation)
	case !digitPattern.MatchString(password):
		return fmt.Errorf("%w: password must include a number", ErrValidation)
	case !specialPattern.MatchString(password):
		return fmt.Errorf("%w: password must include a special character", ErrValidation)
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("authenticate", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, storageError(fmt.Sprintf("get user '%s'", username), err)
	}
	return user, nil
}

// EnsureAdmin creates the administrator account when it does not exist yet.
func (s *userService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if !repository.IsNotFound(err) {
		return storageError("get admin user", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         string(models.RoleAdmin),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return storageError("create admin user", err)
	}
	log.Printf("Admin user %q created", username)
	return nil
}

func (s *userService) CountCustomers(ctx context.Context) (int64, error) {
	n, err := s.userRepo.CountByRole(ctx, string(models.RoleCustomer))
	if err != nil {
		return 0, storageError("count customers", err)
	}
	return n, nil
}
