package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/logger"
	"tokenvest/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new investor
func (s *userService) CreateUser(username, password string) (*models.User, error) {
	return s.createWithRole(username, password, models.RoleInvestor)
}

// EnsureAdmin creates the admin account if the username is free and promotes
// it if it exists with a lower role. The password of an existing user is
// left alone.
func (s *userService) EnsureAdmin(username, password string) (*models.User, error) {
	existing, err := s.GetUserByUsername(username)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			if err := s.db.Model(existing).Update("role", models.RoleAdmin).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			existing.Role = models.RoleAdmin
			logger.Get().Infow("promoted user to admin", "user_id", existing.ID)
		}
		return existing, nil
	case errors.Is(err, apperrors.ErrUserNotFound):
		user, err := s.createWithRole(username, password, models.RoleAdmin)
		if err != nil {
			return nil, err
		}
		logger.Get().Infow("seeded admin user", "user_id", user.ID)
		return user, nil
	default:
		return nil, err
	}
}

func (s *userService) createWithRole(username, password string, role models.Role) (*models.User, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	// Check if user with username exists
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", normalizeUsername(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// AttemptLogin returns the user when the credentials match. Unknown users and
// wrong passwords produce the same error.
func (s *userService) AttemptLogin(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
