package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingFields        = errors.New("username, password, email, and full name are all required")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUserConflict         = errors.New("username or email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// MissingFieldsError lists the registration fields that were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Is lets errors.Is match ErrMissingFields.
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// bcrypt only hashes the first 72 bytes of a password and rejects longer input.
const maxPasswordBytes = 72

// TokenIssuer signs credentials for authenticated users.
type TokenIssuer interface {
	Issue(id auth.Identity) (auth.Token, error)
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	dummyHash  []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// Compared against when the username is unknown so both login failures cost the same.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("task-tracker-dummy-password"), bcryptCost)
	if err != nil {
		// Only a failing entropy source gets here; a zero-value hash would skip the comparison.
		panic(fmt.Sprintf("services: failed to prepare dummy password hash: %v", err))
	}

	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// Register validates the input, enforces uniqueness and stores a new user.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if fullName == "" {
		missing = append(missing, "full_name")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is a signed token together with the user it was issued for.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Login verifies credentials and issues a token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}

	return &LoginResult{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      user,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
