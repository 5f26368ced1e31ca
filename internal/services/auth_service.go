package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"lumina-chat/internal/domain/user"
	"lumina-chat/internal/repository"
	lumina_errors "lumina-chat/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

type LoginInput struct {
	Email    string
	Username string
	Password string
}

type AuthResponse struct {
	User      user.PublicProfile
	Token     string
	ExpiresIn int64
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	// Fast-path duplicate check so the response can name the colliding
	// field. The unique indexes remain the authoritative defense; a
	// concurrent insert is caught again below.
	if err := s.ensureIdentityAvailable(ctx, in.Email, in.Username); err != nil {
		return AuthResponse{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, lumina_errors.ErrAlreadyExists) {
			return AuthResponse{}, s.resolveDuplicateField(ctx, in.Email)
		}
		return AuthResponse{}, err
	}

	token, expiresIn, err := s.tokens.Issue(newUser.ID)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		User:      newUser.Public(),
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if in.Password == "" || (in.Email == "" && in.Username == "") {
		return AuthResponse{}, lumina_errors.ErrInvalidInput
	}

	u, err := s.userRepo.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		if errors.Is(err, lumina_errors.ErrNotFound) {
			// Same error as a password mismatch so callers cannot
			// probe which accounts exist.
			return AuthResponse{}, lumina_errors.ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return AuthResponse{}, lumina_errors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.Issue(u.ID)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		User:      u.Public(),
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// CurrentUser loads the profile behind a verified token. The record may have
// been deleted after issuance, in which case this is a NotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (user.PublicProfile, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.PublicProfile{}, err
	}
	return u.Public(), nil
}

func (s *AuthService) ensureIdentityAvailable(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return lumina_errors.ErrEmailTaken
	} else if !errors.Is(err, lumina_errors.ErrNotFound) {
		return err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return lumina_errors.ErrUsernameTaken
	} else if !errors.Is(err, lumina_errors.ErrNotFound) {
		return err
	}

	return nil
}

// resolveDuplicateField maps a unique-index rejection back to the field that
// collided. Email takes precedence when both could match.
func (s *AuthService) resolveDuplicateField(ctx context.Context, email string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return lumina_errors.ErrEmailTaken
	}
	return lumina_errors.ErrUsernameTaken
}

func validateRegister(in RegisterInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Username == "" || in.Password == "" {
		return lumina_errors.ErrInvalidInput
	}
	if !emailRe.MatchString(in.Email) {
		return lumina_errors.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return lumina_errors.ErrInvalidInput
	}
	if len(in.Username) < 3 {
		return lumina_errors.ErrInvalidInput
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
