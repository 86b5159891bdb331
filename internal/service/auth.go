package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/auth"
	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/normalize"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
	"github.com/quotevibe/quotevibe-server/internal/validation"
)

// validate is the shared request validator.
var validate = validation.New()

// RegisterRequest contains the data for creating an account.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=6,max=128"`
	FullName    string `json:"full_name" validate:"max=100"`
	Country     string `json:"country" validate:"max=60"`
	CountryCode string `json:"country_code" validate:"omitempty,len=2,alpha"`
	Phone       string `json:"phone" validate:"max=30"`
	Language    string `json:"language" validate:"omitempty,min=2,max=10"`
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int                `json:"expires_in"` // seconds
	User        domain.UserProfile `json:"user"`
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	db           *sqlite.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(db *sqlite.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		db:           db,
		tokenService: tokenService,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates a user account and signs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	language := normalize.LanguageCode(req.Language)
	if language == "" {
		language = "en"
	}

	user, err := s.createUser(ctx, &domain.User{
		Username:    req.Username,
		Email:       strings.TrimSpace(req.Email),
		FullName:    strings.TrimSpace(req.FullName),
		Country:     strings.TrimSpace(req.Country),
		CountryCode: strings.ToUpper(req.CountryCode),
		Phone:       strings.TrimSpace(req.Phone),
		Language:    language,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return s.issue(user)
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a wrong password so emails cannot be probed.
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issue(user)
}

// VerifyAccessToken validates a token and loads its user.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	user, err := s.db.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, domainerrors.Unauthorized("user not found")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	return user, claims, nil
}

// EnsureAdmin creates the bootstrap admin account on first run. An existing
// user with the configured username is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	_, err := s.db.GetUserByUsername(ctx, cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	admin, err := s.createUser(ctx, &domain.User{
		Username: cfg.Username,
		Email:    cfg.Email,
		FullName: "Admin",
		Language: "en",
		IsAdmin:  true,
	}, cfg.Password)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("admin user created", "user_id", admin.ID, "username", admin.Username)
	return nil
}

func (s *AuthService) createUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	user.ID = userID
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.db.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email or username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenService.AccessTokenDuration().Seconds()),
		User:        user.Profile(),
	}, nil
}
