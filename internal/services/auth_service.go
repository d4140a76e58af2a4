package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loadlab/internal/apperrors"
	"loadlab/internal/metrics"
	"loadlab/internal/models"
	"loadlab/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the identity carried by a session token.
type Claims struct {
	UserID   string
	Username string
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	hashCost   int
	now        func() time.Time
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, opts ...Option) *AuthService {
	s := applyOptions(opts)
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: s.tokenTTL,
		hashCost:   s.hashCost,
		now:        s.now,
		logger:     s.logger,
	}
}

// Register creates a user with a hashed password and signs them in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.Validation("Missing required fields")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.Validation("Password must be at most 72 bytes")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Profile:   models.Profile{Name: username},
		CreatedAt: s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to register user: %w", err))
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	metrics.UsersRegistered.Inc()
	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login authenticates by username or email and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	if login == "" || password == "" {
		return nil, apperrors.Validation("Username and password required")
	}

	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to look up user: %w", err))
	}

	// Compare the provided password with the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// IssueToken signs an HS256 token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning its claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, hasExp := mapClaims["exp"]; !hasExp {
		return nil, errors.New("invalid token: missing exp")
	}
	userID, _ := mapClaims["user_id"].(string)
	username, _ := mapClaims["username"].(string)
	if userID == "" {
		return nil, errors.New("invalid token: missing user_id")
	}
	return &Claims{UserID: userID, Username: username}, nil
}
