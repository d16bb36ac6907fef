package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// WelcomeEmailEnqueuer dispatches a welcome email off the request path.
type WelcomeEmailEnqueuer interface {
	EnqueueWelcomeEmail(email, firstName string) error
}

// AuthService handles registration, login and token issuance.
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	cartRepo repository.CartRepository
	enqueuer WelcomeEmailEnqueuer
}

// NewAuthService creates an auth service. enqueuer may be nil when the
// queue is disabled.
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, cartRepo repository.CartRepository, enqueuer WelcomeEmailEnqueuer) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		cartRepo: cartRepo,
		enqueuer: enqueuer,
	}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
	Profile   *models.Profile
}

// Register creates the user, empty profile and cart in one transaction,
// then enqueues a welcome email best-effort.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.Password != input.Password2 {
		return nil, ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        normalized,
		Username:     normalized,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		if err := userRepo.Create(user); err != nil {
			// A concurrent registration can win the race past the
			// lookup above; the unique index is the arbiter.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailExists
			}
			return err
		}

		profile := input.Profile
		if profile == nil {
			profile = &models.Profile{}
		}
		profile.UserID = user.ID
		if err := userRepo.CreateProfile(profile); err != nil {
			return err
		}

		return s.cartRepo.WithTx(tx).Create(&models.Cart{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueWelcomeEmail(user.Email, user.FirstName); err != nil {
			logger.Warnw("welcome_email_enqueue_failed", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// TokenPair is an access/refresh JWT pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims is the signed token payload.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"` // access / refresh
	jwt.RegisteredClaims
}

// Login verifies credentials and issues a token pair. All failure modes
// collapse into ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*TokenPair, *models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		logger.Warnw("login_timestamp_update_failed", "user_id", user.ID, "error", err)
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh validates a refresh token and issues a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.TokenType != "refresh" {
		return "", ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidToken
	}
	return s.signToken(user, "access", s.cfg.JWT.AccessExpireHours)
}

func (s *AuthService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, "access", s.cfg.JWT.AccessExpireHours)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", s.cfg.JWT.RefreshExpireHours)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType string, expireHours int) (string, error) {
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

// ParseToken validates a signed token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if parsed, ok := token.Claims.(*Claims); ok && token.Valid {
		return parsed, nil
	}
	return nil, ErrInvalidToken
}

// GetMe loads the current user.
func (s *AuthService) GetMe(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateMeInput carries the editable user fields.
type UpdateMeInput struct {
	FirstName *string
	LastName  *string
}

// UpdateMe updates the current user's editable fields.
func (s *AuthService) UpdateMe(userID uint, input UpdateMeInput) (*models.User, error) {
	user, err := s.GetMe(userID)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile loads the user's profile, creating an empty one when it is
// missing.
func (s *AuthService) GetProfile(userID uint) (*models.Profile, error) {
	profile, err := s.userRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{UserID: userID}
		if err := s.userRepo.CreateProfile(profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	PhoneNumber *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
}

// UpdateProfile updates the user's profile, get-or-create semantics.
func (s *AuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Address != nil {
		profile.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		profile.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		profile.State = strings.TrimSpace(*input.State)
	}
	if input.Country != nil {
		profile.Country = strings.TrimSpace(*input.Country)
	}
	if input.PostalCode != nil {
		profile.PostalCode = strings.TrimSpace(*input.PostalCode)
	}
	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}
