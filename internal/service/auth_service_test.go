package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingEnqueuer struct {
	mu     sync.Mutex
	emails []string
	fail   error
}

func (r *recordingEnqueuer) EnqueueWelcomeEmail(email, firstName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.emails = append(r.emails, email)
	return nil
}

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessExpireHours = 1
	cfg.JWT.RefreshExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 8
	cfg.Security.PasswordPolicy.RejectNumericOnly = true
	cfg.Security.PasswordPolicy.RejectCommon = true
	return cfg
}

func newAuthServiceForTest(db *gorm.DB, enqueuer WelcomeEmailEnqueuer) *AuthService {
	return NewAuthService(testAuthConfig(), repository.NewUserRepository(db), repository.NewCartRepository(db), enqueuer)
}

func TestRegisterCreatesUserProfileAndCart(t *testing.T) {
	db := setupTestDB(t, "auth_register")
	enqueuer := &recordingEnqueuer{}
	svc := newAuthServiceForTest(db, enqueuer)

	user, err := svc.Register(RegisterInput{
		Email:     "Anna@Example.com",
		Password:  "strongpass99",
		Password2: "strongpass99",
		FirstName: "Anna",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if user.Email != "anna@example.com" {
		t.Fatalf("email want anna@example.com got %s", user.Email)
	}
	if user.Username != user.Email {
		t.Fatalf("username want %s got %s", user.Email, user.Username)
	}
	if user.PasswordHash == "strongpass99" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("strongpass99")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	var cart models.Cart
	if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		t.Fatalf("cart not created: %v", err)
	}
	if len(enqueuer.emails) != 1 || enqueuer.emails[0] != user.Email {
		t.Fatalf("welcome email not enqueued: %v", enqueuer.emails)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t, "auth_duplicate")
	svc := newAuthServiceForTest(db, nil)

	input := RegisterInput{Email: "dup@example.com", Password: "strongpass99", Password2: "strongpass99"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t, "auth_validation")
	svc := newAuthServiceForTest(db, nil)

	if _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "strongpass99", Password2: "strongpass99"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "strongpass99", Password2: "different99"}); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("want ErrPasswordMismatch got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "short", Password2: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
}

func TestRegisterSurvivesEnqueueFailure(t *testing.T) {
	db := setupTestDB(t, "auth_enqueue_fail")
	enqueuer := &recordingEnqueuer{fail: errors.New("redis down")}
	svc := newAuthServiceForTest(db, enqueuer)

	user, err := svc.Register(RegisterInput{Email: "queue@example.com", Password: "strongpass99", Password2: "strongpass99"})
	if err != nil {
		t.Fatalf("register failed despite queue error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user not persisted")
	}
}

func TestLoginCollapsesFailures(t *testing.T) {
	db := setupTestDB(t, "auth_login")
	svc := newAuthServiceForTest(db, nil)

	if _, err := svc.Register(RegisterInput{Email: "login@example.com", Password: "strongpass99", Password2: "strongpass99"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// unknown user and wrong password are indistinguishable
	if _, _, err := svc.Login("missing@example.com", "strongpass99"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, err := svc.Login("login@example.com", "wrongpass99"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}

	pair, user, err := svc.Login("login@example.com", "strongpass99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("token pair incomplete")
	}
	if user.LastLoginAt == nil {
		t.Fatal("last login not recorded")
	}
}

func TestTokenRoundTripAndRefresh(t *testing.T) {
	db := setupTestDB(t, "auth_tokens")
	svc := newAuthServiceForTest(db, nil)

	if _, err := svc.Register(RegisterInput{Email: "jwt@example.com", Password: "strongpass99", Password2: "strongpass99"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, user, err := svc.Login("jwt@example.com", "strongpass99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := svc.ParseToken(pair.Access)
	if err != nil {
		t.Fatalf("parse access failed: %v", err)
	}
	if claims.UserID != user.ID || claims.TokenType != "access" {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	claims, err = svc.ParseToken(pair.Refresh)
	if err != nil {
		t.Fatalf("parse refresh failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Fatalf("token type want refresh got %s", claims.TokenType)
	}

	access, err := svc.Refresh(pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	claims, err = svc.ParseToken(access)
	if err != nil {
		t.Fatalf("parse refreshed access failed: %v", err)
	}
	if claims.TokenType != "access" {
		t.Fatalf("refreshed token type want access got %s", claims.TokenType)
	}

	// an access token cannot be used as a refresh token
	if _, err := svc.Refresh(pair.Access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken got %v", err)
	}
	if _, err := svc.Refresh("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken got %v", err)
	}
}

func TestProfileGetOrCreate(t *testing.T) {
	db := setupTestDB(t, "auth_profile")
	svc := newAuthServiceForTest(db, nil)

	// user created outside registration has no profile row yet
	user := &models.User{Email: "bare@example.com", Username: "bare@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	profile, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.UserID != user.ID {
		t.Fatalf("profile user want %d got %d", user.ID, profile.UserID)
	}

	city := "Dubai"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{City: &city})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.City != "Dubai" {
		t.Fatalf("city want Dubai got %s", updated.City)
	}

	var count int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("profiles want 1 got %d", count)
	}
}

// blindUserRepo never sees existing users on lookup, standing in for a
// concurrent registration that slips past the duplicate check.
type blindUserRepo struct {
	repository.UserRepository
}

func (r *blindUserRepo) GetByEmail(email string) (*models.User, error) {
	return nil, nil
}

func TestRegisterDuplicateRaceSurfacesEmailExists(t *testing.T) {
	db := setupTestDB(t, "auth_register_race")
	repo := &blindUserRepo{UserRepository: repository.NewUserRepository(db)}
	svc := NewAuthService(testAuthConfig(), repo, repository.NewCartRepository(db), &recordingEnqueuer{})

	input := RegisterInput{
		Email:     "race@example.com",
		Password:  "strongpass99",
		Password2: "strongpass99",
	}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// the unique index fires inside the transaction and must read as a
	// field error, not an internal one
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "race@example.com").Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("user count want 1 got %d", count)
	}
}
