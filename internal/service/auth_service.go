package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid phone or code")
	ErrAccountLocked        = errors.New("account temporarily locked after repeated failures")
	ErrAccountDeactivated   = errors.New("حساب کاربری شما غیرفعال شده است. با مربی خود تماس بگیرید")
	ErrSessionInvalid       = errors.New("session is missing or expired")
	ErrTokenGeneration      = errors.New("failed to generate session token")
)

// AuthService owns both identity tracks: trainer login (phone + code)
// and student login (phone only, gated by the student's active flag).
// Sessions are server-side rows; the cookie value handed to callers is
// a signed JWT envelope carrying the session token, so logout works by
// deleting the row.
type AuthService interface {
	TrainerLogin(ctx context.Context, phone, code string) (cookie string, trainer *domain.Trainer, err error)
	StudentLogin(ctx context.Context, phone string, rememberMe bool) (cookie string, student *domain.Student, expiry time.Time, err error)
	// ResolveCookie decides the request's identity exactly once. Every
	// failure mode maps to an anonymous identity at the middleware.
	ResolveCookie(ctx context.Context, cookie string) (domain.Identity, error)
	Logout(ctx context.Context, sessionToken string) error
}

// AuthConfig carries the knobs authService needs from configuration.
type AuthConfig struct {
	Secret           string
	SessionTTL       time.Duration
	RememberTTL      time.Duration
	TrainerCode      string
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

type authService struct {
	sessionRepo repository.SessionRepository
	studentRepo repository.StudentRepository
	tenants     TenantService
	cfg         AuthConfig
}

// NewAuthService creates a new instance of authService.
func NewAuthService(sessionRepo repository.SessionRepository, studentRepo repository.StudentRepository, tenants TenantService, cfg AuthConfig) AuthService {
	if cfg.Secret == "" {
		panic("session secret cannot be empty")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = 30 * 24 * time.Hour
	}
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	return &authService{
		sessionRepo: sessionRepo,
		studentRepo: studentRepo,
		tenants:     tenants,
		cfg:         cfg,
	}
}

// TrainerLogin verifies the phone+code pair, auto-provisions the tenant
// on first contact, and issues a session.
func (s *authService) TrainerLogin(ctx context.Context, phone, code string) (string, *domain.Trainer, error) {
	if phone == "" || code == "" {
		return "", nil, ErrAuthenticationFailed
	}

	if err := s.checkLockout(ctx, phone); err != nil {
		return "", nil, err
	}

	trainer, err := s.tenants.EnsureTrainerExists(ctx, phone)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(trainer.CodeHash), []byte(code)); err != nil {
		s.recordFailure(ctx, phone)
		return "", nil, ErrAuthenticationFailed
	}
	s.clearLockout(ctx, phone)

	session := &domain.AuthSession{
		Token:     uuid.NewString(),
		Role:      domain.IdentityTrainer,
		TrainerID: &trainer.ID,
		Phone:     phone,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	cookie, err := s.signCookie(session)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return cookie, trainer, nil
}

// StudentLogin authenticates a student by phone. A deactivated student
// is rejected with a distinct error so the panel can show the proper
// message instead of a generic auth failure.
func (s *authService) StudentLogin(ctx context.Context, phone string, rememberMe bool) (string, *domain.Student, time.Time, error) {
	if phone == "" {
		return "", nil, time.Time{}, ErrAuthenticationFailed
	}

	student, err := s.studentRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, time.Time{}, ErrAuthenticationFailed
		}
		return "", nil, time.Time{}, err
	}
	if !student.IsActive {
		return "", nil, time.Time{}, ErrAccountDeactivated
	}

	ttl := s.cfg.SessionTTL
	if rememberMe {
		ttl = s.cfg.RememberTTL
	}
	session := &domain.AuthSession{
		Token:      uuid.NewString(),
		Role:       domain.IdentityStudent,
		StudentID:  &student.ID,
		TrainerID:  &student.TrainerID,
		Phone:      phone,
		RememberMe: rememberMe,
		ExpiresAt:  time.Now().Add(ttl),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, time.Time{}, err
	}

	cookie, err := s.signCookie(session)
	if err != nil {
		return "", nil, time.Time{}, ErrTokenGeneration
	}
	return cookie, student, session.ExpiresAt, nil
}

// ResolveCookie verifies the cookie signature, loads the session row,
// and re-checks the student's active flag on every request so that
// deactivation takes effect immediately, not at next login.
func (s *authService) ResolveCookie(ctx context.Context, cookie string) (domain.Identity, error) {
	token, err := s.parseCookie(cookie)
	if err != nil {
		return domain.Identity{Kind: domain.IdentityAnonymous}, ErrSessionInvalid
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return domain.Identity{Kind: domain.IdentityAnonymous}, ErrSessionInvalid
	}
	if session.Expired(time.Now()) {
		// Best effort cleanup; an expired row is harmless either way.
		if err := s.sessionRepo.Delete(ctx, session.Token); err != nil {
			log.Printf("ERROR: failed to delete expired session: %v", err)
		}
		return domain.Identity{Kind: domain.IdentityAnonymous}, ErrSessionInvalid
	}

	identity := domain.Identity{
		Kind:         session.Role,
		Phone:        session.Phone,
		SessionToken: session.Token,
	}
	switch session.Role {
	case domain.IdentityTrainer:
		if session.TrainerID == nil {
			return domain.Identity{Kind: domain.IdentityAnonymous}, ErrSessionInvalid
		}
		identity.TrainerID = *session.TrainerID
	case domain.IdentityStudent:
		if session.StudentID == nil {
			return domain.Identity{Kind: domain.IdentityAnonymous}, ErrSessionInvalid
		}
		student, err := s.studentRepo.GetByID(ctx, *session.StudentID)
		if err != nil || !student.IsActive {
			return domain.Identity{Kind: domain.IdentityAnonymous}, ErrAccountDeactivated
		}
		identity.StudentID = student.ID
		identity.TrainerID = student.TrainerID
	default:
		return domain.Identity{Kind: domain.IdentityAnonymous}, ErrSessionInvalid
	}
	return identity, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	err := s.sessionRepo.Delete(ctx, sessionToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil // already gone, logout is idempotent
	}
	return err
}

// --- Lockout tracking ---

// Lockout state lives on a per-phone session row with the "login"
// role; such rows never authorize anything.
func lockoutToken(phone string) string { return "login_" + phone }

func (s *authService) checkLockout(ctx context.Context, phone string) error {
	state, err := s.sessionRepo.GetByToken(ctx, lockoutToken(phone))
	if err != nil {
		return nil // no failures recorded
	}
	if state.LockedUntil != nil && time.Now().Before(*state.LockedUntil) {
		return ErrAccountLocked
	}
	return nil
}

func (s *authService) recordFailure(ctx context.Context, phone string) {
	state, err := s.sessionRepo.GetByToken(ctx, lockoutToken(phone))
	if err != nil {
		state = &domain.AuthSession{
			Token:     lockoutToken(phone),
			Role:      "login",
			Phone:     phone,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
		if err := s.sessionRepo.Create(ctx, state); err != nil {
			log.Printf("ERROR: failed to create lockout state for %s: %v", phone, err)
			return
		}
	}
	state.FailedAttempts++
	if state.FailedAttempts >= s.cfg.MaxLoginAttempts {
		until := time.Now().Add(s.cfg.LockoutDuration)
		state.LockedUntil = &until
	}
	if err := s.sessionRepo.Save(ctx, state); err != nil {
		log.Printf("ERROR: failed to record login failure for %s: %v", phone, err)
	}
}

func (s *authService) clearLockout(ctx context.Context, phone string) {
	if err := s.sessionRepo.Delete(ctx, lockoutToken(phone)); err != nil &&
		!errors.Is(err, repository.ErrNotFound) {
		log.Printf("ERROR: failed to clear lockout state for %s: %v", phone, err)
	}
}

// --- Cookie envelope ---

// cookieClaims is the JWT payload inside the session cookie. Only the
// session token matters; everything else lives server-side.
type cookieClaims struct {
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *authService) signCookie(session *domain.AuthSession) (string, error) {
	claims := &cookieClaims{
		SessionToken: session.Token,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "trainer-app",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *authService) parseCookie(cookie string) (string, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid || claims.SessionToken == "" {
		return "", ErrSessionInvalid
	}
	return claims.SessionToken, nil
}
