// Package service implements the account authentication flows: signup, email
// verification, login, refresh token rotation, logout and password recovery.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"account-auth/internal/account/domain"
	"account-auth/internal/notify"
	"account-auth/internal/otp"
	"account-auth/internal/security"
	"account-auth/internal/telemetry"
)

// Sentinel errors for auth service; handler maps them to gRPC codes.
var (
	ErrDuplicateAccount   = errors.New("Email already exists")
	ErrNotFound           = errors.New("User not found")
	ErrNoPendingOTP       = errors.New("No OTP found")
	ErrInvalidOTP         = errors.New("Invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrEmailNotVerified   = errors.New("Email not verified")
	ErrAccessDenied       = errors.New("Access denied")
	ErrIncorrectPassword  = errors.New("Current password incorrect")
	ErrInvalidRequest     = errors.New("Invalid request")
)

// Result messages returned to the client.
const (
	MsgSignup           = "Signup successful. OTP sent to email."
	MsgAlreadyVerified  = "Email already verified"
	MsgEmailVerified    = "Email verified successfully"
	MsgLogin            = "Login successful"
	MsgLoggedOut        = "Logged out"
	MsgForgotPassword   = "If email exists, OTP sent."
	MsgPasswordReset    = "Password reset successful"
	MsgPasswordChanged  = "Password changed successfully"
	minPasswordLength   = 6
	telemetrySourceAuth = "auth"
)

// AccountRepo is the account repository needed by the auth service.
type AccountRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, id string, p domain.Patch) (*domain.Account, error)
}

// SignupInput is the payload for Signup. UserName and Phone are optional.
type SignupInput struct {
	Email    string
	Password string
	UserName string
	Phone    string
}

// SignupResult holds the id of the new account.
type SignupResult struct {
	Message   string
	AccountID string
}

// TokenPair is a freshly minted access and refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// LoginResult holds the authenticated account and its new token pair.
type LoginResult struct {
	Message string
	Account *domain.Account
	Tokens  TokenPair
}

// OTPPolicy controls generated code length and lifetime.
type OTPPolicy struct {
	Length     int
	TTLMinutes int
}

// Option configures an AuthService.
type Option func(*AuthService)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *AuthService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEvents sets the emitter for account lifecycle events. Nil disables events.
func WithEvents(e telemetry.EventEmitter) Option {
	return func(s *AuthService) { s.events = e }
}

// WithClock sets the time source for OTP expiry checks and generation.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) {
		s.now = now
		s.otp = s.otp.WithClock(now)
	}
}

// WithOTPPolicy overrides the default code length and lifetime.
func WithOTPPolicy(p OTPPolicy) Option {
	return func(s *AuthService) { s.otpPolicy = p }
}

// AuthService orchestrates the account flows. It holds no per-request state;
// each operation reads the account once and writes it back once.
type AuthService struct {
	repo      AccountRepo
	hasher    *security.Hasher
	tokens    *security.TokenIssuer
	otp       *otp.Generator
	notifier  notify.Notifier
	events    telemetry.EventEmitter
	logger    *slog.Logger
	otpPolicy OTPPolicy
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(
	repo AccountRepo,
	hasher *security.Hasher,
	tokens *security.TokenIssuer,
	gen *otp.Generator,
	notifier notify.Notifier,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		otp:       gen,
		notifier:  notifier,
		logger:    slog.Default(),
		otpPolicy: OTPPolicy{Length: otp.DefaultLength, TTLMinutes: otp.DefaultTTLMinutes},
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates an unverified USER account and mails it a verification code.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLength {
		return nil, ErrInvalidRequest
	}
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	pair, err := s.newOTPPair()
	if err != nil {
		return nil, err
	}
	now := s.now()
	account := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		UserName:     strings.TrimSpace(in.UserName),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hashed,
		Role:         domain.RoleUser,
		EmailOTP:     pair,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	s.sendOTP(ctx, email, notify.SubjectVerifyEmail, pair.Code)
	s.emit(ctx, telemetry.EventSignup, account.ID, nil)
	return &SignupResult{Message: MsgSignup, AccountID: account.ID}, nil
}

// VerifyEmail marks the account verified when otpCode matches the pending
// verification code. An expired code is cleared and reported as ErrOTPExpired.
func (s *AuthService) VerifyEmail(ctx context.Context, email, otpCode string) (string, error) {
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrNotFound
	}
	if account.EmailVerified {
		return MsgAlreadyVerified, nil
	}
	if err := s.checkOTP(ctx, account.ID, account.EmailOTP, otpCode, domain.Patch{ClearEmailOTP: true}); err != nil {
		return "", err
	}
	verified := true
	if _, err := s.repo.Update(ctx, account.ID, domain.Patch{EmailVerified: &verified, ClearEmailOTP: true}); err != nil {
		return "", mapUpdateErr(err, ErrNotFound)
	}
	s.emit(ctx, telemetry.EventEmailVerified, account.ID, nil)
	return MsgEmailVerified, nil
}

// Login checks the password, then the verified flag, and starts a new session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		s.hasher.Verify(password, s.dummyDigest())
		s.emit(ctx, telemetry.EventLoginFailed, "", map[string]string{"reason": "unknown_email"})
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		s.emit(ctx, telemetry.EventLoginFailed, account.ID, map[string]string{"reason": "bad_password"})
		return nil, ErrInvalidCredentials
	}
	if !account.EmailVerified {
		s.emit(ctx, telemetry.EventLoginFailed, account.ID, map[string]string{"reason": "unverified"})
		return nil, ErrEmailNotVerified
	}
	pair, digest, err := s.issueTokens(account)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, account.ID, domain.Patch{RefreshTokenHash: &digest})
	if err != nil {
		return nil, mapUpdateErr(err, ErrInvalidCredentials)
	}
	s.emit(ctx, telemetry.EventLoginSucceeded, account.ID, nil)
	return &LoginResult{Message: MsgLogin, Account: updated, Tokens: *pair}, nil
}

// RefreshTokens rotates the session: the presented refresh token must be a valid
// token for accountID and match the stored digest. The stored digest is swapped
// only if no concurrent rotation replaced it first.
func (s *AuthService) RefreshTokens(ctx context.Context, accountID, refreshToken string) (*TokenPair, error) {
	if accountID == "" || refreshToken == "" {
		return nil, ErrAccessDenied
	}
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.HasActiveSession() {
		s.emit(ctx, telemetry.EventRefreshRejected, accountID, map[string]string{"reason": "no_session"})
		return nil, ErrAccessDenied
	}
	id, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil || id.AccountID != account.ID {
		s.emit(ctx, telemetry.EventRefreshRejected, accountID, map[string]string{"reason": "invalid_token"})
		return nil, ErrAccessDenied
	}
	if !s.hasher.VerifyRefreshToken(refreshToken, account.RefreshTokenHash) {
		s.emit(ctx, telemetry.EventRefreshRejected, accountID, map[string]string{"reason": "digest_mismatch"})
		return nil, ErrAccessDenied
	}
	pair, digest, err := s.issueTokens(account)
	if err != nil {
		return nil, err
	}
	expected := account.RefreshTokenHash
	_, err = s.repo.Update(ctx, account.ID, domain.Patch{RefreshTokenHash: &digest, ExpectRefreshTokenHash: &expected})
	if err != nil {
		if errors.Is(err, domain.ErrStaleWrite) {
			s.emit(ctx, telemetry.EventRefreshRejected, accountID, map[string]string{"reason": "concurrent_rotation"})
		}
		return nil, mapUpdateErr(err, ErrAccessDenied)
	}
	s.emit(ctx, telemetry.EventTokensRefreshed, account.ID, nil)
	return pair, nil
}

// Logout ends the account's session. It succeeds whether or not a session was active.
func (s *AuthService) Logout(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", ErrNotFound
	}
	cleared := ""
	if _, err := s.repo.Update(ctx, accountID, domain.Patch{RefreshTokenHash: &cleared}); err != nil {
		return "", mapUpdateErr(err, ErrNotFound)
	}
	s.emit(ctx, telemetry.EventLogout, accountID, nil)
	return MsgLoggedOut, nil
}

// ForgotPassword issues a reset code when the email is registered. The result
// is the same either way so callers cannot learn which accounts exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return MsgForgotPassword, nil
	}
	pair, err := s.newOTPPair()
	if err != nil {
		return "", err
	}
	if _, err := s.repo.Update(ctx, account.ID, domain.Patch{ResetOTP: pair}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return MsgForgotPassword, nil
		}
		return "", err
	}
	s.sendOTP(ctx, account.Email, notify.SubjectResetPassword, pair.Code)
	s.emit(ctx, telemetry.EventPasswordResetRequested, account.ID, nil)
	return MsgForgotPassword, nil
}

// ResetPassword sets a new password when otpCode matches the pending reset code.
// Any active session ends.
func (s *AuthService) ResetPassword(ctx context.Context, email, otpCode, newPassword string) (string, error) {
	if len(newPassword) < minPasswordLength {
		return "", ErrInvalidRequest
	}
	account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrInvalidRequest
	}
	if err := s.checkOTP(ctx, account.ID, account.ResetOTP, otpCode, domain.Patch{ClearResetOTP: true}); err != nil {
		if errors.Is(err, ErrNoPendingOTP) {
			return "", ErrInvalidRequest
		}
		return "", err
	}
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", err
	}
	cleared := ""
	patch := domain.Patch{PasswordHash: &hashed, ClearResetOTP: true, RefreshTokenHash: &cleared}
	if _, err := s.repo.Update(ctx, account.ID, patch); err != nil {
		return "", mapUpdateErr(err, ErrInvalidRequest)
	}
	s.emit(ctx, telemetry.EventPasswordReset, account.ID, nil)
	return MsgPasswordReset, nil
}

// ChangePassword replaces the password of an authenticated account after
// checking the current one. Any active session ends.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) (string, error) {
	if len(newPassword) < minPasswordLength {
		return "", ErrInvalidRequest
	}
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrAccessDenied
	}
	if !s.hasher.Verify(currentPassword, account.PasswordHash) {
		return "", ErrIncorrectPassword
	}
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", err
	}
	cleared := ""
	if _, err := s.repo.Update(ctx, account.ID, domain.Patch{PasswordHash: &hashed, RefreshTokenHash: &cleared}); err != nil {
		return "", mapUpdateErr(err, ErrAccessDenied)
	}
	s.emit(ctx, telemetry.EventPasswordChanged, account.ID, nil)
	return MsgPasswordChanged, nil
}

// checkOTP validates code against pair: it must exist, match, and not be
// expired, in that order. A mismatch leaves the pair in place; an expired pair
// is cleared with clear before ErrOTPExpired is returned.
func (s *AuthService) checkOTP(ctx context.Context, accountID string, pair *domain.OTPPair, code string, clear domain.Patch) error {
	if pair == nil {
		return ErrNoPendingOTP
	}
	if !pair.Matches(code) {
		return ErrInvalidOTP
	}
	if pair.Expired(s.now()) {
		if _, err := s.repo.Update(ctx, accountID, clear); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return ErrOTPExpired
	}
	return nil
}

func (s *AuthService) newOTPPair() (*domain.OTPPair, error) {
	code, err := s.otp.Generate(s.otpPolicy.Length)
	if err != nil {
		return nil, err
	}
	return &domain.OTPPair{Code: code, ExpiresAt: s.otp.Expiry(s.otpPolicy.TTLMinutes)}, nil
}

// issueTokens mints an access/refresh pair for a and returns the digest to store.
func (s *AuthService) issueTokens(a *domain.Account) (*TokenPair, string, error) {
	id := security.Identity{AccountID: a.ID, Role: string(a.Role), Email: a.Email}
	access, accessExp, err := s.tokens.SignAccess(id)
	if err != nil {
		return nil, "", err
	}
	refresh, refreshExp, err := s.tokens.SignRefresh(id)
	if err != nil {
		return nil, "", err
	}
	digest, err := s.hasher.HashRefreshToken(refresh)
	if err != nil {
		return nil, "", err
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, digest, nil
}

// sendOTP hands the code to the notifier. Delivery failures do not undo the
// state change that produced the code.
func (s *AuthService) sendOTP(ctx context.Context, to, subject, code string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendOTPEmail(ctx, to, subject, code); err != nil {
		s.logger.WarnContext(ctx, "auth: otp email not sent", "subject", subject, "error", err)
	}
}

// dummyDigest is compared against on unknown emails so that login takes
// the same time whether or not the account exists.
func (s *AuthService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.New().String())
		if err != nil {
			s.logger.Warn("auth: dummy digest", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *AuthService) emit(ctx context.Context, eventType, accountID string, attrs map[string]string) {
	if s.events == nil {
		return
	}
	telemetry.EmitAsync(s.events, ctx, &telemetry.Event{
		Type:       eventType,
		AccountID:  accountID,
		Source:     telemetrySourceAuth,
		Attributes: attrs,
		CreatedAt:  s.now(),
	})
}

// mapUpdateErr turns a vanished or concurrently changed account into the
// operation's own sentinel.
func mapUpdateErr(err, sentinel error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStaleWrite) {
		return sentinel
	}
	return err
}

// normalizeEmail drops surrounding whitespace. Emails are otherwise stored and
// matched exactly as given.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
