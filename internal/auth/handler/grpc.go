package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authv1 "account-auth/api/auth/v1"
	"account-auth/internal/account/domain"
	"account-auth/internal/auth/service"
	"account-auth/internal/server/interceptors"
)

// AuthServer implements AuthService: signup, email verification, login, token
// refresh, logout and password recovery.
type AuthServer struct {
	authv1.UnimplementedAuthServiceServer
	auth     *service.AuthService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthServer returns a new Auth gRPC server. logger may be nil.
func NewAuthServer(auth *service.AuthService, logger *slog.Logger) *AuthServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServer{auth: auth, validate: validator.New(), logger: logger}
}

func (s *AuthServer) Signup(ctx context.Context, req *authv1.SignupRequest) (*authv1.SignupResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	res, err := s.auth.Signup(ctx, service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		UserName: req.UserName,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.SignupResponse{Message: res.Message, AccountID: res.AccountID}, nil
}

func (s *AuthServer) VerifyEmail(ctx context.Context, req *authv1.VerifyEmailRequest) (*authv1.MessageResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	msg, err := s.auth.VerifyEmail(ctx, req.Email, req.Otp)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.MessageResponse{Message: msg}, nil
}

func (s *AuthServer) Login(ctx context.Context, req *authv1.LoginRequest) (*authv1.LoginResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	res, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.LoginResponse{
		Message: res.Message,
		Account: accountToProto(res.Account),
		Tokens:  tokensToProto(res.Tokens),
	}, nil
}

func (s *AuthServer) Refresh(ctx context.Context, req *authv1.RefreshRequest) (*authv1.RefreshResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	pair, err := s.auth.RefreshTokens(ctx, req.AccountID, req.RefreshToken)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.RefreshResponse{Tokens: tokensToProto(*pair)}, nil
}

// Logout ends the caller's session. The account comes from the bearer token.
func (s *AuthServer) Logout(ctx context.Context, _ *authv1.LogoutRequest) (*authv1.MessageResponse, error) {
	accountID, ok := interceptors.GetAccountID(ctx)
	if !ok || accountID == "" {
		return nil, status.Error(codes.Unauthenticated, service.ErrAccessDenied.Error())
	}
	msg, err := s.auth.Logout(ctx, accountID)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.MessageResponse{Message: msg}, nil
}

func (s *AuthServer) ForgotPassword(ctx context.Context, req *authv1.ForgotPasswordRequest) (*authv1.MessageResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	msg, err := s.auth.ForgotPassword(ctx, req.Email)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.MessageResponse{Message: msg}, nil
}

func (s *AuthServer) ResetPassword(ctx context.Context, req *authv1.ResetPasswordRequest) (*authv1.MessageResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	msg, err := s.auth.ResetPassword(ctx, req.Email, req.Otp, req.NewPassword)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.MessageResponse{Message: msg}, nil
}

// ChangePassword changes the caller's password. The account comes from the bearer token.
func (s *AuthServer) ChangePassword(ctx context.Context, req *authv1.ChangePasswordRequest) (*authv1.MessageResponse, error) {
	accountID, ok := interceptors.GetAccountID(ctx)
	if !ok || accountID == "" {
		return nil, status.Error(codes.Unauthenticated, service.ErrAccessDenied.Error())
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	msg, err := s.auth.ChangePassword(ctx, accountID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return nil, s.authErr(ctx, err)
	}
	return &authv1.MessageResponse{Message: msg}, nil
}

// AdminPing is reachable only by ADMIN callers; the authorization interceptor enforces it.
func (s *AuthServer) AdminPing(context.Context, *authv1.AdminPingRequest) (*authv1.AdminPingResponse, error) {
	return &authv1.AdminPingResponse{Ok: true}, nil
}

// check validates req against its struct tags and returns InvalidArgument naming the first bad field.
// A nil request pointer fails validation as InvalidValidationError.
func (s *AuthServer) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return validationErr(err)
	}
	return nil
}

func validationErr(err error) error {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return status.Error(codes.InvalidArgument, "invalid request")
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "email":
		msg = field + " must be a valid email"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "numeric":
		msg = field + " must be numeric"
	default:
		msg = field + " is invalid"
	}
	return status.Error(codes.InvalidArgument, msg)
}

// authErr maps service errors to gRPC status codes. Unknown errors are logged
// and surface as Internal with a generic message.
func (s *AuthServer) authErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrNoPendingOTP),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrIncorrectPassword):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccessDenied):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrEmailNotVerified):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		s.logger.ErrorContext(ctx, "auth: internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func accountToProto(a *domain.Account) authv1.Account {
	if a == nil {
		return authv1.Account{}
	}
	return authv1.Account{ID: a.ID, Email: a.Email, Name: a.UserName, Role: string(a.Role)}
}

func tokensToProto(p service.TokenPair) authv1.Tokens {
	return authv1.Tokens{
		AccessToken:      p.AccessToken,
		RefreshToken:     p.RefreshToken,
		AccessExpiresAt:  p.AccessExpiresAt,
		RefreshExpiresAt: p.RefreshExpiresAt,
	}
}
