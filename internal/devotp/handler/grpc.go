// Package handler implements the dev-only gRPC DevService (GetOTP).
package handler

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authv1 "account-auth/api/auth/v1"
	"account-auth/internal/devotp"
)

const devOTPNote = "DEV MODE ONLY"

// Server implements DevService. Only registered when dev OTP is enabled and not production.
type Server struct {
	authv1.UnimplementedDevServiceServer
	store devotp.Store
}

// NewServer returns a DevService server that reads OTPs from the given store.
func NewServer(store devotp.Store) *Server {
	return &Server{store: store}
}

// GetOTP returns the latest plain OTP mailed to email. Returns NotFound if missing or expired.
func (s *Server) GetOTP(ctx context.Context, req *authv1.GetOTPRequest) (*authv1.GetOTPResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}
	otp, ok, err := s.store.Get(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "devotp: store read failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	if !ok {
		return nil, status.Error(codes.NotFound, "OTP not found or expired")
	}
	return &authv1.GetOTPResponse{
		Otp:  otp,
		Note: devOTPNote,
	}, nil
}
