package authv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	AuthService_ServiceName                   = "accountauth.v1.AuthService"
	AuthService_Signup_FullMethodName         = "/accountauth.v1.AuthService/Signup"
	AuthService_VerifyEmail_FullMethodName    = "/accountauth.v1.AuthService/VerifyEmail"
	AuthService_Login_FullMethodName          = "/accountauth.v1.AuthService/Login"
	AuthService_Refresh_FullMethodName        = "/accountauth.v1.AuthService/Refresh"
	AuthService_Logout_FullMethodName         = "/accountauth.v1.AuthService/Logout"
	AuthService_ForgotPassword_FullMethodName = "/accountauth.v1.AuthService/ForgotPassword"
	AuthService_ResetPassword_FullMethodName  = "/accountauth.v1.AuthService/ResetPassword"
	AuthService_ChangePassword_FullMethodName = "/accountauth.v1.AuthService/ChangePassword"
	AuthService_AdminPing_FullMethodName      = "/accountauth.v1.AuthService/AdminPing"
)

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	VerifyEmail(context.Context, *VerifyEmailRequest) (*MessageResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error)
	Logout(context.Context, *LogoutRequest) (*MessageResponse, error)
	ForgotPassword(context.Context, *ForgotPasswordRequest) (*MessageResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*MessageResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*MessageResponse, error)
	AdminPing(context.Context, *AdminPingRequest) (*AdminPingResponse, error)
}

// UnimplementedAuthServiceServer returns codes.Unimplemented for every method.
// Embed it to stay forward compatible.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedAuthServiceServer) VerifyEmail(context.Context, *VerifyEmailRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyEmail not implemented")
}
func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAuthServiceServer) Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedAuthServiceServer) Logout(context.Context, *LogoutRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedAuthServiceServer) ForgotPassword(context.Context, *ForgotPasswordRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ForgotPassword not implemented")
}
func (UnimplementedAuthServiceServer) ResetPassword(context.Context, *ResetPasswordRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetPassword not implemented")
}
func (UnimplementedAuthServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedAuthServiceServer) AdminPing(context.Context, *AdminPingRequest) (*AdminPingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdminPing not implemented")
}

// RegisterAuthServiceServer registers srv on s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

// AuthService_ServiceDesc is the grpc.ServiceDesc for AuthService.
var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthService_ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Signup",
			Handler: unaryHandler(AuthService_Signup_FullMethodName, func(srv any, ctx context.Context, in *SignupRequest) (*SignupResponse, error) {
				return srv.(AuthServiceServer).Signup(ctx, in)
			}),
		},
		{
			MethodName: "VerifyEmail",
			Handler: unaryHandler(AuthService_VerifyEmail_FullMethodName, func(srv any, ctx context.Context, in *VerifyEmailRequest) (*MessageResponse, error) {
				return srv.(AuthServiceServer).VerifyEmail(ctx, in)
			}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(AuthService_Login_FullMethodName, func(srv any, ctx context.Context, in *LoginRequest) (*LoginResponse, error) {
				return srv.(AuthServiceServer).Login(ctx, in)
			}),
		},
		{
			MethodName: "Refresh",
			Handler: unaryHandler(AuthService_Refresh_FullMethodName, func(srv any, ctx context.Context, in *RefreshRequest) (*RefreshResponse, error) {
				return srv.(AuthServiceServer).Refresh(ctx, in)
			}),
		},
		{
			MethodName: "Logout",
			Handler: unaryHandler(AuthService_Logout_FullMethodName, func(srv any, ctx context.Context, in *LogoutRequest) (*MessageResponse, error) {
				return srv.(AuthServiceServer).Logout(ctx, in)
			}),
		},
		{
			MethodName: "ForgotPassword",
			Handler: unaryHandler(AuthService_ForgotPassword_FullMethodName, func(srv any, ctx context.Context, in *ForgotPasswordRequest) (*MessageResponse, error) {
				return srv.(AuthServiceServer).ForgotPassword(ctx, in)
			}),
		},
		{
			MethodName: "ResetPassword",
			Handler: unaryHandler(AuthService_ResetPassword_FullMethodName, func(srv any, ctx context.Context, in *ResetPasswordRequest) (*MessageResponse, error) {
				return srv.(AuthServiceServer).ResetPassword(ctx, in)
			}),
		},
		{
			MethodName: "ChangePassword",
			Handler: unaryHandler(AuthService_ChangePassword_FullMethodName, func(srv any, ctx context.Context, in *ChangePasswordRequest) (*MessageResponse, error) {
				return srv.(AuthServiceServer).ChangePassword(ctx, in)
			}),
		},
		{
			MethodName: "AdminPing",
			Handler: unaryHandler(AuthService_AdminPing_FullMethodName, func(srv any, ctx context.Context, in *AdminPingRequest) (*AdminPingResponse, error) {
				return srv.(AuthServiceServer).AdminPing(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accountauth/v1/auth",
}

// AuthServiceClient is the client API for AuthService. Calls use the JSON codec.
type AuthServiceClient interface {
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	VerifyEmail(ctx context.Context, in *VerifyEmailRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	ForgotPassword(ctx context.Context, in *ForgotPasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	AdminPing(ctx context.Context, in *AdminPingRequest, opts ...grpc.CallOption) (*AdminPingResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func (c *authServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, AuthService_Signup_FullMethodName, in, opts)
}

func (c *authServiceClient) VerifyEmail(ctx context.Context, in *VerifyEmailRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthService_VerifyEmail_FullMethodName, in, opts)
}

func (c *authServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, AuthService_Login_FullMethodName, in, opts)
}

func (c *authServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*RefreshResponse, error) {
	return invoke[RefreshResponse](ctx, c.cc, AuthService_Refresh_FullMethodName, in, opts)
}

func (c *authServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthService_Logout_FullMethodName, in, opts)
}

func (c *authServiceClient) ForgotPassword(ctx context.Context, in *ForgotPasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthService_ForgotPassword_FullMethodName, in, opts)
}

func (c *authServiceClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthService_ResetPassword_FullMethodName, in, opts)
}

func (c *authServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthService_ChangePassword_FullMethodName, in, opts)
}

func (c *authServiceClient) AdminPing(ctx context.Context, in *AdminPingRequest, opts ...grpc.CallOption) (*AdminPingResponse, error) {
	return invoke[AdminPingResponse](ctx, c.cc, AuthService_AdminPing_FullMethodName, in, opts)
}
