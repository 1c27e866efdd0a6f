package authv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DevService_ServiceName           = "accountauth.v1.DevService"
	DevService_GetOTP_FullMethodName = "/accountauth.v1.DevService/GetOTP"
)

// DevServiceServer is the server API for DevService. It is only registered in dev OTP mode.
type DevServiceServer interface {
	GetOTP(context.Context, *GetOTPRequest) (*GetOTPResponse, error)
}

type UnimplementedDevServiceServer struct{}

func (UnimplementedDevServiceServer) GetOTP(context.Context, *GetOTPRequest) (*GetOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOTP not implemented")
}

func RegisterDevServiceServer(s grpc.ServiceRegistrar, srv DevServiceServer) {
	s.RegisterService(&DevService_ServiceDesc, srv)
}

var DevService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DevService_ServiceName,
	HandlerType: (*DevServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetOTP",
			Handler: unaryHandler(DevService_GetOTP_FullMethodName, func(srv any, ctx context.Context, in *GetOTPRequest) (*GetOTPResponse, error) {
				return srv.(DevServiceServer).GetOTP(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accountauth/v1/dev",
}

type DevServiceClient interface {
	GetOTP(ctx context.Context, in *GetOTPRequest, opts ...grpc.CallOption) (*GetOTPResponse, error)
}

type devServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDevServiceClient(cc grpc.ClientConnInterface) DevServiceClient {
	return &devServiceClient{cc}
}

func (c *devServiceClient) GetOTP(ctx context.Context, in *GetOTPRequest, opts ...grpc.CallOption) (*GetOTPResponse, error) {
	return invoke[GetOTPResponse](ctx, c.cc, DevService_GetOTP_FullMethodName, in, opts)
}
