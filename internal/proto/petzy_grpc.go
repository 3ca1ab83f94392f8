package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "petzy.service.PetzyService"

const (
	PetzyService_Ping_FullMethodName                  = "/" + ServiceName + "/Ping"
	PetzyService_RegisterUser_FullMethodName          = "/" + ServiceName + "/RegisterUser"
	PetzyService_GetSalt_FullMethodName               = "/" + ServiceName + "/GetSalt"
	PetzyService_Login_FullMethodName                 = "/" + ServiceName + "/Login"
	PetzyService_RefreshToken_FullMethodName          = "/" + ServiceName + "/RefreshToken"
	PetzyService_GetDocument_FullMethodName           = "/" + ServiceName + "/GetDocument"
	PetzyService_CreateOrMergeDocument_FullMethodName = "/" + ServiceName + "/CreateOrMergeDocument"
	PetzyService_PartialUpdateDocument_FullMethodName = "/" + ServiceName + "/PartialUpdateDocument"
	PetzyService_ListCompanions_FullMethodName        = "/" + ServiceName + "/ListCompanions"
	PetzyService_ResolveModelURL_FullMethodName       = "/" + ServiceName + "/ResolveModelURL"
	PetzyService_Subscribe_FullMethodName             = "/" + ServiceName + "/Subscribe"
)

// PetzyServiceClient is the client API for PetzyService.
type PetzyServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error)
	CreateOrMergeDocument(ctx context.Context, in *CreateOrMergeDocumentRequest, opts ...grpc.CallOption) (*CreateOrMergeDocumentResponse, error)
	PartialUpdateDocument(ctx context.Context, in *PartialUpdateDocumentRequest, opts ...grpc.CallOption) (*PartialUpdateDocumentResponse, error)
	ListCompanions(ctx context.Context, in *ListCompanionsRequest, opts ...grpc.CallOption) (*ListCompanionsResponse, error)
	ResolveModelURL(ctx context.Context, in *ResolveModelURLRequest, opts ...grpc.CallOption) (*ResolveModelURLResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DocumentSnapshot], error)
}

type petzyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPetzyServiceClient(cc grpc.ClientConnInterface) PetzyServiceClient {
	return &petzyServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.StaticMethod(), grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *petzyServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, PetzyService_Ping_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	out := new(RegisterUserResponse)
	if err := c.cc.Invoke(ctx, PetzyService_RegisterUser_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	out := new(GetSaltResponse)
	if err := c.cc.Invoke(ctx, PetzyService_GetSalt_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	if err := c.cc.Invoke(ctx, PetzyService_Login_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	out := new(RefreshTokenResponse)
	if err := c.cc.Invoke(ctx, PetzyService_RefreshToken_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error) {
	out := new(GetDocumentResponse)
	if err := c.cc.Invoke(ctx, PetzyService_GetDocument_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) CreateOrMergeDocument(ctx context.Context, in *CreateOrMergeDocumentRequest, opts ...grpc.CallOption) (*CreateOrMergeDocumentResponse, error) {
	out := new(CreateOrMergeDocumentResponse)
	if err := c.cc.Invoke(ctx, PetzyService_CreateOrMergeDocument_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) PartialUpdateDocument(ctx context.Context, in *PartialUpdateDocumentRequest, opts ...grpc.CallOption) (*PartialUpdateDocumentResponse, error) {
	out := new(PartialUpdateDocumentResponse)
	if err := c.cc.Invoke(ctx, PetzyService_PartialUpdateDocument_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) ListCompanions(ctx context.Context, in *ListCompanionsRequest, opts ...grpc.CallOption) (*ListCompanionsResponse, error) {
	out := new(ListCompanionsResponse)
	if err := c.cc.Invoke(ctx, PetzyService_ListCompanions_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) ResolveModelURL(ctx context.Context, in *ResolveModelURLRequest, opts ...grpc.CallOption) (*ResolveModelURLResponse, error) {
	out := new(ResolveModelURLResponse)
	if err := c.cc.Invoke(ctx, PetzyService_ResolveModelURL_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *petzyServiceClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[DocumentSnapshot], error) {
	stream, err := c.cc.NewStream(ctx, &PetzyService_ServiceDesc.Streams[0], PetzyService_Subscribe_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SubscribeRequest, DocumentSnapshot]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// PetzyService_SubscribeClient is the stream handed back by Subscribe.
type PetzyService_SubscribeClient = grpc.ServerStreamingClient[DocumentSnapshot]

// PetzyServiceServer is the server API for PetzyService. Implementations
// must embed UnimplementedPetzyServiceServer.
type PetzyServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error)
	CreateOrMergeDocument(context.Context, *CreateOrMergeDocumentRequest) (*CreateOrMergeDocumentResponse, error)
	PartialUpdateDocument(context.Context, *PartialUpdateDocumentRequest) (*PartialUpdateDocumentResponse, error)
	ListCompanions(context.Context, *ListCompanionsRequest) (*ListCompanionsResponse, error)
	ResolveModelURL(context.Context, *ResolveModelURLRequest) (*ResolveModelURLResponse, error)
	Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[DocumentSnapshot]) error
	mustEmbedUnimplementedPetzyServiceServer()
}

// PetzyService_SubscribeServer is the stream a Subscribe handler writes to.
type PetzyService_SubscribeServer = grpc.ServerStreamingServer[DocumentSnapshot]

// UnimplementedPetzyServiceServer must be embedded by value.
type UnimplementedPetzyServiceServer struct{}

func (UnimplementedPetzyServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedPetzyServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedPetzyServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedPetzyServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedPetzyServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedPetzyServiceServer) GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDocument not implemented")
}
func (UnimplementedPetzyServiceServer) CreateOrMergeDocument(context.Context, *CreateOrMergeDocumentRequest) (*CreateOrMergeDocumentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateOrMergeDocument not implemented")
}
func (UnimplementedPetzyServiceServer) PartialUpdateDocument(context.Context, *PartialUpdateDocumentRequest) (*PartialUpdateDocumentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PartialUpdateDocument not implemented")
}
func (UnimplementedPetzyServiceServer) ListCompanions(context.Context, *ListCompanionsRequest) (*ListCompanionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListCompanions not implemented")
}
func (UnimplementedPetzyServiceServer) ResolveModelURL(context.Context, *ResolveModelURLRequest) (*ResolveModelURLResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResolveModelURL not implemented")
}
func (UnimplementedPetzyServiceServer) Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[DocumentSnapshot]) error {
	return status.Errorf(codes.Unimplemented, "method Subscribe not implemented")
}
func (UnimplementedPetzyServiceServer) mustEmbedUnimplementedPetzyServiceServer() {}

func RegisterPetzyServiceServer(s grpc.ServiceRegistrar, srv PetzyServiceServer) {
	s.RegisterService(&PetzyService_ServiceDesc, srv)
}

func _PetzyService_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_Ping_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_RegisterUser_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegisterUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).RegisterUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_RegisterUser_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).RegisterUser(ctx, req.(*RegisterUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_GetSalt_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSaltRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).GetSalt(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_GetSalt_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).GetSalt(ctx, req.(*GetSaltRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_Login_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_Login_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_RefreshToken_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RefreshTokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).RefreshToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_RefreshToken_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).RefreshToken(ctx, req.(*RefreshTokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_GetDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).GetDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_GetDocument_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).GetDocument(ctx, req.(*GetDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_CreateOrMergeDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateOrMergeDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).CreateOrMergeDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_CreateOrMergeDocument_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).CreateOrMergeDocument(ctx, req.(*CreateOrMergeDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_PartialUpdateDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PartialUpdateDocumentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).PartialUpdateDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_PartialUpdateDocument_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).PartialUpdateDocument(ctx, req.(*PartialUpdateDocumentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_ListCompanions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListCompanionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).ListCompanions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_ListCompanions_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).ListCompanions(ctx, req.(*ListCompanionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_ResolveModelURL_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResolveModelURLRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PetzyServiceServer).ResolveModelURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PetzyService_ResolveModelURL_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PetzyServiceServer).ResolveModelURL(ctx, req.(*ResolveModelURLRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PetzyService_Subscribe_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(PetzyServiceServer).Subscribe(m, &grpc.GenericServerStream[SubscribeRequest, DocumentSnapshot]{ServerStream: stream})
}

// PetzyService_ServiceDesc is the grpc.ServiceDesc for PetzyService.
var PetzyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PetzyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    _PetzyService_Ping_Handler,
		},
		{
			MethodName: "RegisterUser",
			Handler:    _PetzyService_RegisterUser_Handler,
		},
		{
			MethodName: "GetSalt",
			Handler:    _PetzyService_GetSalt_Handler,
		},
		{
			MethodName: "Login",
			Handler:    _PetzyService_Login_Handler,
		},
		{
			MethodName: "RefreshToken",
			Handler:    _PetzyService_RefreshToken_Handler,
		},
		{
			MethodName: "GetDocument",
			Handler:    _PetzyService_GetDocument_Handler,
		},
		{
			MethodName: "CreateOrMergeDocument",
			Handler:    _PetzyService_CreateOrMergeDocument_Handler,
		},
		{
			MethodName: "PartialUpdateDocument",
			Handler:    _PetzyService_PartialUpdateDocument_Handler,
		},
		{
			MethodName: "ListCompanions",
			Handler:    _PetzyService_ListCompanions_Handler,
		},
		{
			MethodName: "ResolveModelURL",
			Handler:    _PetzyService_ResolveModelURL_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       _PetzyService_Subscribe_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "petzy.proto",
}
