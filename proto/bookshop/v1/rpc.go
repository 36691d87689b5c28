package bookshopv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Дескрипторы сервисов и стабы написаны вручную: пакет не использует
// protoc-генерацию, контракт зафиксирован в bookshop.proto.

const (
	bookshopServiceName  = "bookshop.v1.BookshopService"
	productValidatorName = "bookshop.v1.ProductValidator"

	methodGetProduct         = "/bookshop.v1.BookshopService/GetProduct"
	methodCreateProduct      = "/bookshop.v1.BookshopService/CreateProduct"
	methodGetOrder           = "/bookshop.v1.BookshopService/GetOrder"
	methodCreateOrder        = "/bookshop.v1.BookshopService/CreateOrder"
	methodGetBookFromLibrary = "/bookshop.v1.BookshopService/GetBookFromLibrary"

	methodValidateProduct     = "/bookshop.v1.ProductValidator/ValidateProduct"
	methodValidatorGetProduct = "/bookshop.v1.ProductValidator/GetProduct"
)

// BookshopServiceServer — серверный контракт бинарного фронтенда каталога.
type BookshopServiceServer interface {
	GetProduct(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error)
	GetOrder(ctx context.Context, req *GetOrderRequest) (*GetOrderResponse, error)
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	GetBookFromLibrary(ctx context.Context, req *GetBookFromLibraryRequest) (*GetBookFromLibraryResponse, error)
}

// UnimplementedBookshopServiceServer позволяет встраивать заглушку
// для прямой совместимости при расширении контракта.
type UnimplementedBookshopServiceServer struct{}

func (UnimplementedBookshopServiceServer) GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}

func (UnimplementedBookshopServiceServer) CreateProduct(context.Context, *CreateProductRequest) (*CreateProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProduct not implemented")
}

func (UnimplementedBookshopServiceServer) GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}

func (UnimplementedBookshopServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*CreateOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOrder not implemented")
}

func (UnimplementedBookshopServiceServer) GetBookFromLibrary(context.Context, *GetBookFromLibraryRequest) (*GetBookFromLibraryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBookFromLibrary not implemented")
}

// RegisterBookshopServiceServer регистрирует реализацию на gRPC-сервере.
func RegisterBookshopServiceServer(s grpc.ServiceRegistrar, srv BookshopServiceServer) {
	s.RegisterService(&BookshopService_ServiceDesc, srv)
}

func unaryHandler[Req any, PReq interface {
	Message
	*Req
}](method string, call func(ctx context.Context, req PReq) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(PReq))
		})
	}
}

// BookshopService_ServiceDesc — дескриптор BookshopService.
var BookshopService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: bookshopServiceName,
	HandlerType: (*BookshopServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProduct", Handler: bookshopGetProductHandler},
		{MethodName: "CreateProduct", Handler: bookshopCreateProductHandler},
		{MethodName: "GetOrder", Handler: bookshopGetOrderHandler},
		{MethodName: "CreateOrder", Handler: bookshopCreateOrderHandler},
		{MethodName: "GetBookFromLibrary", Handler: bookshopGetBookFromLibraryHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/bookshop/v1/bookshop.proto",
}

func bookshopGetProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[GetProductRequest](methodGetProduct, func(ctx context.Context, req *GetProductRequest) (any, error) {
		return srv.(BookshopServiceServer).GetProduct(ctx, req)
	})(srv, ctx, dec, interceptor)
}

func bookshopCreateProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[CreateProductRequest](methodCreateProduct, func(ctx context.Context, req *CreateProductRequest) (any, error) {
		return srv.(BookshopServiceServer).CreateProduct(ctx, req)
	})(srv, ctx, dec, interceptor)
}

func bookshopGetOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[GetOrderRequest](methodGetOrder, func(ctx context.Context, req *GetOrderRequest) (any, error) {
		return srv.(BookshopServiceServer).GetOrder(ctx, req)
	})(srv, ctx, dec, interceptor)
}

func bookshopCreateOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[CreateOrderRequest](methodCreateOrder, func(ctx context.Context, req *CreateOrderRequest) (any, error) {
		return srv.(BookshopServiceServer).CreateOrder(ctx, req)
	})(srv, ctx, dec, interceptor)
}

func bookshopGetBookFromLibraryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[GetBookFromLibraryRequest](methodGetBookFromLibrary, func(ctx context.Context, req *GetBookFromLibraryRequest) (any, error) {
		return srv.(BookshopServiceServer).GetBookFromLibrary(ctx, req)
	})(srv, ctx, dec, interceptor)
}

// BookshopServiceClient — клиентский контракт бинарного фронтенда.
type BookshopServiceClient interface {
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error)
	CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*CreateProductResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error)
	GetBookFromLibrary(ctx context.Context, in *GetBookFromLibraryRequest, opts ...grpc.CallOption) (*GetBookFromLibraryResponse, error)
}

type bookshopServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBookshopServiceClient создаёт клиента поверх готового соединения.
func NewBookshopServiceClient(cc grpc.ClientConnInterface) BookshopServiceClient {
	return &bookshopServiceClient{cc: cc}
}

func invoke[Resp any, PResp interface {
	Message
	*Resp
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookshopServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error) {
	return invoke[GetProductResponse](ctx, c.cc, methodGetProduct, in, opts)
}

func (c *bookshopServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*CreateProductResponse, error) {
	return invoke[CreateProductResponse](ctx, c.cc, methodCreateProduct, in, opts)
}

func (c *bookshopServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	return invoke[GetOrderResponse](ctx, c.cc, methodGetOrder, in, opts)
}

func (c *bookshopServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*CreateOrderResponse, error) {
	return invoke[CreateOrderResponse](ctx, c.cc, methodCreateOrder, in, opts)
}

func (c *bookshopServiceClient) GetBookFromLibrary(ctx context.Context, in *GetBookFromLibraryRequest, opts ...grpc.CallOption) (*GetBookFromLibraryResponse, error) {
	return invoke[GetBookFromLibraryResponse](ctx, c.cc, methodGetBookFromLibrary, in, opts)
}

// ProductValidatorServer — серверный контракт валидатора.
type ProductValidatorServer interface {
	ValidateProduct(ctx context.Context, req *ValidateProductRequest) (*ValidateProductResponse, error)
	GetProduct(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error)
}

// RegisterProductValidatorServer регистрирует валидатор на gRPC-сервере.
func RegisterProductValidatorServer(s grpc.ServiceRegistrar, srv ProductValidatorServer) {
	s.RegisterService(&ProductValidator_ServiceDesc, srv)
}

// ProductValidator_ServiceDesc — дескриптор ProductValidator.
var ProductValidator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: productValidatorName,
	HandlerType: (*ProductValidatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ValidateProduct", Handler: validatorValidateProductHandler},
		{MethodName: "GetProduct", Handler: validatorGetProductHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/bookshop/v1/bookshop.proto",
}

func validatorValidateProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[ValidateProductRequest](methodValidateProduct, func(ctx context.Context, req *ValidateProductRequest) (any, error) {
		return srv.(ProductValidatorServer).ValidateProduct(ctx, req)
	})(srv, ctx, dec, interceptor)
}

func validatorGetProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler[GetProductRequest](methodValidatorGetProduct, func(ctx context.Context, req *GetProductRequest) (any, error) {
		return srv.(ProductValidatorServer).GetProduct(ctx, req)
	})(srv, ctx, dec, interceptor)
}

// ProductValidatorClient — клиентский контракт валидатора.
type ProductValidatorClient interface {
	ValidateProduct(ctx context.Context, in *ValidateProductRequest, opts ...grpc.CallOption) (*ValidateProductResponse, error)
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error)
}

type productValidatorClient struct {
	cc grpc.ClientConnInterface
}

// NewProductValidatorClient создаёт клиента валидатора поверх готового соединения.
func NewProductValidatorClient(cc grpc.ClientConnInterface) ProductValidatorClient {
	return &productValidatorClient{cc: cc}
}

func (c *productValidatorClient) ValidateProduct(ctx context.Context, in *ValidateProductRequest, opts ...grpc.CallOption) (*ValidateProductResponse, error) {
	return invoke[ValidateProductResponse](ctx, c.cc, methodValidateProduct, in, opts)
}

func (c *productValidatorClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*GetProductResponse, error) {
	return invoke[GetProductResponse](ctx, c.cc, methodValidatorGetProduct, in, opts)
}
