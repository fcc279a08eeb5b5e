package rpc

import (
	"context"
	"fmt"
	"net"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

// Source is what the inspector serves. Implementations must be safe for
// concurrent reads; symbols.Entries is, as long as nobody appends to it
// while serving.
type Source interface {
	Lookup(name string) (symbols.Entry, bool)
	Latest() symbols.Entries
}

// Server exposes a Source as the symtab.Inspector gRPC service.
type Server struct {
	schema *Schema
	source Source
	grpc   *grpc.Server
}

type unaryFunc func(ctx context.Context, in *dynamic.Message) (*dynamic.Message, error)

func NewServer(source Source, opts ...grpc.ServerOption) (*Server, error) {
	s, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	srv := &Server{
		schema: s,
		source: source,
		grpc:   grpc.NewServer(opts...),
	}

	sd := &grpc.ServiceDesc{
		ServiceName: s.Inspector.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Methods:     []grpc.MethodDesc{},
		Streams:     []grpc.StreamDesc{},
		Metadata:    s.File.GetName(),
	}
	handlers := map[string]unaryFunc{
		"Lookup": srv.lookup,
		"List":   srv.list,
	}
	for _, md := range s.Inspector.GetMethods() {
		fn, ok := handlers[md.GetName()]
		if !ok {
			return nil, fmt.Errorf("no handler for %s", md.GetFullyQualifiedName())
		}
		sd.Methods = append(sd.Methods, unaryMethod(md, fn))
	}

	srv.grpc.RegisterService(sd, srv)
	return srv, nil
}

func unaryMethod(md *desc.MethodDescriptor, fn unaryFunc) grpc.MethodDesc {
	fullMethod := "/" + md.GetService().GetFullyQualifiedName() + "/" + md.GetName()
	return grpc.MethodDesc{
		MethodName: md.GetName(),
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := dynamic.NewMessage(md.GetInputType())
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(ctx, req.(*dynamic.Message))
			})
		},
	}
}

func (s *Server) lookup(_ context.Context, in *dynamic.Message) (*dynamic.Message, error) {
	name, _ := in.GetFieldByName("name").(string)
	e, ok := s.source.Lookup(name)
	if !ok {
		return nil, status.Error(codes.NotFound, typesystem.NewSymbolNotFoundError(name).Error())
	}
	return s.schema.EntryMessage(e), nil
}

func (s *Server) list(_ context.Context, _ *dynamic.Message) (*dynamic.Message, error) {
	return s.schema.ListMessage(s.source.Latest()), nil
}

// Serve accepts connections on lis until Stop or GracefulStop.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// ListenAndServe listens on the TCP address addr and serves.
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) GracefulStop() {
	s.grpc.GracefulStop()
}
