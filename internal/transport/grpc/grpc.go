// Package grpc implements the gRPC transport for globemate.
//
// The Assistant service is described by hand rather than generated from a
// .proto file: requests and responses are the message package types carried
// with a JSON codec (content-subtype "json"). Clients must set
// grpc.CallContentSubtype("json"); Client does this for every call. The
// standard grpc.health.v1 service is registered alongside and reports
// SERVING once text generation is available.
package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/transport"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "globemate.v1.Assistant"

const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec marshals the message types as JSON.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

// Empty is the request of RecentTips.
type Empty struct{}

// AssistantServer is the server API of the Assistant service.
type AssistantServer interface {
	Ask(context.Context, *message.Query) (*message.Response, error)
	AskVoice(context.Context, *message.VoiceQuery) (*message.Response, error)
	ShareTip(context.Context, *message.TipRequest) (*message.FeedView, error)
	RecentTips(context.Context, *Empty) (*message.FeedView, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssistantServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ask", AssistantServer.Ask),
		unary("AskVoice", AssistantServer.AskVoice),
		unary("ShareTip", AssistantServer.ShareTip),
		unary("RecentTips", AssistantServer.RecentTips),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "globemate/v1/assistant",
}

// unary adapts a typed AssistantServer method to a grpc.MethodDesc.
func unary[Req, Resp any](method string, call func(AssistantServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(AssistantServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

// RegisterAssistantServer registers srv on s.
func RegisterAssistantServer(s grpc.ServiceRegistrar, srv AssistantServer) {
	s.RegisterService(&serviceDesc, srv)
}

// server adapts transport.Service to AssistantServer.
type server struct {
	svc transport.Service
}

func (s *server) Ask(ctx context.Context, q *message.Query) (*message.Response, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}
	resp := s.svc.Ask(ctx, *q)
	return &resp, nil
}

func (s *server) AskVoice(ctx context.Context, v *message.VoiceQuery) (*message.Response, error) {
	if !v.HasAudio() {
		return nil, status.Error(codes.InvalidArgument, "audio is required")
	}
	resp := s.svc.AskVoice(ctx, *v)
	return &resp, nil
}

func (s *server) ShareTip(ctx context.Context, req *message.TipRequest) (*message.FeedView, error) {
	view := s.svc.ShareTip(ctx, req.Tip)
	return &view, nil
}

func (s *server) RecentTips(ctx context.Context, _ *Empty) (*message.FeedView, error) {
	view := s.svc.RecentTips(ctx)
	return &view, nil
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port int

	mu     sync.Mutex
	server *grpc.Server
}

// New creates a new gRPC transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to svc.
func (t *Transport) Listen(ctx context.Context, svc transport.Service) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	slog.Info("grpc transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		_ = t.Close()
	}()

	return t.Serve(lis, svc)
}

// Serve registers the Assistant and health services and serves on lis
// until the transport is closed.
func (t *Transport) Serve(lis net.Listener, svc transport.Service) error {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary))
	RegisterAssistantServer(s, &server{svc: svc})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, servingStatus(svc))
	healthpb.RegisterHealthServer(s, hs)

	t.mu.Lock()
	t.server = s
	t.mu.Unlock()

	if err := s.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.mu.Lock()
	s := t.server
	t.mu.Unlock()
	if s != nil {
		s.GracefulStop()
	}
	return nil
}

func servingStatus(svc transport.Service) healthpb.HealthCheckResponse_ServingStatus {
	if r, ok := svc.(interface{ Ready() bool }); ok && !r.Ready() {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	slog.Debug("grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))
	return resp, err
}

// Client is a typed client for the Assistant service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

// Ask answers a typed question.
func (c *Client) Ask(ctx context.Context, q *message.Query, opts ...grpc.CallOption) (*message.Response, error) {
	out := new(message.Response)
	if err := c.invoke(ctx, "Ask", q, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AskVoice answers a recorded question.
func (c *Client) AskVoice(ctx context.Context, v *message.VoiceQuery, opts ...grpc.CallOption) (*message.Response, error) {
	out := new(message.Response)
	if err := c.invoke(ctx, "AskVoice", v, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ShareTip submits a community tip.
func (c *Client) ShareTip(ctx context.Context, req *message.TipRequest, opts ...grpc.CallOption) (*message.FeedView, error) {
	out := new(message.FeedView)
	if err := c.invoke(ctx, "ShareTip", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentTips returns the visible feed.
func (c *Client) RecentTips(ctx context.Context, opts ...grpc.CallOption) (*message.FeedView, error) {
	out := new(message.FeedView)
	if err := c.invoke(ctx, "RecentTips", &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
