// Package transport defines the contract between the network front-ends
// and the assistant.
//
// Each transport (HTTP, gRPC) decodes requests, calls the Service and encodes
// the result. Pipeline outcomes are carried in-band in the response text, so
// transports only reject malformed requests.
package transport

import (
	"context"

	"github.com/nadzzz/globemate/internal/message"
)

// Service is the assistant facade the transports serve.
type Service interface {
	Ask(ctx context.Context, q message.Query) message.Response
	AskVoice(ctx context.Context, v message.VoiceQuery) message.Response
	ShareTip(ctx context.Context, tip string) message.FeedView
	RecentTips(ctx context.Context) message.FeedView
	ConvertCurrency(ctx context.Context, amount float64, from, to string) string
	Translate(ctx context.Context, text, lang string) string
	EmergencyNumber(country string) string
	ScamCheck(text string) string
	PassportHelp(country string) string
	CarbonFootprint(distanceKm, passengers float64) string
	EcoHotels(city string) string
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http").
	Name() string

	// Listen starts serving requests to svc. It blocks until the context is
	// cancelled or the listener fails.
	Listen(ctx context.Context, svc Service) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
