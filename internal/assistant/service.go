package assistant

import (
	"context"

	"github.com/nadzzz/globemate/internal/feed"
	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/metrics"
	"github.com/nadzzz/globemate/internal/travel"
)

// Service is the facade the transports call. It owns nothing global: the
// feed and converter are created by the caller and shared by reference.
type Service struct {
	pipeline  *Pipeline
	feed      *feed.Store
	converter *travel.Converter
}

// NewService wires the pipeline, community feed and currency converter.
func NewService(p *Pipeline, f *feed.Store, c *travel.Converter) *Service {
	return &Service{pipeline: p, feed: f, converter: c}
}

// Ready reports whether text generation is available.
func (s *Service) Ready() bool { return s.pipeline.Ready() }

// Ask runs the query pipeline.
func (s *Service) Ask(ctx context.Context, q message.Query) message.Response {
	return s.pipeline.AnswerQuery(ctx, q)
}

// AskVoice runs the voice pipeline.
func (s *Service) AskVoice(ctx context.Context, v message.VoiceQuery) message.Response {
	return s.pipeline.AnswerVoiceQuery(ctx, v)
}

// ShareTip submits a tip and returns the updated feed. Blank tips leave
// the feed unchanged.
func (s *Service) ShareTip(_ context.Context, tip string) message.FeedView {
	if s.feed.Submit(tip) {
		metrics.FeedTips.Set(float64(s.feed.Len()))
	}
	return s.view()
}

// RecentTips returns the visible feed window.
func (s *Service) RecentTips(_ context.Context) message.FeedView {
	return s.view()
}

func (s *Service) view() message.FeedView {
	tips := s.feed.Window()
	v := message.FeedView{Tips: tips, Rendered: feed.Format(tips)}
	if v.Tips == nil {
		v.Tips = []string{}
	}
	return v
}

// ConvertCurrency converts amount between currencies.
func (s *Service) ConvertCurrency(ctx context.Context, amount float64, from, to string) string {
	return s.converter.Convert(ctx, amount, from, to)
}

// Translate translates free text into lang.
func (s *Service) Translate(ctx context.Context, text, lang string) string {
	return s.pipeline.TranslateText(ctx, text, lang)
}

// EmergencyNumber looks up emergency contacts.
func (s *Service) EmergencyNumber(country string) string { return travel.EmergencyNumber(country) }

// ScamCheck screens a message for scam phrases.
func (s *Service) ScamCheck(text string) string { return travel.ScamCheck(text) }

// PassportHelp explains what to do after losing a passport.
func (s *Service) PassportHelp(country string) string { return travel.PassportHelp(country) }

// CarbonFootprint estimates flight emissions.
func (s *Service) CarbonFootprint(distanceKm, passengers float64) string {
	return travel.CarbonFootprint(distanceKm, passengers)
}

// EcoHotels lists eco-friendly hotels in a city.
func (s *Service) EcoHotels(city string) string { return travel.EcoHotels(city) }
