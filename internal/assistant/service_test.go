package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/globemate/internal/feed"
	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/travel"
)

func newTestService(t *testing.T, p *Pipeline) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result":"success","rates":{"USD":1,"EUR":0.9}}`)
	}))
	t.Cleanup(srv.Close)
	return NewService(p, feed.New(), travel.NewConverter(srv.URL, time.Second, nil))
}

func TestServiceFeed(t *testing.T) {
	svc := newTestService(t, newTestPipeline(nil, nil, nil))
	ctx := context.Background()

	empty := svc.RecentTips(ctx)
	assert.Equal(t, []string{}, empty.Tips)
	assert.Equal(t, feed.NoTips, empty.Rendered)

	view := svc.ShareTip(ctx, "   ")
	assert.Empty(t, view.Tips)

	view = svc.ShareTip(ctx, "  Carry a power bank.  ")
	assert.Equal(t, []string{"Carry a power bank."}, view.Tips)
	assert.Equal(t, "• Carry a power bank.", view.Rendered)

	for i := 1; i <= 12; i++ {
		svc.ShareTip(ctx, fmt.Sprintf("T%d", i))
	}
	view = svc.RecentTips(ctx)
	require.Len(t, view.Tips, feed.ViewSize)
	assert.Equal(t, "T3", view.Tips[0])
	assert.Equal(t, "T12", view.Tips[feed.ViewSize-1])
}

func TestServiceFeedIsSharedAcrossCallers(t *testing.T) {
	svc := newTestService(t, newTestPipeline(nil, nil, nil))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.ShareTip(ctx, fmt.Sprintf("tip %d", i))
		}()
	}
	wg.Wait()

	assert.Len(t, svc.RecentTips(ctx).Tips, feed.ViewSize)
}

func TestServiceDelegates(t *testing.T) {
	p := newTestPipeline(&stubGenerator{text: "Visit the Colosseum."}, &stubTranslator{text: "Hola"}, &stubTranscriber{text: "hello"})
	svc := newTestService(t, p)
	ctx := context.Background()

	assert.True(t, svc.Ready())
	assert.Equal(t, "[English] Visit the Colosseum.", svc.Ask(ctx, message.Query{Text: "Rome?"}).Text)
	assert.Equal(t, "🗣️ You said: hello\n🤖 GlobeMate: Visit the Colosseum.", svc.AskVoice(ctx, message.VoiceQuery{Audio: []byte{1}}).Text)
	assert.Equal(t, "Hola", svc.Translate(ctx, "Hello", "Spanish"))
	assert.Equal(t, "100.0 USD = 90.0 EUR", svc.ConvertCurrency(ctx, 100, "usd", "eur"))
	assert.Equal(t, travel.EmergencyNumber("Pakistan"), svc.EmergencyNumber("Pakistan"))
	assert.Equal(t, travel.ScamCheck("free money"), svc.ScamCheck("free money"))
	assert.Equal(t, travel.PassportHelp("France"), svc.PassportHelp("France"))
	assert.Equal(t, travel.CarbonFootprint(1000, 2), svc.CarbonFootprint(1000, 2))
	assert.Equal(t, travel.EcoHotels("Paris"), svc.EcoHotels("Paris"))
}

func TestServiceNotReady(t *testing.T) {
	svc := newTestService(t, newTestPipeline(nil, nil, nil))
	assert.False(t, svc.Ready())
}
