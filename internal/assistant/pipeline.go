// Package assistant implements the GlobeMate query pipelines.
//
// A query flows through the adapters in a fixed order: transcribe (voice
// only), generate, then translate when a non-English reply is requested.
// Adapters return typed results and the pipelines pattern-match on them, so
// every pipeline call returns a Response and never an error. Failures are
// reported in the response text behind message.WarningMarker.
package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/globemate/internal/message"
	"github.com/nadzzz/globemate/internal/metrics"
	"github.com/nadzzz/globemate/internal/translate"
)

// DefaultMaxLength caps generated continuations.
const DefaultMaxLength = 80

// Pipeline composes the generation, translation and transcription adapters.
type Pipeline struct {
	generator   *GenerationAdapter
	translator  *TranslationAdapter
	transcriber *TranscriptionAdapter
	maxLength   int
}

// NewPipeline creates a pipeline. A non-positive maxLength selects DefaultMaxLength.
func NewPipeline(gen *GenerationAdapter, tr *TranslationAdapter, stt *TranscriptionAdapter, maxLength int) *Pipeline {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Pipeline{
		generator:   gen,
		translator:  tr,
		transcriber: stt,
		maxLength:   maxLength,
	}
}

// Ready reports whether text generation is available.
func (p *Pipeline) Ready() bool { return p.generator.Available() }

// AnswerQuery answers a typed question in the requested language.
func (p *Pipeline) AnswerQuery(ctx context.Context, q message.Query) message.Response {
	start := time.Now()
	lang := q.ReplyLanguage()
	resp := message.Response{ID: uuid.NewString()}
	logger := slog.With("response_id", resp.ID, "pipeline", "query", "language", lang)

	if !p.generator.Available() {
		return finish(logger, "query", start, unavailable(resp))
	}

	gen := p.generator.Generate(ctx, q.Text, p.maxLength)
	switch gen.Status {
	case StatusUnavailable:
		return finish(logger, "query", start, unavailable(resp))
	case StatusFailed:
		logger.Error("generation failed", "reason", gen.Reason)
		resp.Text = message.Warning("AI Error: " + gen.Reason)
		resp.Outcome = message.OutcomeFailed
		return finish(logger, "query", start, resp)
	}

	text := gen.Text
	resp.Outcome = message.OutcomeOK
	if !translate.IsEnglish(lang) {
		tr := p.translator.Translate(ctx, text, "en", strings.ToLower(lang))
		if tr.Status == StatusOK {
			text = tr.Text
		} else {
			logger.Warn("translation failed, replying in English", "reason", tr.Reason)
			text = message.PartialMarker + " " + text
			resp.Outcome = message.OutcomeDegraded
		}
	}

	resp.Language = lang
	resp.Text = "[" + lang + "] " + text
	return finish(logger, "query", start, resp)
}

// AnswerVoiceQuery transcribes a recording and answers it in English.
// Generation availability is checked before transcription so no speech
// recognition call is spent when no reply can be produced.
func (p *Pipeline) AnswerVoiceQuery(ctx context.Context, v message.VoiceQuery) message.Response {
	start := time.Now()
	resp := message.Response{ID: uuid.NewString()}
	logger := slog.With("response_id", resp.ID, "pipeline", "voice")

	if !p.generator.Available() {
		return finish(logger, "voice", start, unavailable(resp))
	}

	logger.Debug("transcribing audio", "content_type", v.ContentType, "bytes", len(v.Audio))
	stt := p.transcriber.Transcribe(ctx, v.Audio, v.ContentType)
	if stt.Status != StatusOK {
		logger.Error("transcription failed", "status", stt.Status, "reason", stt.Reason)
		resp.Text = message.Warning("Voice Assistant Error: " + stt.Reason)
		resp.Outcome = message.OutcomeFailed
		if stt.Status == StatusUnavailable {
			resp.Outcome = message.OutcomeUnavailable
		}
		return finish(logger, "voice", start, resp)
	}
	resp.Transcript = stt.Text

	gen := p.generator.Generate(ctx, stt.Text, p.maxLength)
	switch gen.Status {
	case StatusUnavailable:
		return finish(logger, "voice", start, unavailable(resp))
	case StatusFailed:
		logger.Error("generation failed", "reason", gen.Reason)
		resp.Text = message.Warning("Voice Assistant Error: " + gen.Reason)
		resp.Outcome = message.OutcomeFailed
		return finish(logger, "voice", start, resp)
	}

	resp.Reply = gen.Text
	resp.Text = "🗣️ You said: " + stt.Text + "\n🤖 GlobeMate: " + gen.Text
	resp.Outcome = message.OutcomeOK
	return finish(logger, "voice", start, resp)
}

// TranslateText translates free text into lang, detecting the source language.
func (p *Pipeline) TranslateText(ctx context.Context, text, lang string) string {
	tr := p.translator.Translate(ctx, text, translate.AutoDetect, lang)
	if tr.Status != StatusOK {
		slog.Warn("free-text translation failed", "target", lang, "reason", tr.Reason)
		return message.Warning("Translation Error: " + tr.Reason)
	}
	return tr.Text
}

func unavailable(resp message.Response) message.Response {
	resp.Text = message.Warning("AI Model not loaded.")
	resp.Outcome = message.OutcomeUnavailable
	return resp
}

func finish(logger *slog.Logger, pipeline string, start time.Time, resp message.Response) message.Response {
	metrics.PipelineOutcomes.WithLabelValues(pipeline, string(resp.Outcome)).Inc()
	logger.Info("pipeline complete", "outcome", resp.Outcome, "duration", time.Since(start))
	return resp
}
