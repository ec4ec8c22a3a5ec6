package assistant

import (
	"context"
	"sync/atomic"
	"time"
)

type stubGenerator struct {
	text   string
	err    error
	panics bool
	calls  atomic.Int32
	prompt string
	maxLen int
}

func (g *stubGenerator) Name() string { return "stub" }
func (g *stubGenerator) Close() error { return nil }

func (g *stubGenerator) Generate(_ context.Context, prompt string, maxLength int) (string, error) {
	g.calls.Add(1)
	g.prompt, g.maxLen = prompt, maxLength
	if g.panics {
		panic("model exploded")
	}
	return g.text, g.err
}

type stubTranslator struct {
	text   string
	err    error
	calls  atomic.Int32
	source string
	target string
}

func (t *stubTranslator) Name() string { return "stub" }

func (t *stubTranslator) Translate(_ context.Context, _ string, source, target string) (string, error) {
	t.calls.Add(1)
	t.source, t.target = source, target
	return t.text, t.err
}

type stubTranscriber struct {
	text  string
	err   error
	calls atomic.Int32
}

func (s *stubTranscriber) Name() string { return "stub" }
func (s *stubTranscriber) Close() error { return nil }

func (s *stubTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	s.calls.Add(1)
	return s.text, s.err
}

// newTestPipeline builds a pipeline from stubs; a nil generator or
// transcriber models a backend that never initialized.
func newTestPipeline(gen *stubGenerator, tr *stubTranslator, stt *stubTranscriber) *Pipeline {
	ga := NewGenerationAdapter(nil, time.Second)
	if gen != nil {
		ga = NewGenerationAdapter(gen, time.Second)
	}
	ta := NewTranslationAdapter(nil, time.Second)
	if tr != nil {
		ta = NewTranslationAdapter(tr, time.Second)
	}
	sa := NewTranscriptionAdapter(nil, time.Second)
	if stt != nil {
		sa = NewTranscriptionAdapter(stt, time.Second)
	}
	return NewPipeline(ga, ta, sa, 0)
}
