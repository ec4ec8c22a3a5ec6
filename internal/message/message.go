// Package message defines the core data types flowing through the globemate pipelines.
package message

import (
	"strings"
)

// Markers embedded in response text. Callers tell success from failure by
// checking for these rather than parsing the free text.
const (
	// WarningMarker prefixes every failed or unavailable response.
	WarningMarker = "⚠️"

	// PartialMarker flags a reply that fell back to English because
	// translation failed.
	PartialMarker = "(Partial English)"

	// NoResponse stands in for an empty model continuation.
	NoResponse = "No response generated."

	// DefaultLanguage is used when a query names no language.
	DefaultLanguage = "English"
)

// Outcome classifies how a pipeline run ended.
type Outcome string

const (
	// OutcomeOK means every stage succeeded.
	OutcomeOK Outcome = "ok"

	// OutcomeDegraded means a non-essential stage (translation) failed and
	// fallback content was used.
	OutcomeDegraded Outcome = "degraded"

	// OutcomeFailed means an essential stage raised at call time.
	OutcomeFailed Outcome = "failed"

	// OutcomeUnavailable means a required backend never initialized.
	OutcomeUnavailable Outcome = "unavailable"
)

// Query is a typed travel question.
type Query struct {
	// Text is the raw user question.
	Text string `json:"text"`

	// Language is the reply language as the user named it ("Spanish", "fr").
	// Defaults to English.
	Language string `json:"language,omitempty"`
}

// ReplyLanguage returns the requested language, defaulting to English.
func (q Query) ReplyLanguage() string {
	if l := strings.TrimSpace(q.Language); l != "" {
		return l
	}
	return DefaultLanguage
}

// VoiceQuery is a recorded spoken question.
type VoiceQuery struct {
	// Audio is the complete recording.
	Audio []byte `json:"audio"`

	// ContentType is the MIME type of the audio (e.g., "audio/wav").
	ContentType string `json:"content_type,omitempty"`
}

// HasAudio returns true if the query carries an audio payload.
func (v *VoiceQuery) HasAudio() bool {
	return len(v.Audio) > 0
}

// Response is the outcome of running a query through a pipeline.
type Response struct {
	// ID uniquely identifies this response (UUID).
	ID string `json:"id"`

	// Text is the user-facing reply. Never empty.
	Text string `json:"text"`

	// Outcome mirrors the markers in Text.
	Outcome Outcome `json:"outcome"`

	// Language is the language tag used for the reply, if any.
	Language string `json:"language,omitempty"`

	// Transcript is the recognized speech (voice queries only).
	Transcript string `json:"transcript,omitempty"`

	// Reply is the generated answer (voice queries only).
	Reply string `json:"reply,omitempty"`
}

// IsWarning reports whether Text carries the warning marker.
func (r *Response) IsWarning() bool {
	return strings.HasPrefix(r.Text, WarningMarker)
}

// Warning formats a warning-marked line.
func Warning(msg string) string {
	return WarningMarker + " " + msg
}

// TipRequest submits a community tip.
type TipRequest struct {
	Tip string `json:"tip"`
}

// FeedView is the visible window of the community feed.
type FeedView struct {
	// Tips holds at most the ten most recent tips, oldest first.
	Tips []string `json:"tips"`

	// Rendered is the bullet-list display of Tips, or the empty-feed sentinel.
	Rendered string `json:"rendered"`
}

// TranslateRequest asks for a free-text translation.
type TranslateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

// ScamRequest asks for a scam screening of a message.
type ScamRequest struct {
	Text string `json:"text"`
}

// TextResult wraps a single user-facing line returned by a utility lookup.
type TextResult struct {
	Result string `json:"result"`
}
