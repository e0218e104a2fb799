package tts

import (
	"context"
)

// Default synthesis parameters.
const (
	DefaultEngine       = "generative"
	DefaultLanguageCode = "en-US"
	DefaultOutputFormat = "mp3"
	DefaultTextType     = "text"
	DefaultVoiceID      = "Ruth"
)

// Request is one synthesis job. Build it with NewRequest and treat it as read-only.
type Request struct {
	Text         string
	Engine       string
	LanguageCode string
	OutputFormat string
	TextType     string
	VoiceID      string
}

// Option overrides a synthesis parameter. Empty values keep the default.
type Option func(*Request)

func WithEngine(v string) Option       { return func(r *Request) { set(&r.Engine, v) } }
func WithLanguageCode(v string) Option { return func(r *Request) { set(&r.LanguageCode, v) } }
func WithOutputFormat(v string) Option { return func(r *Request) { set(&r.OutputFormat, v) } }
func WithTextType(v string) Option     { return func(r *Request) { set(&r.TextType, v) } }
func WithVoiceID(v string) Option      { return func(r *Request) { set(&r.VoiceID, v) } }

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// NewRequest returns a Request for text with defaults applied before opts.
func NewRequest(text string, opts ...Option) Request {
	r := Request{
		Text:         text,
		Engine:       DefaultEngine,
		LanguageCode: DefaultLanguageCode,
		OutputFormat: DefaultOutputFormat,
		TextType:     DefaultTextType,
		VoiceID:      DefaultVoiceID,
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

// Audio is raw synthesized voice.
type Audio struct {
	Data        []byte
	Format      string // e.g. "mp3"
	ContentType string // as reported by the provider
	RequestID   string
}

// Synthesizer converts text to Audio.
// Concrete implementation wraps Polly, OpenAI, etc.
type Synthesizer interface {
	// Synthesize takes a request and returns Audio.
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}

// ContentTypeFor maps an output format to the MIME type stored alongside the audio.
func ContentTypeFor(format string) string {
	switch format {
	case "ogg_vorbis", "ogg_opus", "opus":
		return "audio/ogg"
	case "json":
		// speech marks, one JSON object per line
		return "application/x-json-stream"
	case "pcm":
		return "audio/pcm"
	case "wav":
		return "audio/wav"
	case "flac":
		return "audio/flac"
	case "aac":
		return "audio/aac"
	default:
		return "audio/mpeg"
	}
}
