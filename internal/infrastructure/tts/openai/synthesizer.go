package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/domain/tts"
	"speech-upload-app/internal/logging"
)

// Synthesizer implements tts.Synthesizer using the OpenAI speech endpoint.
// Polly voice ids mean nothing here, so the voice is fixed at construction.
type Synthesizer struct {
	client openai.Client
	model  string
	voice  string
	logger *log.Logger
}

// Options configure the synthesizer. Empty fields take defaults.
type Options struct {
	APIKey     string
	SecretsDir string
	Model      string // default tts-1
	Voice      string // default alloy
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
}

// NewSynthesizer creates an OpenAI TTS synthesizer.
// If APIKey is empty, it tries env OPENAI_API_KEY, then {SecretsDir}/openai_api_key.txt.
func NewSynthesizer(o Options, logger *log.Logger) (*Synthesizer, error) {
	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = getOpenAIKey(o.SecretsDir)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if o.Model == "" {
		o.Model = string(openai.SpeechModelTTS1)
	}
	if o.Voice == "" {
		o.Voice = string(openai.AudioSpeechNewParamsVoiceAlloy)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(o.MaxRetries),
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	if o.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(o.HTTPClient))
	}

	return &Synthesizer{
		client: openai.NewClient(opts...),
		model:  o.Model,
		voice:  o.Voice,
		logger: logging.Component(logger, "openai"),
	}, nil
}

// Synthesize converts req.Text to audio bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if req.Text == "" {
		return nil, fault.New(fault.InvalidInput, "synthesize", fmt.Errorf("text is empty"))
	}
	format := responseFormat(req.OutputFormat)
	s.logger.Info("starting synthesis",
		"model", s.model,
		"voice", s.voice,
		"format", format,
		"characters", len([]rune(req.Text)),
	)
	start := time.Now()

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          req.Text,
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormat(format),
	})
	if err != nil {
		ferr := classify(err)
		s.logger.Error("synthesis failed", "kind", ferr.Kind, "err", err)
		return nil, ferr
	}
	defer resp.Body.Close()

	requestID := resp.Header.Get("x-request-id")
	contentType := resp.Header.Get("Content-Type")
	s.logger.Info("synthesis response", "request_id", requestID, "status", resp.StatusCode, "content_type", contentType)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("reading audio failed", "request_id", requestID, "err", err)
		return nil, fault.New(fault.Transport, "openai read audio", err)
	}

	s.logger.Info("synthesis completed",
		"bytes", len(data),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return &tts.Audio{Data: data, Format: format, ContentType: contentType, RequestID: requestID}, nil
}

func classify(err error) *fault.Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			return fault.New(fault.Transport, "openai speech", err)
		}
		return fault.New(fault.ClientRequest, "openai speech", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fault.New(fault.Transport, "openai speech", err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return fault.New(fault.Transport, "openai speech", err)
	}
	return fault.New(fault.Unexpected, "openai speech", err)
}

// responseFormat maps Polly output formats onto OpenAI's.
func responseFormat(f string) string {
	switch f {
	case "", "mp3":
		return "mp3"
	case "ogg_vorbis":
		return "opus"
	default:
		return f
	}
}

// getOpenAIKey returns the OpenAI API key.
// Priority: env OPENAI_API_KEY > file {secretsDir}/openai_api_key.txt
func getOpenAIKey(secretsDir string) string {
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		return k
	}
	if secretsDir == "" {
		secretsDir = "secrets"
	}
	path := filepath.Join(secretsDir, "openai_api_key.txt")
	if data, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
