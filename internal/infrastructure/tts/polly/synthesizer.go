package polly

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/charmbracelet/log"

	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/domain/tts"
	"speech-upload-app/internal/infrastructure/awsclient"
	"speech-upload-app/internal/logging"
)

// API is the slice of the Polly client the synthesizer needs.
type API interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Synthesizer implements tts.Synthesizer using Amazon Polly.
type Synthesizer struct {
	api    API
	logger *log.Logger
}

// NewSynthesizer wraps an existing Polly client.
func NewSynthesizer(api API, logger *log.Logger) *Synthesizer {
	return &Synthesizer{api: api, logger: logging.Component(logger, "polly")}
}

// NewFromConfig builds a Polly client from cfg.
func NewFromConfig(cfg aws.Config, logger *log.Logger) *Synthesizer {
	return NewSynthesizer(polly.NewFromConfig(cfg), logger)
}

// Synthesize sends req to Polly and reads the whole audio stream into memory.
func (s *Synthesizer) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if req.Text == "" {
		return nil, fault.New(fault.InvalidInput, "synthesize", fmt.Errorf("text is empty"))
	}

	s.logger.Info("starting synthesis",
		"engine", req.Engine,
		"voice", req.VoiceID,
		"language", req.LanguageCode,
		"format", req.OutputFormat,
		"text_type", req.TextType,
		"characters", len([]rune(req.Text)),
	)
	start := time.Now()

	out, err := s.api.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Engine:       types.Engine(req.Engine),
		LanguageCode: types.LanguageCode(req.LanguageCode),
		OutputFormat: types.OutputFormat(req.OutputFormat),
		Text:         aws.String(req.Text),
		TextType:     types.TextType(req.TextType),
		VoiceId:      types.VoiceId(req.VoiceID),
	})
	if err != nil {
		ferr := awsclient.Classify("polly synthesize", err)
		status, requestID := awsclient.ResponseDetails(err)
		s.logger.Error("synthesis failed", "kind", ferr.Kind, "status", status, "request_id", requestID, "err", err)
		return nil, ferr
	}

	requestID, _ := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)
	contentType := aws.ToString(out.ContentType)
	s.logger.Info("synthesis response",
		"request_id", requestID,
		"status", statusCode(out),
		"content_type", contentType,
		"request_characters", out.RequestCharacters,
	)

	if out.AudioStream == nil {
		s.logger.Warn("no audio stream returned in the response", "request_id", requestID)
		return &tts.Audio{Format: req.OutputFormat, ContentType: contentType, RequestID: requestID}, nil
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		s.logger.Error("reading audio stream failed", "request_id", requestID, "err", err)
		return nil, fault.New(fault.Transport, "polly read audio stream", err)
	}

	s.logger.Info("synthesis completed",
		"bytes", len(data),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return &tts.Audio{
		Data:        data,
		Format:      req.OutputFormat,
		ContentType: contentType,
		RequestID:   requestID,
	}, nil
}

func statusCode(out *polly.SynthesizeSpeechOutput) int {
	if resp, ok := awsmiddleware.GetRawResponse(out.ResultMetadata).(*smithyhttp.Response); ok && resp != nil {
		return resp.StatusCode
	}
	return 0
}
