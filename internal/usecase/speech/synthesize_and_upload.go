package speech

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/domain/text"
	"speech-upload-app/internal/domain/tts"
	"speech-upload-app/internal/logging"
	"speech-upload-app/internal/usecase"
)

var errNoText = errors.New("neither text nor text file given")

// SynthesizeAndUploadInput is input DTO.
type SynthesizeAndUploadInput struct {
	TextFile string // read when Text is empty
	Text     string
	Target   audio.Target
	Options  []tts.Option
}

// SynthesizeAndUploadOutput is output DTO.
type SynthesizeAndUploadOutput struct {
	Location    audio.Location `json:"location"`
	Uploaded    bool           `json:"uploaded"`
	Key         string         `json:"key"`
	Bytes       int            `json:"bytes"`
	ContentType string         `json:"contentType"`
	RequestID   string         `json:"requestId,omitempty"`
}

// SynthesizeAndUpload implements usecase.UseCase.
type SynthesizeAndUpload struct {
	source      text.Source
	synthesizer tts.Synthesizer
	store       audio.Store
	logger      *log.Logger
}

var _ usecase.UseCase[SynthesizeAndUploadInput, SynthesizeAndUploadOutput] = (*SynthesizeAndUpload)(nil)

func NewSynthesizeAndUpload(source text.Source, synth tts.Synthesizer, store audio.Store, logger *log.Logger) *SynthesizeAndUpload {
	return &SynthesizeAndUpload{
		source:      source,
		synthesizer: synth,
		store:       store,
		logger:      logging.Component(logger, "flow"),
	}
}

// Execute reads the text, synthesizes it and uploads the audio.
// A failed stage stops the run; the returned error carries a fault.Kind.
func (uc *SynthesizeAndUpload) Execute(ctx context.Context, in *SynthesizeAndUploadInput) (*SynthesizeAndUploadOutput, error) {
	// 1. Text
	body := in.Text
	if body == "" {
		if in.TextFile == "" {
			return nil, fault.New(fault.InvalidInput, "read text", errNoText)
		}
		var err error
		body, err = uc.source.Read(ctx, in.TextFile)
		if err != nil {
			uc.logger.Error("cannot read text, nothing synthesized", "kind", fault.KindOf(err), "file", in.TextFile)
			return nil, err
		}
	}
	req := tts.NewRequest(body, in.Options...)

	// 2. Synthesize
	out, err := uc.synthesizer.Synthesize(ctx, req)
	if err != nil {
		uc.logger.Error("synthesis failed, upload skipped", "kind", fault.KindOf(err))
		return nil, err
	}

	// 3. Upload
	contentType := tts.ContentTypeFor(req.OutputFormat)
	loc, err := uc.store.Save(ctx, audio.Object{Data: out.Data, ContentType: contentType}, in.Target)
	if err != nil {
		uc.logger.Error("upload failed", "kind", fault.KindOf(err), "bucket", in.Target.Bucket, "key", in.Target.Key)
		return nil, err
	}

	res := &SynthesizeAndUploadOutput{
		Location:    loc,
		Uploaded:    loc != "",
		Key:         in.Target.Key,
		Bytes:       len(out.Data),
		ContentType: contentType,
		RequestID:   out.RequestID,
	}
	if res.Uploaded {
		uc.logger.Info("completed", "location", loc, "bytes", res.Bytes)
	} else {
		uc.logger.Warn("completed without upload: no audio returned", "request_id", out.RequestID)
	}
	return res, nil
}
