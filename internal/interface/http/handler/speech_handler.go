package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"speech-upload-app/internal/config"
	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/domain/tts"
	"speech-upload-app/internal/logging"
	"speech-upload-app/internal/usecase"
	"speech-upload-app/internal/usecase/speech"
)

// speechUseCase is the use case the handler drives.
type speechUseCase = usecase.UseCase[speech.SynthesizeAndUploadInput, speech.SynthesizeAndUploadOutput]

// speechRequest payload. Empty fields fall back to configuration.
type speechRequest struct {
	Text     string `json:"text"`
	Key      string `json:"key,omitempty"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
	Engine   string `json:"engine,omitempty"`
	Format   string `json:"format,omitempty"`
	TextType string `json:"textType,omitempty"`
}

// SpeechHandler bundles dependencies for speech routes.
type SpeechHandler struct {
	uc     speechUseCase
	cfg    *config.Config
	logger *log.Logger
}

func NewSpeechHandler(uc speechUseCase, cfg *config.Config, logger *log.Logger) *SpeechHandler {
	return &SpeechHandler{uc: uc, cfg: cfg, logger: logging.Component(logger, "handler")}
}

// Register registers routes to app.
func (h *SpeechHandler) Register(app *fiber.App) {
	app.Post("/speech", h.synthesize)
}

func (h *SpeechHandler) synthesize(c *fiber.Ctx) error {
	var req speechRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}

	if !safeKey(req.Key) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid key")
	}

	target := h.cfg.Target()
	if req.Key != "" {
		target.Key = audio.ComposeKey(h.cfg.KeyPrefix, req.Key)
	}
	opts := append(h.cfg.SynthesisOptions(),
		tts.WithVoiceID(req.Voice),
		tts.WithLanguageCode(req.Language),
		tts.WithEngine(req.Engine),
		tts.WithOutputFormat(req.Format),
		tts.WithTextType(req.TextType),
	)

	h.logger.Info("synthesize", "key", target.Key, "characters", len([]rune(req.Text)))
	out, err := h.uc.Execute(c.UserContext(), &speech.SynthesizeAndUploadInput{
		Text:    req.Text,
		Target:  target,
		Options: opts,
	})
	if err != nil {
		return fiber.NewError(statusFor(err), errorMessage(err))
	}
	h.logger.Info("synthesize done", "location", out.Location, "bytes", out.Bytes)
	return c.JSON(out)
}

// safeKey rejects absolute keys and keys with a ".." segment. Empty is fine.
func safeKey(key string) bool {
	if strings.HasPrefix(key, "/") || strings.HasPrefix(key, `\`) || filepath.IsAbs(key) || filepath.VolumeName(key) != "" {
		return false
	}
	for _, seg := range strings.FieldsFunc(key, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return false
		}
	}
	return true
}

func statusFor(err error) int {
	switch fault.KindOf(err) {
	case fault.InvalidInput:
		return fiber.StatusBadRequest
	case fault.FileNotFound:
		return fiber.StatusNotFound
	case fault.ClientRequest, fault.Transport, fault.Storage:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return fe.Kind.String() + ": " + fe.Op
	}
	return "internal error"
}
