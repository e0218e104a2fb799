package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/tts"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	TextFile       string `env:"TEXT_FILE" envDefault:"speech.txt"`
	SynthBackend   string `env:"SYNTH_BACKEND" envDefault:"polly"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"s3"`

	BucketName string `env:"S3_BUCKET_NAME" envDefault:"acmelabs-aws-polly-synthesize"`
	KeyPrefix  string `env:"S3_KEY_PREFIX"`
	Key        string `env:"S3_KEY" envDefault:"speech.mp3"`

	AWSRegion      string `env:"AWS_REGION"`
	AWSProfile     string `env:"AWS_PROFILE"`
	AWSEndpointURL string `env:"AWS_ENDPOINT_URL"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`

	Engine       string `env:"POLLY_ENGINE" envDefault:"generative"`
	LanguageCode string `env:"POLLY_LANGUAGE_CODE" envDefault:"en-US"`
	OutputFormat string `env:"POLLY_OUTPUT_FORMAT" envDefault:"mp3"`
	TextType     string `env:"POLLY_TEXT_TYPE" envDefault:"text"`
	VoiceID      string `env:"POLLY_VOICE_ID" envDefault:"Ruth"`

	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAITTSModel string `env:"OPENAI_TTS_MODEL" envDefault:"tts-1"`
	OpenAITTSVoice string `env:"OPENAI_TTS_VOICE" envDefault:"alloy"`

	SecretsDir      string `env:"SECRETS_DIR" envDefault:"secrets"`
	CredentialsPath string `env:"GOOGLE_CREDENTIALS"`
	DriveFolderID   string `env:"DRIVE_FOLDER_ID"`
	AudioDir        string `env:"AUDIO_DIR" envDefault:"audio"`

	HTTPDebug  bool   `env:"HTTP_DEBUG" envDefault:"false"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
}

// Load reads .env (if present) and the environment and returns a validated Config.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that override fields
// (command-line flags) before calling Validate themselves.
func Read() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return decode(env.Options{})
}

// Parse builds a validated Config from the process environment, or from opts.Environment when set.
func Parse(opts env.Options) (*Config, error) {
	cfg, err := decode(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = filepath.Join(cfg.SecretsDir, "credentials.json")
	}
	return &cfg, nil
}

// Validate rejects combinations the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.SynthBackend {
	case "polly", "openai":
	default:
		errs = append(errs, fmt.Errorf("unknown SYNTH_BACKEND %q", c.SynthBackend))
	}
	switch c.StorageBackend {
	case "s3":
		if strings.TrimSpace(c.BucketName) == "" {
			errs = append(errs, errors.New("S3_BUCKET_NAME is required for the s3 backend"))
		}
	case "drive", "file":
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	if strings.TrimSpace(c.Key) == "" {
		errs = append(errs, errors.New("S3_KEY must not be empty"))
	}
	return errors.Join(errs...)
}

// ObjectKey is the destination key: prefix + key, or the bare key without a prefix.
func (c *Config) ObjectKey() string {
	return audio.ComposeKey(c.KeyPrefix, c.Key)
}

// Target returns the upload destination for the configured storage backend.
func (c *Config) Target() audio.Target {
	bucket := c.BucketName
	switch c.StorageBackend {
	case "drive":
		bucket = c.DriveFolderID
	case "file":
		bucket = c.AudioDir
	}
	return audio.Target{Bucket: bucket, Key: c.ObjectKey()}
}

// SynthesisOptions returns the configured synthesis parameters.
func (c *Config) SynthesisOptions() []tts.Option {
	return []tts.Option{
		tts.WithEngine(c.Engine),
		tts.WithLanguageCode(c.LanguageCode),
		tts.WithOutputFormat(c.OutputFormat),
		tts.WithTextType(c.TextType),
		tts.WithVoiceID(c.VoiceID),
	}
}

// Request builds the synthesis request for text using the configured parameters.
func (c *Config) Request(text string) tts.Request {
	return tts.NewRequest(text, c.SynthesisOptions()...)
}
