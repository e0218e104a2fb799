// Package bootstrap turns a Config into a ready SynthesizeAndUpload use case.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/charmbracelet/log"

	"speech-upload-app/internal/config"
	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/tts"
	"speech-upload-app/internal/infrastructure/awsclient"
	"speech-upload-app/internal/infrastructure/drive"
	"speech-upload-app/internal/infrastructure/googleauth"
	"speech-upload-app/internal/infrastructure/httplog"
	"speech-upload-app/internal/infrastructure/storage"
	"speech-upload-app/internal/infrastructure/storage/s3"
	"speech-upload-app/internal/infrastructure/textfile"
	openaitts "speech-upload-app/internal/infrastructure/tts/openai"
	"speech-upload-app/internal/infrastructure/tts/polly"
	"speech-upload-app/internal/usecase/speech"
)

// Build wires the synthesizer and store selected by cfg.
func Build(ctx context.Context, cfg *config.Config, logger *log.Logger) (*speech.SynthesizeAndUpload, error) {
	httpClient := httplog.Client(cfg.HTTPDebug, logger)

	needAWS := cfg.SynthBackend == "polly" || cfg.StorageBackend == "s3"
	var awsOpts awsclient.Options
	if needAWS {
		awsOpts = awsclient.Options{
			Region:      cfg.AWSRegion,
			Profile:     cfg.AWSProfile,
			EndpointURL: cfg.AWSEndpointURL,
			Debug:       cfg.HTTPDebug,
			Logger:      logger,
		}
	}
	awsCfg, err := loadAWS(ctx, needAWS, awsOpts)
	if err != nil {
		return nil, err
	}

	var synth tts.Synthesizer
	switch cfg.SynthBackend {
	case "polly":
		synth = polly.NewFromConfig(awsCfg, logger)
	case "openai":
		synth, err = openaitts.NewSynthesizer(openaitts.Options{
			APIKey:     cfg.OpenAIAPIKey,
			SecretsDir: cfg.SecretsDir,
			Model:      cfg.OpenAITTSModel,
			Voice:      cfg.OpenAITTSVoice,
			HTTPClient: httpClient,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("tts synthesizer init: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown synth backend %q", cfg.SynthBackend)
	}

	var store audio.Store
	switch cfg.StorageBackend {
	case "s3":
		store = s3.NewFromConfig(awsCfg, cfg.S3UsePathStyle, logger)
	case "drive":
		srv, err := googleauth.BuildDriveService(ctx, cfg.CredentialsPath, httpClient)
		if err != nil {
			return nil, fmt.Errorf("drive init: %w", err)
		}
		store = drive.NewUploader(srv, logger)
	case "file":
		store = storage.NewFileStore(cfg.AudioDir, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return speech.NewSynthesizeAndUpload(textfile.NewSource("", logger), synth, store, logger), nil
}

func loadAWS(ctx context.Context, need bool, o awsclient.Options) (aws.Config, error) {
	if !need {
		return aws.Config{}, nil
	}
	return awsclient.Load(ctx, o)
}

// Input builds the use case input for a run over the configured text file.
func Input(cfg *config.Config) *speech.SynthesizeAndUploadInput {
	return &speech.SynthesizeAndUploadInput{
		TextFile: cfg.TextFile,
		Target:   cfg.Target(),
		Options:  cfg.SynthesisOptions(),
	}
}
