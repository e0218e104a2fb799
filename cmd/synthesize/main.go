package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"speech-upload-app/internal/bootstrap"
	"speech-upload-app/internal/config"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/logging"
	"speech-upload-app/internal/usecase"
	"speech-upload-app/internal/usecase/speech"
)

type pipeline = usecase.UseCase[speech.SynthesizeAndUploadInput, speech.SynthesizeAndUploadOutput]

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "synthesize",
		Short:         "Synthesize a text file to speech and upload the audio",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configure(cmd)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())

			uc, err := bootstrap.Build(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), uc, bootstrap.Input(cfg))
		},
	}
	cmd.Flags().StringP("file", "f", "", "text file to synthesize (default from TEXT_FILE or speech.txt)")
	cmd.Flags().StringP("key", "k", "", "object key (default from S3_KEY)")
	cmd.Flags().String("prefix", "", "object key prefix (default from S3_KEY_PREFIX)")
	cmd.Flags().StringP("bucket", "b", "", "destination bucket (default from S3_BUCKET_NAME)")
	cmd.Flags().String("voice", "", "voice id (default from POLLY_VOICE_ID)")
	cmd.Flags().String("storage", "", "storage backend: s3, drive or file")
	cmd.Flags().String("synth", "", "synthesis backend: polly or openai")
	return cmd
}

// configure reads the environment, applies flag overrides and validates the result once.
func configure(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	for name, dst := range map[string]*string{
		"file":    &cfg.TextFile,
		"key":     &cfg.Key,
		"prefix":  &cfg.KeyPrefix,
		"bucket":  &cfg.BucketName,
		"voice":   &cfg.VoiceID,
		"storage": &cfg.StorageBackend,
		"synth":   &cfg.SynthBackend,
	} {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
}

// run executes one pipeline pass and prints human-readable status lines to w.
func run(ctx context.Context, w io.Writer, uc pipeline, in *speech.SynthesizeAndUploadInput) error {
	out, err := uc.Execute(ctx, in)
	if err != nil {
		switch fault.KindOf(err) {
		case fault.FileNotFound:
			fmt.Fprintf(w, "Text file %q not found. Nothing was synthesized.\n", in.TextFile)
		case fault.ClientRequest:
			fmt.Fprintln(w, "The synthesis provider rejected the request. Nothing was uploaded.")
		case fault.Transport:
			fmt.Fprintln(w, "The synthesis provider could not be reached. Nothing was uploaded.")
		case fault.Storage:
			fmt.Fprintf(w, "Upload to %q with key %q failed.\n", in.Target.Bucket, in.Target.Key)
		default:
			fmt.Fprintln(w, "Unexpected error, the run was aborted.")
		}
		return err
	}

	if out.RequestID != "" {
		fmt.Fprintf(w, "RequestId: %s\n", out.RequestID)
	}
	fmt.Fprintf(w, "ContentType: %s\n", out.ContentType)
	if !out.Uploaded {
		fmt.Fprintln(w, "No audio stream returned in the response.")
		return nil
	}
	fmt.Fprintf(w, "Audio stream uploaded successfully to %s (%d bytes).\n", out.Location, out.Bytes)
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
