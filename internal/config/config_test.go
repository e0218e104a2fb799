package config

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/tts"
)

func parse(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	return Parse(env.Options{Environment: vars})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "speech.txt", cfg.TextFile)
	assert.Equal(t, "polly", cfg.SynthBackend)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "secrets/credentials.json", cfg.CredentialsPath)
	assert.Equal(t, audio.Target{Bucket: "acmelabs-aws-polly-synthesize", Key: "speech.mp3"}, cfg.Target())
	assert.Equal(t, tts.NewRequest("hi"), cfg.Request("hi"))
}

func TestObjectKeyWithPrefix(t *testing.T) {
	cfg, err := parse(t, map[string]string{
		"S3_BUCKET_NAME": "voices",
		"S3_KEY_PREFIX":  "daily/",
		"S3_KEY":         "brief.mp3",
	})
	require.NoError(t, err)

	assert.Equal(t, "daily/brief.mp3", cfg.ObjectKey())
	assert.Equal(t, audio.Target{Bucket: "voices", Key: "daily/brief.mp3"}, cfg.Target())
}

func TestTargetPerBackend(t *testing.T) {
	cfg, err := parse(t, map[string]string{"STORAGE_BACKEND": "file", "AUDIO_DIR": "out"})
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Target().Bucket)

	cfg, err = parse(t, map[string]string{"STORAGE_BACKEND": "drive", "DRIVE_FOLDER_ID": "folder-1"})
	require.NoError(t, err)
	assert.Equal(t, "folder-1", cfg.Target().Bucket)
}

func TestRequestOverrides(t *testing.T) {
	cfg, err := parse(t, map[string]string{
		"POLLY_ENGINE":   "neural",
		"POLLY_VOICE_ID": "Joanna",
	})
	require.NoError(t, err)

	req := cfg.Request("hi")
	assert.Equal(t, "neural", req.Engine)
	assert.Equal(t, "Joanna", req.VoiceID)
	assert.Equal(t, "en-US", req.LanguageCode)
}

func TestValidate(t *testing.T) {
	_, err := parse(t, map[string]string{"SYNTH_BACKEND": "espeak"})
	assert.ErrorContains(t, err, `unknown SYNTH_BACKEND "espeak"`)

	_, err = parse(t, map[string]string{"STORAGE_BACKEND": "ftp"})
	assert.ErrorContains(t, err, `unknown STORAGE_BACKEND "ftp"`)

	_, err = parse(t, map[string]string{"S3_KEY": " "})
	assert.ErrorContains(t, err, "S3_KEY must not be empty")
}

func TestReadSkipsValidation(t *testing.T) {
	t.Setenv("SYNTH_BACKEND", "polly")
	t.Setenv("STORAGE_BACKEND", "ftp")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "ftp", cfg.StorageBackend)
	assert.Error(t, cfg.Validate())

	_, err = Load()
	assert.ErrorContains(t, err, `unknown STORAGE_BACKEND "ftp"`)
}
