package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestDefaults(t *testing.T) {
	r := NewRequest("Hello world.")

	assert.Equal(t, Request{
		Text:         "Hello world.",
		Engine:       "generative",
		LanguageCode: "en-US",
		OutputFormat: "mp3",
		TextType:     "text",
		VoiceID:      "Ruth",
	}, r)
}

func TestNewRequestOverrides(t *testing.T) {
	r := NewRequest("<speak>hi</speak>",
		WithEngine("neural"),
		WithTextType("ssml"),
		WithVoiceID(""),
	)

	assert.Equal(t, "neural", r.Engine)
	assert.Equal(t, "ssml", r.TextType)
	assert.Equal(t, "Ruth", r.VoiceID, "empty override keeps default")
}

func TestContentTypeFor(t *testing.T) {
	for format, want := range map[string]string{
		"mp3":        "audio/mpeg",
		"":           "audio/mpeg",
		"ogg_vorbis": "audio/ogg",
		"ogg_opus":   "audio/ogg",
		"pcm":        "audio/pcm",
		"json":       "application/x-json-stream",
	} {
		assert.Equal(t, want, ContentTypeFor(format), format)
	}
}
