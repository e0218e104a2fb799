package audio

import "context"

// ContentTypeMPEG is the MIME type of mp3 audio.
const ContentTypeMPEG = "audio/mpeg"

// Location is the saved location of audio (object URI, local path or URL).
// An empty Location means nothing was stored.
type Location string

// Target names where audio goes: a bucket/container (or folder) and an object key.
type Target struct {
	Bucket string
	Key    string
}

// Object is the payload handed to a Store.
type Object struct {
	Data        []byte
	ContentType string
}

// Store persists synthesized audio.
type Store interface {
	// Save persists obj at target and returns where it landed.
	// Implementations treat empty data as a no-op and return an empty Location.
	Save(ctx context.Context, obj Object, target Target) (Location, error)
}

// ComposeKey joins prefix and key. The bare key is returned unless both are set.
func ComposeKey(prefix, key string) string {
	if prefix == "" || key == "" {
		return key
	}
	return prefix + key
}
