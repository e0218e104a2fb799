package text

import "context"

// Source yields the text to synthesize.
type Source interface {
	Read(ctx context.Context, name string) (string, error)
}
