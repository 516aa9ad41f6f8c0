// Package blob abstracts the proof-of-payment file store. The core treats the
// file as an opaque byte blob; MIME enforcement happens upstream.
package blob

import "context"

type Store interface {
	// Store persists the bytes and returns an opaque retrievable reference.
	Store(ctx context.Context, data []byte, suggestedName string) (ref string, err error)
	// URLFor resolves a reference to a retrievable URL. Failures degrade to
	// an empty URL; they never abort the caller's transaction.
	URLFor(ref string) string
}
