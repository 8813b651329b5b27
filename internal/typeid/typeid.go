package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser    = "user"
	PrefixDrawing = "drawing"
	PrefixClip    = "clip"
	PrefixSession = "session"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string    { return New(PrefixUser) }
func NewDrawingID() string { return New(PrefixDrawing) }
func NewSessionID() string { return New(PrefixSession) }

// NewClipID returns a document-unique clip path id. Type ids are valid XML
// names, so they can be used as SVG element ids as-is.
func NewClipID() string { return New(PrefixClip) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
