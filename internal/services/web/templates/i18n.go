package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for web components.
// *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns the translation of key. Without a localizer a string key is
// used as the format; an empty key always yields "".
func T(loc Localizer, key message.Reference, args ...any) string {
	if key == nil || key == "" {
		return ""
	}
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}
