package types

import "fmt"

// Intent is a menu action requested by the player.
type Intent int

// Menu intents.
const (
	IntentNewGame Intent = iota + 1
	IntentShuffle
	IntentQuit
	IntentAbout
)

// intentTags maps menu button tags to intents.
var intentTags = map[string]Intent{
	"new_game": IntentNewGame,
	"shuffle":  IntentShuffle,
	"quit":     IntentQuit,
	"about":    IntentAbout,
}

// ParseIntent converts a menu button tag into an Intent.
// Returns ErrUnknownIntent for any other tag.
func ParseIntent(tag string) (Intent, error) {
	if in, ok := intentTags[tag]; ok {
		return in, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, tag)
}

// String returns the menu tag of the intent.
func (i Intent) String() string {
	for tag, in := range intentTags {
		if in == i {
			return tag
		}
	}
	return fmt.Sprintf("intent(%d)", int(i))
}
