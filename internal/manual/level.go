package manual

import (
	"fmt"
	"strings"
)

// Level is the reader's technical proficiency tier.
type Level string

const (
	LevelBasico     Level = "basico"
	LevelIntermedio Level = "intermedio"
	LevelAvanzado   Level = "avanzado"
)

// Levels lists every level in increasing technical depth.
var Levels = []Level{LevelBasico, LevelIntermedio, LevelAvanzado}

// ParseLevel converts a string into a Level. Matching ignores case and surrounding spaces.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return l.rank() >= 0
}

// Less reports whether l is shallower than other.
func (l Level) Less(other Level) bool {
	return l.rank() < other.rank()
}

func (l Level) rank() int {
	for i, known := range Levels {
		if l == known {
			return i
		}
	}
	return -1
}

func (l Level) String() string {
	return string(l)
}

// ResolveContent returns the subsection content for level, falling back to basico
// when that level has no variant.
func ResolveContent[C any](sub Subsection[C], level Level) C {
	if c, ok := sub.Content[level]; ok {
		return c
	}
	return sub.Content[LevelBasico]
}

// AvailableLevels returns the levels that have their own content variant, shallowest first.
func AvailableLevels[C any](sub Subsection[C]) []Level {
	levels := make([]Level, 0, len(Levels))
	for _, l := range Levels {
		if _, ok := sub.Content[l]; ok {
			levels = append(levels, l)
		}
	}
	return levels
}
