package media

import (
	"time"
)

// SceneImage is one generated scene illustration. Index starts at 1 and
// follows generation order.
type SceneImage struct {
	Index       int
	Prompt      string
	URL         string
	GeneratedAt time.Time
}

// Narration is one synthesised speech chunk
type Narration struct {
	Index       int
	Text        string
	URL         string
	GeneratedAt time.Time
}
