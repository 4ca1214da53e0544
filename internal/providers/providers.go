// Package providers defines the external generation services the narrator
// depends on. The game engine only sees these interfaces; concrete clients
// live in the gemini, fireworks and elevenlabs subpackages.
package providers

import (
	"context"
	"fmt"
	"slices"
)

//go:generate mockgen -destination=mock/mock_providers.go -package=providersmock github.com/KirkDiggler/rpg-narrator/internal/providers CompletionProvider,ImageProvider,SpeechProvider

// Role of a conversation message
type Role string

// Conversation roles
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a completion conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions tune a single completion call
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int32
	JSONMode    bool
}

// CompletionProvider produces model text for a conversation
type CompletionProvider interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}

// Aspect ratios used by the game
const (
	AspectSquare    = "1:1"
	AspectLandscape = "16:9"
)

// ImageRequest describes one image to generate. ReferenceImage optionally
// carries a data URL used to keep the hero's face consistent.
type ImageRequest struct {
	Prompt         string
	AspectRatio    string
	ReferenceImage string
}

// ImageProvider turns a prompt into an image URL (http or data URL)
type ImageProvider interface {
	Generate(ctx context.Context, req ImageRequest) (string, error)
}

// SpeechProvider synthesises narration. A nil URL with a nil error means the
// service is unavailable and the line should be skipped.
type SpeechProvider interface {
	Synthesize(ctx context.Context, text, voiceID string) (*string, error)
}

// ImageKind selects the suffix added to the style tag
type ImageKind string

// Image kinds
const (
	ImageKindScene  ImageKind = "scene"
	ImageKindIcon   ImageKind = "icon"
	ImageKindAvatar ImageKind = "avatar"
)

var styleBases = map[string]string{
	"pixel":      "8-bit pixel art",
	"isometric":  "isometric pixel art",
	"watercolor": "watercolor illustration",
	"oil":        "oil painting",
	"photo":      "photorealistic",
	"anime":      "anime style illustration",
	"sketch":     "pencil sketch",
}

// ImageStyles lists the art styles StyleTag knows, sorted
func ImageStyles() []string {
	styles := make([]string, 0, len(styleBases))
	for style := range styleBases {
		styles = append(styles, style)
	}
	slices.Sort(styles)
	return styles
}

// StyleTag returns the prompt suffix for an art style; unknown styles fall
// back to pixel art.
func StyleTag(style string, kind ImageKind) string {
	base, ok := styleBases[style]
	if !ok {
		base = styleBases["pixel"]
	}
	switch kind {
	case ImageKindIcon:
		return base + " icon"
	case ImageKindAvatar:
		return base + " character avatar"
	default:
		return base
	}
}

// IconRequest builds the square icon request for an entity icon prompt
func IconRequest(iconPrompt, style string) ImageRequest {
	return ImageRequest{
		Prompt:      fmt.Sprintf("%s, %s, simple, white background", iconPrompt, StyleTag(style, ImageKindIcon)),
		AspectRatio: AspectSquare,
	}
}

// SceneRequest builds the landscape request for a scene prompt
func SceneRequest(prompt, style, reference string) ImageRequest {
	p := prompt + ", " + StyleTag(style, ImageKindScene)
	if reference != "" {
		p += ", keep main hero face consistent"
	}
	return ImageRequest{Prompt: p, AspectRatio: AspectLandscape, ReferenceImage: reference}
}

// AvatarRequest builds the square portrait request for a party member
func AvatarRequest(iconPrompt, style string) ImageRequest {
	return ImageRequest{
		Prompt:      fmt.Sprintf("%s, %s", iconPrompt, StyleTag(style, ImageKindAvatar)),
		AspectRatio: AspectSquare,
	}
}
