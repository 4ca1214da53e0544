package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleTag(t *testing.T) {
	assert.Equal(t, "8-bit pixel art", StyleTag("pixel", ImageKindScene))
	assert.Equal(t, "watercolor illustration icon", StyleTag("watercolor", ImageKindIcon))
	assert.Equal(t, "anime style illustration character avatar", StyleTag("anime", ImageKindAvatar))
	assert.Equal(t, "8-bit pixel art icon", StyleTag("unknown", ImageKindIcon))
}

func TestIconRequest(t *testing.T) {
	req := IconRequest("a rusty key", "pixel")
	assert.Equal(t, "a rusty key, 8-bit pixel art icon, simple, white background", req.Prompt)
	assert.Equal(t, AspectSquare, req.AspectRatio)
	assert.Empty(t, req.ReferenceImage)
}

func TestAvatarRequest(t *testing.T) {
	req := AvatarRequest("an old wizard", "oil")
	assert.Equal(t, "an old wizard, oil painting character avatar", req.Prompt)
	assert.Equal(t, AspectSquare, req.AspectRatio)
}

func TestSceneRequest(t *testing.T) {
	req := SceneRequest("a dark cave", "sketch", "")
	assert.Equal(t, "a dark cave, pencil sketch", req.Prompt)
	assert.Equal(t, AspectLandscape, req.AspectRatio)

	req = SceneRequest("a dark cave", "sketch", "data:image/png;base64,AAA")
	assert.Equal(t, "a dark cave, pencil sketch, keep main hero face consistent", req.Prompt)
	assert.Equal(t, "data:image/png;base64,AAA", req.ReferenceImage)
}

func TestImageStyles(t *testing.T) {
	assert.Equal(t, []string{"anime", "isometric", "oil", "photo", "pixel", "sketch", "watercolor"}, ImageStyles())
}
