package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntry(t *testing.T) {
	e := ReadEntry(`{"narrative":"The bridge sways.","image_prompt":"rope bridge","location_type":"mountain","new_items":[]}`)
	assert.True(t, e.Structured)
	assert.Equal(t, "The bridge sways.", e.Narrative)
	assert.Equal(t, "rope bridge", e.ImagePrompt)
	assert.Equal(t, "mountain", e.LocationType)

	legacy := ReadEntry("You enter the cave.")
	assert.False(t, legacy.Structured)
	assert.Equal(t, "You enter the cave.", legacy.Narrative)
}

func TestRewriteNarrative(t *testing.T) {
	out, err := RewriteNarrative(`{"narrative":"old","xp":{"a":1}}`, `new "quoted"`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"narrative":"new \"quoted\"","xp":{"a":1}}`, out)

	out, err = RewriteNarrative("plain old text", "plain new text")
	require.NoError(t, err)
	assert.Equal(t, "plain new text", out)
}
