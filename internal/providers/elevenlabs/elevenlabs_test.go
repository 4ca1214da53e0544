package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(&Config{
		APIKey:         "xi_test",
		DefaultVoiceID: "narrator-voice",
		BaseURL:        server.URL + "/v1/text-to-speech/",
		HTTPClient:     server.Client(),
	})
	require.NoError(t, err)
	return p
}

func TestSynthesize(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/narrator-voice", r.URL.Path)
		assert.Equal(t, "xi_test", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		var body request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "The torch gutters.", body.Text)
		assert.Equal(t, DefaultModelID, body.ModelID)
		assert.Equal(t, 0.75, body.VoiceSettings.SimilarityBoost)

		_, _ = w.Write([]byte("mp3"))
	})

	url, err := p.Synthesize(context.Background(), "The torch gutters.", "")
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, "data:audio/mpeg;base64,bXAz", *url)
}

func TestSynthesize_VoiceOverride(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/villain", r.URL.Path)
		_, _ = w.Write([]byte("mp3"))
	})

	url, err := p.Synthesize(context.Background(), "Kneel.", "villain")
	require.NoError(t, err)
	assert.NotNil(t, url)
}

func TestSynthesize_UnavailableIsNil(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "quota exceeded",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "empty audio",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestProvider(t, tc.handler)
			url, err := p.Synthesize(context.Background(), "Hello.", "")
			assert.NoError(t, err)
			assert.Nil(t, url)
		})
	}
}

func TestSynthesize_CanceledContext(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Synthesize(ctx, "Hello.", "")
	assert.True(t, errors.IsCanceled(err))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(&Config{APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DefaultVoiceID")
}
