// Package elevenlabs implements providers.SpeechProvider on the ElevenLabs
// text-to-speech API. Any upstream failure yields a nil URL so narration is
// skipped rather than surfaced as an error.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

// Defaults for the ElevenLabs client
const (
	DefaultBaseURL = "https://api.elevenlabs.io/v1/text-to-speech/"
	DefaultModelID = "eleven_multilingual_v2"
)

const (
	stability       = 0.5
	similarityBoost = 0.75
	defaultTimeout  = 30 * time.Second
	audioMIMEType   = "audio/mpeg"
)

// Config configures the ElevenLabs client
type Config struct {
	APIKey         string
	DefaultVoiceID string
	ModelID        string
	BaseURL        string
	HTTPClient     *http.Client
}

// Validate ensures all required settings are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("APIKey", c.APIKey, vb)
	errors.ValidateRequired("DefaultVoiceID", c.DefaultVoiceID, vb)
	return vb.Build()
}

// Provider synthesises speech through ElevenLabs
type Provider struct {
	apiKey  string
	voiceID string
	modelID string
	baseURL string
	client  *http.Client
}

// New creates an ElevenLabs provider
func New(cfg *Config) (*Provider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Provider{
		apiKey:  cfg.APIKey,
		voiceID: cfg.DefaultVoiceID,
		modelID: cfg.ModelID,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
	}
	if p.modelID == "" {
		p.modelID = DefaultModelID
	}
	if p.baseURL == "" {
		p.baseURL = DefaultBaseURL
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: defaultTimeout}
	}
	return p, nil
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type request struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize implements providers.SpeechProvider. An empty voiceID uses
// the configured default. Only a finished ctx is returned as an error.
func (p *Provider) Synthesize(ctx context.Context, text, voiceID string) (*string, error) {
	if voiceID == "" {
		voiceID = p.voiceID
	}

	body, err := json.Marshal(request{
		Text:          text,
		ModelID:       p.modelID,
		VoiceSettings: voiceSettings{Stability: stability, SimilarityBoost: similarityBoost},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode speech request")
	}

	endpoint, err := url.JoinPath(p.baseURL, voiceID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid speech endpoint")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build speech request")
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", audioMIMEType)

	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := errors.FromContext(ctx); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("Speech request failed", "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("Speech service returned an error", "status", resp.StatusCode)
		return nil, nil
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil || len(audio) == 0 {
		slog.Warn("Speech response unreadable", "error", err, "bytes", len(audio))
		return nil, nil
	}

	dataURL := "data:" + audioMIMEType + ";base64," + base64.StdEncoding.EncodeToString(audio)
	return &dataURL, nil
}
