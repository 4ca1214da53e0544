// Package fireworks implements providers.ImageProvider on the Fireworks AI
// flux text-to-image workflow. Images come back as data URLs.
package fireworks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"mime"
	"net/http"
	"time"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// DefaultBaseURL is the flux-1-schnell text-to-image endpoint
const DefaultBaseURL = "https://api.fireworks.ai/inference/v1/workflows/accounts/fireworks/models/flux-1-schnell-fp8/text_to_image"

const (
	guidanceScale     = 3.5
	inferenceSteps    = 4
	maxSeed           = 1000000
	defaultTimeout    = 60 * time.Second
	defaultContent    = "image/png"
	maxErrorBodyBytes = 1024
)

// Config configures the Fireworks client
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	// Seed picks the generation seed; random when nil
	Seed func() int
}

// Validate ensures all required settings are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("APIKey", c.APIKey, vb)
	return vb.Build()
}

// Provider generates images through Fireworks
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	seed    func() int
}

// New creates a Fireworks provider
func New(cfg *Config) (*Provider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Provider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		seed:    cfg.Seed,
	}
	if p.baseURL == "" {
		p.baseURL = DefaultBaseURL
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: defaultTimeout}
	}
	if p.seed == nil {
		p.seed = func() int { return rand.IntN(maxSeed) }
	}
	return p, nil
}

type request struct {
	Prompt            string  `json:"prompt"`
	AspectRatio       string  `json:"aspect_ratio"`
	GuidanceScale     float64 `json:"guidance_scale"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	Seed              int     `json:"seed"`
}

// Generate implements providers.ImageProvider. The workflow has no image
// input, so a reference image is dropped.
func (p *Provider) Generate(ctx context.Context, req providers.ImageRequest) (string, error) {
	if req.Prompt == "" {
		return "", errors.InvalidArgument("prompt is required")
	}
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = providers.AspectSquare
	}
	if req.ReferenceImage != "" {
		slog.Debug("Reference image not supported by flux text-to-image, ignoring")
	}

	body, err := json.Marshal(request{
		Prompt:            req.Prompt,
		AspectRatio:       aspect,
		GuidanceScale:     guidanceScale,
		NumInferenceSteps: inferenceSteps,
		Seed:              p.seed(),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode image request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build image request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", defaultContent)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if ctxErr := errors.FromContext(ctx); ctxErr != nil {
			return "", ctxErr
		}
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "image request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", errors.FromHTTPStatus(resp.StatusCode, "image generation failed").
			WithMeta("detail", string(detail))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read image")
	}
	if len(data) == 0 {
		return "", errors.Unavailable("image service returned no data")
	}

	return DataURL(resp.Header.Get("Content-Type"), data), nil
}

// DataURL encodes data as a base64 data URL. An empty or unparsable content
// type falls back to image/png.
func DataURL(contentType string, data []byte) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" {
		mediaType = defaultContent
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
