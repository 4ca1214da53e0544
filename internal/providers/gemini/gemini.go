// Package gemini implements providers.CompletionProvider on the Google
// Gemini API.
package gemini

import (
	"context"
	goerrors "errors"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// Defaults applied when a call leaves the option unset
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = float32(0.7)
	DefaultMaxTokens   = int32(8000)
)

const jsonMIMEType = "application/json"

// Config configures the Gemini client
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Validate ensures all required settings are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("APIKey", c.APIKey, vb)
	return vb.Build()
}

// Provider sends conversations to Gemini
type Provider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// New creates a Gemini provider. Close releases the underlying client.
func New(ctx context.Context, cfg *Config) (*Provider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create gemini client")
	}

	p := &Provider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if p.model == "" {
		p.model = DefaultModel
	}
	if p.temperature <= 0 {
		p.temperature = DefaultTemperature
	}
	if p.maxTokens <= 0 {
		p.maxTokens = DefaultMaxTokens
	}
	return p, nil
}

// Close releases the client
func (p *Provider) Close() error {
	return p.client.Close()
}

// Complete implements providers.CompletionProvider
func (p *Provider) Complete(ctx context.Context, messages []providers.Message, opts providers.CompletionOptions) (string, error) {
	c, err := buildChat(messages)
	if err != nil {
		return "", err
	}

	model := p.client.GenerativeModel(p.model)
	model.SystemInstruction = c.system
	model.SetTemperature(p.temperature)
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	model.SetMaxOutputTokens(p.maxTokens)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxTokens)
	}
	if opts.JSONMode {
		model.ResponseMIMEType = jsonMIMEType
	}

	session := model.StartChat()
	session.History = c.history

	slog.Debug("Sending completion", "model", p.model, "history", len(c.history), "json", opts.JSONMode)

	resp, err := session.SendMessage(ctx, c.prompt...)
	if err != nil {
		return "", classify(ctx, err)
	}
	return responseText(resp)
}

type chat struct {
	system  *genai.Content
	history []*genai.Content
	prompt  []genai.Part
}

// buildChat fuses system messages into the system instruction and maps the
// rest onto Gemini roles. The final message must come from the user.
func buildChat(messages []providers.Message) (*chat, error) {
	var system []string
	var turns []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case providers.RoleSystem:
			system = append(system, m.Content)
		case providers.RoleUser:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		case providers.RoleAssistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			return nil, errors.InvalidArgumentf("unknown message role %q", m.Role)
		}
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != "user" {
		return nil, errors.InvalidArgument("conversation must end with a user message")
	}

	c := &chat{
		history: turns[:len(turns)-1],
		prompt:  turns[len(turns)-1].Parts,
	}
	if len(system) > 0 {
		c.system = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))}}
	}
	return c, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.Unavailable("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.Unavailable("gemini returned an empty response")
	}
	return b.String(), nil
}

func classify(ctx context.Context, err error) error {
	if ctxErr := errors.FromContext(ctx); ctxErr != nil {
		return ctxErr
	}

	var blocked *genai.BlockedError
	if goerrors.As(err, &blocked) {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "gemini blocked the request")
	}

	var apiErr *googleapi.Error
	if goerrors.As(err, &apiErr) {
		return errors.WrapWithCode(err, errors.CodeFromHTTPStatus(apiErr.Code), "gemini request failed").
			WithMeta("http_status", apiErr.Code)
	}

	return errors.WrapWithCode(err, errors.CodeUnavailable, "gemini request failed")
}
