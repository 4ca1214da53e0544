package turn

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/prompts"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// FallbackMessage is shown when a response cannot be parsed by any strategy
const FallbackMessage = "The Dungeon Master's thoughts are scrambled. Please try again."

// Strategy names the parse step that produced a payload
type Strategy string

// Parse strategies, tried in order
const (
	StrategyDirect     Strategy = "direct"
	StrategyExtraction Strategy = "extraction"
	StrategyRepair     Strategy = "repair"
)

var (
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	fencePattern  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// ParserConfig configures a Parser
type ParserConfig struct {
	// Repairer is asked to fix JSON the local strategies could not read.
	// Without one, parsing stops after extraction.
	Repairer providers.CompletionProvider
}

// Validate is a no-op today; every field is optional
func (c *ParserConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	return nil
}

// Parser turns raw model text into a Payload: direct parse, then greedy
// object extraction, then one model-assisted repair.
type Parser struct {
	repairer providers.CompletionProvider
}

// NewParser creates a Parser
func NewParser(cfg *ParserConfig) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid parser config")
	}
	return &Parser{repairer: cfg.Repairer}, nil
}

// StripFences removes a surrounding markdown code fence, if any
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if match := fencePattern.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return text
}

// ExtractObject returns the greedy first-'{'-to-last-'}' substring
func ExtractObject(text string) (string, bool) {
	match := objectPattern.FindString(text)
	return match, match != ""
}

func parseLocal(text string) (*Payload, Strategy, error) {
	p, err := decodePayload([]byte(StripFences(text)))
	if err == nil {
		return p, StrategyDirect, nil
	}

	object, ok := ExtractObject(text)
	if !ok {
		return nil, "", err
	}
	p, err = decodePayload([]byte(object))
	if err != nil {
		return nil, "", err
	}
	return p, StrategyExtraction, nil
}

// Parse decodes raw. A failure of every strategy returns an Aborted error;
// callers then show FallbackMessage and leave game state untouched.
func (p *Parser) Parse(ctx context.Context, raw string) (*Payload, Strategy, error) {
	payload, strategy, localErr := parseLocal(raw)
	if localErr == nil {
		return payload, strategy, nil
	}

	slog.Warn("Turn response is not valid JSON", "error", localErr, "length", len(raw))

	if p.repairer == nil {
		return nil, "", errors.WrapWithCode(localErr, errors.CodeAborted, "turn response could not be parsed")
	}

	fixed, err := p.repairer.Complete(ctx, []providers.Message{
		{Role: providers.RoleSystem, Content: prompts.Repair()},
		{Role: providers.RoleUser, Content: raw},
	}, providers.CompletionOptions{JSONMode: true})
	if err != nil {
		return nil, "", errors.WrapWithCode(err, errors.CodeAborted, "turn response repair failed")
	}

	payload, _, err = parseLocal(fixed)
	if err != nil {
		slog.Error("Repaired turn response is still invalid", "error", err)
		return nil, "", errors.WrapWithCode(err, errors.CodeAborted, "turn response could not be parsed")
	}

	slog.Info("Recovered turn response via repair")
	return payload, StrategyRepair, nil
}
