// Package media executes the presentation side effects a turn requests:
// scene illustrations and narrated speech. It subscribes to intents on the
// event bus and works them off in background queues so a turn never waits
// on image or audio generation. Nothing here reads or writes game state.
package media

//go:generate mockgen -destination=mock/mock_service.go -package=mediamock github.com/KirkDiggler/rpg-narrator/internal/orchestrators/media Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// Service defines the media operations
type Service interface {
	// Subscribe registers the intent handlers on bus and returns a func
	// that removes them
	Subscribe(bus events.EventBus) func()

	// Start launches the scene and speech workers
	Start(ctx context.Context)

	// Close stops the workers and drops anything still queued
	Close()

	EnqueueScene(prompt string)

	// EnqueueSpeech splits text into chunks and queues them. Returns the
	// number of chunks queued, zero while speech is disabled.
	EnqueueSpeech(text string) int

	// WaitIdle blocks until both queues are empty with nothing in flight
	WaitIdle(ctx context.Context) error

	Gallery() []SceneImage
	Narrations() []Narration

	SetSpeechEnabled(enabled bool)
	SpeechEnabled() bool

	// SetReferenceImage sets the hero portrait data URL sent with scene
	// requests to keep the face consistent
	SetReferenceImage(dataURL string)
}

// Config holds the dependencies for the media orchestrator
type Config struct {
	Images providers.ImageProvider
	Clock  clock.Clock

	// Speech is required when SpeechEnabled is set
	Speech        providers.SpeechProvider
	SpeechEnabled bool
	VoiceID       string

	ImageStyle string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Images == nil {
		vb.RequiredField("Images")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.SpeechEnabled && c.Speech == nil {
		vb.Field("Speech", "is required when speech is enabled")
	}

	return vb.Build()
}

type orchestrator struct {
	images  providers.ImageProvider
	speech  providers.SpeechProvider
	clock   clock.Clock
	voiceID string
	style   string

	scenes *queue[string]
	lines  *queue[string]

	mu            sync.Mutex
	speechEnabled bool
	reference     string
	gallery       []SceneImage
	narrations    []Narration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates a new media orchestrator. Call Start before
// publishing intents.
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		images:        cfg.Images,
		speech:        cfg.Speech,
		clock:         cfg.Clock,
		voiceID:       cfg.VoiceID,
		style:         cfg.ImageStyle,
		speechEnabled: cfg.SpeechEnabled,
		scenes:        newQueue[string](),
		lines:         newQueue[string](),
	}, nil
}

func (o *orchestrator) Subscribe(bus events.EventBus) func() {
	ids := []string{
		bus.SubscribeFunc(intents.EventType(intents.KindSceneImage), 0, o.handleIntent),
		bus.SubscribeFunc(intents.EventType(intents.KindMessage), 0, o.handleIntent),
	}
	return func() {
		for _, id := range ids {
			if err := bus.Unsubscribe(id); err != nil {
				slog.Warn("Failed to unsubscribe media handler", "subscription", id, "error", err)
			}
		}
	}
}

func (o *orchestrator) handleIntent(_ context.Context, e events.Event) error {
	in, ok := intents.FromEvent(e)
	if !ok {
		return nil
	}

	switch in.Kind {
	case intents.KindSceneImage:
		o.EnqueueScene(in.Prompt)
	case intents.KindMessage:
		if in.Sender == intents.SenderAI {
			o.EnqueueSpeech(in.Text)
		}
	}
	return nil
}

func (o *orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		return
	}

	ctx, o.cancel = context.WithCancel(ctx)
	o.wg.Add(2)
	go func() {
		defer o.wg.Done()
		o.scenes.run(ctx, o.generateScene)
	}()
	go func() {
		defer o.wg.Done()
		o.lines.run(ctx, o.speak)
	}()
}

func (o *orchestrator) Close() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	o.wg.Wait()

	dropped := o.scenes.clear() + o.lines.clear()
	if dropped > 0 {
		slog.Info("Media stopped with queued work", "dropped", dropped)
	}
}

func (o *orchestrator) EnqueueScene(prompt string) {
	if prompt == "" {
		return
	}
	o.scenes.push(prompt)
}

func (o *orchestrator) EnqueueSpeech(text string) int {
	if !o.SpeechEnabled() {
		return 0
	}
	chunks := SplitSpeech(text)
	o.lines.push(chunks...)
	return len(chunks)
}

func (o *orchestrator) WaitIdle(ctx context.Context) error {
	for _, ch := range []<-chan struct{}{o.scenes.idleCh(), o.lines.idleCh()} {
		select {
		case <-ctx.Done():
			return errors.FromContext(ctx)
		case <-ch:
		}
	}
	return nil
}

func (o *orchestrator) Gallery() []SceneImage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]SceneImage, len(o.gallery))
	copy(out, o.gallery)
	return out
}

func (o *orchestrator) Narrations() []Narration {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Narration, len(o.narrations))
	copy(out, o.narrations)
	return out
}

// SetSpeechEnabled toggles narration. Disabling drops queued chunks.
func (o *orchestrator) SetSpeechEnabled(enabled bool) {
	o.mu.Lock()
	if enabled && o.speech == nil {
		o.mu.Unlock()
		slog.Warn("Speech requested without a speech provider")
		return
	}
	o.speechEnabled = enabled
	o.mu.Unlock()

	if !enabled {
		if n := o.lines.clear(); n > 0 {
			slog.Debug("Dropped queued narration", "chunks", n)
		}
	}
}

func (o *orchestrator) SpeechEnabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.speechEnabled
}

func (o *orchestrator) SetReferenceImage(dataURL string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reference = dataURL
}

func (o *orchestrator) generateScene(ctx context.Context, prompt string) {
	o.mu.Lock()
	reference := o.reference
	o.mu.Unlock()

	url, err := o.images.Generate(ctx, providers.SceneRequest(prompt, o.style, reference))
	if err != nil {
		slog.Warn("Scene image generation failed", "prompt", prompt, "error", err)
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.gallery = append(o.gallery, SceneImage{
		Index:       len(o.gallery) + 1,
		Prompt:      prompt,
		URL:         url,
		GeneratedAt: o.clock.Now(),
	})
}

func (o *orchestrator) speak(ctx context.Context, text string) {
	if !o.SpeechEnabled() {
		return
	}

	url, err := o.speech.Synthesize(ctx, text, o.voiceID)
	if err != nil {
		slog.Warn("Speech synthesis failed", "error", err, "length", len(text))
		return
	}
	if url == nil {
		slog.Debug("Speech unavailable, skipping chunk", "length", len(text))
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.narrations = append(o.narrations, Narration{
		Index:       len(o.narrations) + 1,
		Text:        text,
		URL:         *url,
		GeneratedAt: o.clock.Now(),
	})
}
