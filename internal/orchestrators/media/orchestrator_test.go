package media

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/intents"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	providersmock "github.com/KirkDiggler/rpg-narrator/internal/providers/mock"
	"github.com/KirkDiggler/rpg-narrator/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockImages   *providersmock.MockImageProvider
	mockSpeech   *providersmock.MockSpeechProvider
	clock        *clock.Fixed
	bus          events.EventBus
	orchestrator Service
	ctx          context.Context
	cancel       context.CancelFunc
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockImages = providersmock.NewMockImageProvider(s.ctrl)
	s.mockSpeech = providersmock.NewMockSpeechProvider(s.ctrl)
	s.clock = clock.NewFixed(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.bus = events.NewBus()

	o, err := NewOrchestrator(&Config{
		Images:        s.mockImages,
		Speech:        s.mockSpeech,
		Clock:         s.clock,
		SpeechEnabled: true,
		VoiceID:       "narrator",
		ImageStyle:    "oil",
	})
	s.Require().NoError(err)
	s.orchestrator = o
	s.orchestrator.Subscribe(s.bus)

	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Second)
	s.orchestrator.Start(s.ctx)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.orchestrator.Close()
	s.cancel()
	s.ctrl.Finish()
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func strPtr(s string) *string { return &s }

func (s *OrchestratorTestSuite) publish(list ...intents.Intent) {
	s.Require().NoError(intents.Publish(s.ctx, s.bus, testutils.NewTestPlayer(), list))
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := NewOrchestrator(&Config{Images: s.mockImages, Clock: s.clock, SpeechEnabled: true})
	s.Error(err)
	s.Contains(err.Error(), "Speech")

	_, err = NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSceneIntentsBuildGalleryInOrder() {
	gomock.InOrder(
		s.mockImages.EXPECT().
			Generate(gomock.Any(), providers.ImageRequest{Prompt: "a ruined keep, oil painting", AspectRatio: providers.AspectLandscape}).
			Return("https://img/1.png", nil),
		s.mockImages.EXPECT().
			Generate(gomock.Any(), providers.ImageRequest{Prompt: "a misty lake, oil painting", AspectRatio: providers.AspectLandscape}).
			Return("https://img/2.png", nil),
	)

	s.publish(intents.SceneImage("a ruined keep"), intents.SceneImage("a misty lake"))
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))

	gallery := s.orchestrator.Gallery()
	s.Require().Len(gallery, 2)
	s.Equal(1, gallery[0].Index)
	s.Equal("https://img/1.png", gallery[0].URL)
	s.Equal("a misty lake", gallery[1].Prompt)
	s.Equal(s.clock.Now(), gallery[1].GeneratedAt)
}

func (s *OrchestratorTestSuite) TestSceneFailureIsSkipped() {
	s.mockImages.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.Unavailable("quota"))

	s.publish(intents.SceneImage("a storm"))
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))

	s.Empty(s.orchestrator.Gallery())
}

func (s *OrchestratorTestSuite) TestReferenceImageKeepsHeroConsistent() {
	s.orchestrator.SetReferenceImage("data:image/png;base64,AAAA")
	s.mockImages.EXPECT().
		Generate(gomock.Any(), providers.ImageRequest{
			Prompt:         "a tavern, oil painting, keep main hero face consistent",
			AspectRatio:    providers.AspectLandscape,
			ReferenceImage: "data:image/png;base64,AAAA",
		}).
		Return("https://img/tavern.png", nil)

	s.orchestrator.EnqueueScene("a tavern")
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))
	s.Len(s.orchestrator.Gallery(), 1)
}

func (s *OrchestratorTestSuite) TestNarrativeIsSpoken() {
	s.mockSpeech.EXPECT().
		Synthesize(gomock.Any(), "The gate opens. A wolf howls.", "narrator").
		Return(strPtr("data:audio/mpeg;base64,AAA"), nil)

	s.publish(
		intents.Narrative("The gate opens. A wolf howls."),
		intents.System("LEVEL UP! You are now level 2."),
	)
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))

	narrations := s.orchestrator.Narrations()
	s.Require().Len(narrations, 1)
	s.Equal("data:audio/mpeg;base64,AAA", narrations[0].URL)
	s.Equal(1, narrations[0].Index)
}

func (s *OrchestratorTestSuite) TestUnavailableSpeechIsSkipped() {
	s.mockSpeech.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	s.mockSpeech.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.Unavailable("down"))

	s.orchestrator.EnqueueSpeech("First.")
	s.orchestrator.EnqueueSpeech("Second.")
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))

	s.Empty(s.orchestrator.Narrations())
}

func (s *OrchestratorTestSuite) TestSpeechDisabled() {
	s.orchestrator.SetSpeechEnabled(false)

	s.Equal(0, s.orchestrator.EnqueueSpeech("Nobody hears this."))
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))
	s.False(s.orchestrator.SpeechEnabled())
}

func (s *OrchestratorTestSuite) TestWaitIdleHonoursContext() {
	release := make(chan struct{})
	s.mockImages.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ providers.ImageRequest) (string, error) {
			<-release
			return "https://img/late.png", nil
		})

	s.orchestrator.EnqueueScene("a slow render")

	waitCtx, cancel := context.WithCancel(s.ctx)
	cancel()
	err := s.orchestrator.WaitIdle(waitCtx)
	s.True(errors.IsCanceled(err))

	close(release)
	s.Require().NoError(s.orchestrator.WaitIdle(s.ctx))
	s.Len(s.orchestrator.Gallery(), 1)
}
