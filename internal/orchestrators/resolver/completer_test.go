package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
	providersmock "github.com/KirkDiggler/rpg-narrator/internal/providers/mock"
)

type CompleterTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockProvider *providersmock.MockCompletionProvider
	completer    *Completer
	ctx          context.Context
	messages     []providers.Message
}

func (s *CompleterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockProvider = providersmock.NewMockCompletionProvider(s.ctrl)

	c, err := NewCompleter(&CompleterConfig{
		Provider: s.mockProvider,
		Backoff:  time.Millisecond,
		Options:  providers.CompletionOptions{Temperature: 0.7, MaxTokens: 8000},
	})
	s.Require().NoError(err)
	s.completer = c
	s.ctx = context.Background()
	s.messages = []providers.Message{{Role: providers.RoleUser, Content: "I look around"}}
}

func (s *CompleterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCompleterSuite(t *testing.T) {
	suite.Run(t, new(CompleterTestSuite))
}

func (s *CompleterTestSuite) TestLinearBackOff() {
	b := &LinearBackOff{Step: time.Second}
	s.Equal(time.Second, b.NextBackOff())
	s.Equal(2*time.Second, b.NextBackOff())
	s.Equal(3*time.Second, b.NextBackOff())
	b.Reset()
	s.Equal(time.Second, b.NextBackOff())
}

func (s *CompleterTestSuite) TestComplete_FirstTry() {
	s.mockProvider.EXPECT().
		Complete(s.ctx, s.messages, providers.CompletionOptions{Temperature: 0.7, MaxTokens: 8000}).
		Return(`{"narrative":"ok"}`, nil)

	text, err := s.completer.Complete(s.ctx, s.messages)
	s.Require().NoError(err)
	s.Equal(`{"narrative":"ok"}`, text)
}

func (s *CompleterTestSuite) TestComplete_RecoversAfterFailures() {
	gomock.InOrder(
		s.mockProvider.EXPECT().Complete(s.ctx, s.messages, gomock.Any()).Return("", errors.Unavailable("503")),
		s.mockProvider.EXPECT().Complete(s.ctx, s.messages, gomock.Any()).Return("", errors.Unavailable("503")),
		s.mockProvider.EXPECT().Complete(s.ctx, s.messages, gomock.Any()).Return("third time", nil),
	)

	text, err := s.completer.Complete(s.ctx, s.messages)
	s.Require().NoError(err)
	s.Equal("third time", text)
}

func (s *CompleterTestSuite) TestComplete_Exhausted() {
	s.mockProvider.EXPECT().
		Complete(s.ctx, s.messages, gomock.Any()).
		Return("", errors.Unavailable("connection reset")).
		Times(DefaultAttempts)

	_, err := s.completer.Complete(s.ctx, s.messages)
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
	s.Equal(ConnectionFailureMessage, errors.GetMessage(err))
	s.Equal(DefaultAttempts, errors.GetMeta(err)["attempts"])
}

func (s *CompleterTestSuite) TestComplete_DoesNotRetryAuthErrors() {
	s.mockProvider.EXPECT().
		Complete(s.ctx, s.messages, gomock.Any()).
		Return("", errors.Unauthenticated("GEMINI_API_KEY is not set")).
		Times(1)

	_, err := s.completer.Complete(s.ctx, s.messages)
	s.True(errors.IsUnauthenticated(err))
}

func (s *CompleterTestSuite) TestComplete_DoesNotRetryInternalErrors() {
	s.mockProvider.EXPECT().
		Complete(s.ctx, s.messages, gomock.Any()).
		Return("", errors.Internal("unexpected response shape")).
		Times(1)

	_, err := s.completer.Complete(s.ctx, s.messages)
	s.True(errors.IsInternal(err))
	s.NotEqual(ConnectionFailureMessage, errors.GetMessage(err))
}

func (s *CompleterTestSuite) TestComplete_RetriesDeadlineExceeded() {
	gomock.InOrder(
		s.mockProvider.EXPECT().Complete(s.ctx, s.messages, gomock.Any()).Return("", errors.DeadlineExceeded("slow upstream")),
		s.mockProvider.EXPECT().Complete(s.ctx, s.messages, gomock.Any()).Return("The road bends north.", nil),
	)

	text, err := s.completer.Complete(s.ctx, s.messages)
	s.Require().NoError(err)
	s.Equal("The road bends north.", text)
}

func (s *CompleterTestSuite) TestComplete_Canceled() {
	ctx, cancel := context.WithCancel(s.ctx)

	s.mockProvider.EXPECT().
		Complete(ctx, s.messages, gomock.Any()).
		DoAndReturn(func(context.Context, []providers.Message, providers.CompletionOptions) (string, error) {
			cancel()
			return "", errors.Unavailable("interrupted")
		}).
		Times(1)

	_, err := s.completer.Complete(ctx, s.messages)
	s.True(errors.IsCanceled(err))
}

func (s *CompleterTestSuite) TestNewCompleter_Validation() {
	_, err := NewCompleter(&CompleterConfig{})
	s.Error(err)

	_, err = NewCompleter(&CompleterConfig{Provider: s.mockProvider, Attempts: -1})
	s.Error(err)
}
