package combat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	dicesession "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session/mock"
	"github.com/KirkDiggler/rpg-narrator/internal/testutils"
)

// Minimal implementation to satisfy dice.Roller interface
type stubRoller struct {
	result int
	err    error
	sizes  []int
}

func (s *stubRoller) Roll(size int) (int, error) {
	s.sizes = append(s.sizes, size)
	return s.result, s.err
}

func (s *stubRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = s.result
	}
	return out, s.err
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRollLog  *dicesessionmock.MockRepository
	roller       *stubRoller
	clock        *clock.Fixed
	orchestrator Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRollLog = dicesessionmock.NewMockRepository(s.ctrl)
	s.roller = &stubRoller{result: 14}
	s.clock = clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	o, err := NewOrchestrator(&Config{
		Roller:    s.roller,
		Clock:     s.clock,
		RollLog:   s.mockRollLog,
		RollDelay: DefaultRollDelay,
	})
	s.Require().NoError(err)
	s.orchestrator = o
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := NewOrchestrator(&Config{Clock: s.clock})
	s.Error(err)
	s.Contains(err.Error(), "Roller")

	_, err = NewOrchestrator(&Config{Roller: s.roller, Clock: s.clock, RollDelay: -time.Second})
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestIsAttack() {
	state := testutils.NewTestGameState()

	s.False(IsAttack(state, "I attack the goblin"), "no encounters means no battle")

	s.Require().NoError(state.AddEncounter(testutils.NewTestEncounter("e1", "Goblin", 20)))

	testCases := []struct {
		text   string
		expect bool
	}{
		{"I attack the goblin", true},
		{"I ATTACK!", true},
		{"I use my Slash attack.", true},
		{"I Use My shield", true},
		{"I run away", false},
		{"", false},
	}
	for _, tc := range testCases {
		s.Run(tc.text, func() {
			s.Equal(tc.expect, IsAttack(state, tc.text))
		})
	}
}

func (s *OrchestratorTestSuite) TestMoveAction() {
	s.Equal("I use my Slash attack.", MoveAction("Slash"))
	s.Equal("I use my Slash attack. (I rolled a 7 on my d20).", AnnotateRoll(MoveAction("Slash"), 7))
}

func (s *OrchestratorTestSuite) TestStripRoll() {
	s.Equal("I attack the goblin", StripRoll(AnnotateRoll("I attack the goblin", 18)))
	s.Equal("I attack the goblin", StripRoll("I attack the goblin"))
}

func (s *OrchestratorTestSuite) TestOnBattleEnd_RemovesSummons() {
	state := testutils.NewTestGameState()
	s.Require().NoError(state.AddPartyMember(testutils.NewTestPartyMember("p1", "Wolf", false)))
	s.Require().NoError(state.AddPartyMember(testutils.NewTestPartyMember("p2", "Imp", true)))
	s.Require().NoError(state.AddPartyMember(testutils.NewTestPartyMember("p3", "Skeleton", true)))

	out, err := s.orchestrator.OnBattleEnd(s.ctx, &OnBattleEndInput{State: state})
	s.Require().NoError(err)

	s.Len(out.Dismissed, 2)
	s.Require().Len(out.Intents, 1)
	s.Equal(BattleEndMessage, out.Intents[0].Text)
	s.Require().Len(state.Party, 1)
	s.Equal("Wolf", state.Party[0].Name)
}

func (s *OrchestratorTestSuite) TestOnBattleEnd_NoSummonsNoMessage() {
	state := testutils.NewTestGameState()
	s.Require().NoError(state.AddPartyMember(testutils.NewTestPartyMember("p1", "Wolf", false)))

	out, err := s.orchestrator.OnBattleEnd(s.ctx, &OnBattleEndInput{State: state})
	s.Require().NoError(err)
	s.Empty(out.Intents)
	s.Len(state.Party, 1)
}

func (s *OrchestratorTestSuite) TestRollForAction() {
	s.mockRollLog.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.AppendInput) (*dicesession.AppendOutput, error) {
			s.Equal("game_1", input.GameID)
			s.Equal(14, input.Roll.Result)
			s.Equal(ActionDie, input.Roll.Size)
			s.Equal("I attack the goblin", input.Roll.Action)
			return &dicesession.AppendOutput{Length: 1}, nil
		})

	out, err := s.orchestrator.RollForAction(s.ctx, &RollForActionInput{GameID: "game_1", Action: "I attack the goblin"})
	s.Require().NoError(err)

	s.Equal(14, out.Roll)
	s.Equal("I attack the goblin (I rolled a 14 on my d20).", out.Text)
	s.Equal([]int{20}, s.roller.sizes)
	s.Equal([]time.Duration{DefaultRollDelay}, s.clock.Sleeps())
}

func (s *OrchestratorTestSuite) TestRollForAction_ReportsRollBeforeDelay() {
	s.mockRollLog.EXPECT().
		Append(s.ctx, gomock.Any()).
		Return(&dicesession.AppendOutput{Length: 1}, nil)

	var reported int
	var sleptBefore []time.Duration
	_, err := s.orchestrator.RollForAction(s.ctx, &RollForActionInput{
		GameID: "game_1",
		Action: "I attack the goblin",
		OnRoll: func(roll int) {
			reported = roll
			sleptBefore = s.clock.Sleeps()
		},
	})
	s.Require().NoError(err)

	s.Equal(14, reported)
	s.Empty(sleptBefore)
	s.Equal([]time.Duration{DefaultRollDelay}, s.clock.Sleeps())
}

func (s *OrchestratorTestSuite) TestRollForAction_LogFailureIsNotFatal() {
	s.mockRollLog.EXPECT().
		Append(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	out, err := s.orchestrator.RollForAction(s.ctx, &RollForActionInput{GameID: "game_1", Action: "I attack"})
	s.Require().NoError(err)
	s.Equal(14, out.Roll)
}

func (s *OrchestratorTestSuite) TestRollForAction_Canceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	out, err := s.orchestrator.RollForAction(ctx, &RollForActionInput{Action: "I attack"})
	s.Nil(out)
	s.True(errors.IsCanceled(err))
}

func (s *OrchestratorTestSuite) TestRollForAction_RollerError() {
	s.roller.err = errors.Internal("broken die")

	_, err := s.orchestrator.RollForAction(s.ctx, &RollForActionInput{Action: "I attack"})
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestRecentRolls() {
	s.mockRollLog.EXPECT().
		Get(s.ctx, dicesession.GetInput{GameID: "game_1", Limit: 5}).
		Return(&dicesession.GetOutput{Log: &dicesession.RollLog{
			GameID: "game_1",
			Rolls:  []dicesession.Roll{{Result: 3}, {Result: 19}},
		}}, nil)

	out, err := s.orchestrator.RecentRolls(s.ctx, &RecentRollsInput{GameID: "game_1", Limit: 5})
	s.Require().NoError(err)
	s.Len(out.Rolls, 2)

	s.mockRollLog.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("roll log not found"))

	out, err = s.orchestrator.RecentRolls(s.ctx, &RecentRollsInput{GameID: "game_2"})
	s.Require().NoError(err)
	s.Empty(out.Rolls)
}

func (s *OrchestratorTestSuite) TestInBattle() {
	s.False(InBattle(nil))
	state := entities.NewGameState(testutils.NewTestPlayer())
	s.False(InBattle(state))
	s.Require().NoError(state.AddEncounter(testutils.NewTestEncounter("e1", "Orc", 10)))
	s.True(InBattle(state))
}
