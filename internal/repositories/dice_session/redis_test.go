package dicesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	dicesession "github.com/KirkDiggler/rpg-narrator/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-narrator/internal/testutils"
)

type RedisRollLogTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	clock  *clock.Fixed
	repo   dicesession.Repository
	ctx    context.Context
}

func (s *RedisRollLogTestSuite) SetupTest() {
	client, server := testutils.CreateTestRedisClient(s.T())
	s.server = server
	s.clock = clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, err := dicesession.NewRedisRepository(&dicesession.Config{
		Client: client,
		Clock:  s.clock,
		TTL:    time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func TestRedisRollLogSuite(t *testing.T) {
	suite.Run(t, new(RedisRollLogTestSuite))
}

func (s *RedisRollLogTestSuite) TestNewRedisRepository_Validation() {
	_, err := dicesession.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = dicesession.NewRedisRepository(&dicesession.Config{})
	s.Error(err)
	s.Contains(err.Error(), "redis client is required")
}

func (s *RedisRollLogTestSuite) TestAppendAndGet() {
	for i, result := range []int{4, 17, 20} {
		out, err := s.repo.Append(s.ctx, dicesession.AppendInput{
			GameID: "game_1",
			Roll:   dicesession.Roll{Action: "I attack", Size: 20, Result: result},
		})
		s.Require().NoError(err)
		s.Equal(i+1, out.Length)
	}

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{GameID: "game_1"})
	s.Require().NoError(err)
	s.Require().Len(got.Log.Rolls, 3)
	s.Equal(4, got.Log.Rolls[0].Result)
	s.Equal(20, got.Log.Rolls[2].Result)
	s.Equal(s.clock.Now(), got.Log.Rolls[0].RolledAt.UTC())

	s.Equal(time.Hour, s.server.TTL("dice_rolls:game_1"))
}

func (s *RedisRollLogTestSuite) TestGet_Limit() {
	for _, result := range []int{1, 2, 3} {
		_, err := s.repo.Append(s.ctx, dicesession.AppendInput{GameID: "game_1", Roll: dicesession.Roll{Result: result}})
		s.Require().NoError(err)
	}

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{GameID: "game_1", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(got.Log.Rolls, 2)
	s.Equal(2, got.Log.Rolls[0].Result)
	s.Equal(3, got.Log.Rolls[1].Result)
}

func (s *RedisRollLogTestSuite) TestAppend_TrimsToMax() {
	for i := 0; i < dicesession.MaxRolls+5; i++ {
		_, err := s.repo.Append(s.ctx, dicesession.AppendInput{GameID: "game_1", Roll: dicesession.Roll{Result: i}})
		s.Require().NoError(err)
	}

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{GameID: "game_1"})
	s.Require().NoError(err)
	s.Len(got.Log.Rolls, dicesession.MaxRolls)
	s.Equal(5, got.Log.Rolls[0].Result)
}

func (s *RedisRollLogTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, dicesession.GetInput{GameID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRollLogTestSuite) TestDelete() {
	_, err := s.repo.Append(s.ctx, dicesession.AppendInput{GameID: "game_1", Roll: dicesession.Roll{Result: 9}})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dicesession.DeleteInput{GameID: "game_1"})
	s.Require().NoError(err)
	s.Equal(1, out.RollsDeleted)
	s.False(s.server.Exists("dice_rolls:game_1"))
}

func (s *RedisRollLogTestSuite) TestEmptyGameID() {
	_, err := s.repo.Append(s.ctx, dicesession.AppendInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}
