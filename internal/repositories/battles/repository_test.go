package battles_test

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.Fixed
	repo    battles.Repository
	newRepo func(s *RepositoryTestSuite) (battles.Repository, func(time.Duration))
	advance func(time.Duration)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(s *RepositoryTestSuite) (battles.Repository, func(time.Duration)) {
			client, mr := testutils.CreateTestRedis(s.T())
			repo, err := battles.NewRedis(&battles.Config{Client: client, Clock: s.clock})
			s.Require().NoError(err)
			return repo, func(d time.Duration) {
				s.clock.Advance(d)
				mr.FastForward(d)
			}
		},
	})
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(s *RepositoryTestSuite) (battles.Repository, func(time.Duration)) {
			return battles.NewInMemory(s.clock), s.clock.Advance
		},
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.repo, s.advance = s.newRepo(s)
}

func report(id, a, b string) *battle.Report {
	return &battle.Report{
		BattleID: id,
		Mode:     entities.ModeRotating,
		Outcome:  entities.OutcomeSideAWins,
		SideA:    &battle.SideSummary{Name: a, StartingUnits: 2},
		SideB:    &battle.SideSummary{Name: b, StartingUnits: 2},
	}
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, &battles.CreateInput{Report: report("battle_1", "Ash", "Gary")})
	s.Require().NoError(err)
	s.Equal("battle_1", out.Record.ID)
	s.Equal(s.clock.Now(), out.Record.CreatedAt)
	s.Equal(s.clock.Now().Add(battles.DefaultTTL), out.Record.ExpiresAt)

	got, err := s.repo.Get(s.ctx, &battles.GetInput{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.Equal("Ash", got.Record.Report.SideA.Name)
	s.Equal(entities.OutcomeSideAWins, got.Record.Report.Outcome)
	s.True(out.Record.CreatedAt.Equal(got.Record.CreatedAt))
}

func (s *RepositoryTestSuite) TestCreate_Duplicate() {
	_, err := s.repo.Create(s.ctx, &battles.CreateInput{Report: report("battle_1", "Ash", "Gary")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, &battles.CreateInput{Report: report("battle_1", "Ash", "Gary")})
	s.Require().Error(err)
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.Create(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Create(s.ctx, &battles.CreateInput{})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Create(s.ctx, &battles.CreateInput{Report: report("", "Ash", "Gary")})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, &battles.GetInput{})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.List(s.ctx, &battles.ListInput{ParticipantName: "  "})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.repo.Delete(s.ctx, &battles.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &battles.GetInput{BattleID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestExpiry() {
	_, err := s.repo.Create(s.ctx, &battles.CreateInput{
		Report: report("battle_1", "Ash", "Gary"),
		TTL:    time.Minute,
	})
	s.Require().NoError(err)

	s.advance(30 * time.Second)
	_, err = s.repo.Get(s.ctx, &battles.GetInput{BattleID: "battle_1"})
	s.Require().NoError(err)

	s.advance(31 * time.Second)
	_, err = s.repo.Get(s.ctx, &battles.GetInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.List(s.ctx, &battles.ListInput{ParticipantName: "Ash"})
	s.Require().NoError(err)
	s.Empty(list.Records)
}

func (s *RepositoryTestSuite) TestList() {
	for _, r := range []*battle.Report{
		report("battle_1", "Ash", "Gary"),
		report("battle_2", "Misty", "Ash"),
		report("battle_3", "Brock", "Misty"),
		report("battle_4", "ash", "Brock"),
	} {
		_, err := s.repo.Create(s.ctx, &battles.CreateInput{Report: r})
		s.Require().NoError(err)
		s.advance(time.Second)
	}

	out, err := s.repo.List(s.ctx, &battles.ListInput{ParticipantName: "ASH"})
	s.Require().NoError(err)
	s.Equal([]string{"battle_4", "battle_2", "battle_1"}, ids(out.Records))

	out, err = s.repo.List(s.ctx, &battles.ListInput{ParticipantName: "Misty", Limit: 1})
	s.Require().NoError(err)
	s.Equal([]string{"battle_3"}, ids(out.Records))

	out, err = s.repo.List(s.ctx, &battles.ListInput{ParticipantName: "nobody"})
	s.Require().NoError(err)
	s.Empty(out.Records)
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, &battles.CreateInput{Report: report("battle_1", "Ash", "Gary")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &battles.DeleteInput{BattleID: "battle_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &battles.GetInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &battles.DeleteInput{BattleID: "battle_1"})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.List(s.ctx, &battles.ListInput{ParticipantName: "Gary"})
	s.Require().NoError(err)
	s.Empty(list.Records)
}

// failingZRem fails every ZREM and passes other commands through
type failingZRem struct {
	calls int
}

func (h *failingZRem) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *failingZRem) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if strings.EqualFold(cmd.Name(), "zrem") {
			h.calls++
			cmd.SetErr(errors.Internal("zrem unavailable"))
			return cmd.Err()
		}
		return next(ctx, cmd)
	}
}

func (h *failingZRem) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisList_IndexTrimFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	client, mr := testutils.CreateTestRedis(t)
	hook := &failingZRem{}
	client.AddHook(hook)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	repo, err := battles.NewRedis(&battles.Config{Client: client, Clock: clk})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &battles.CreateInput{Report: report("battle_1", "Ash", "Gary"), TTL: time.Minute})
	require.NoError(t, err)
	clk.Advance(2 * time.Minute)
	mr.FastForward(2 * time.Minute)

	out, err := repo.List(ctx, &battles.ListInput{ParticipantName: "Ash"})
	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.Equal(t, 1, hook.calls)
	assert.Contains(t, buf.String(), "failed to trim battle index")
	assert.Contains(t, buf.String(), "participant=ash")
}

func ids(records []*battles.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
