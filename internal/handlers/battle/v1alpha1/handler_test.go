package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	enginebattle "github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/combat"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	battlemock "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle/mock"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/participants"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	ctx        context.Context
	mockBattle *battlemock.MockService
	handler    *v1alpha1.Handler
	report     *enginebattle.Report
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockBattle = battlemock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		BattleService: s.mockBattle,
	})
	s.Require().NoError(err)
	s.handler = handler

	s.report = &enginebattle.Report{
		BattleID: "battle_1",
		Mode:     entities.ModeRotating,
		Outcome:  entities.OutcomeSideBWins,
		SideA:    &enginebattle.SideSummary{Name: "Ash", StartingUnits: 1},
		SideB:    &enginebattle.SideSummary{Name: "Gary", StartingUnits: 1, Registry: []entities.Category{"fire"}},
		Rounds: []*enginebattle.RoundRecord{{
			Number: 1,
			Result: &combat.Result{
				Verdict:     combat.VerdictSideB,
				FirstStrike: entities.SideB,
				DamageToA:   12,
				HealthA:     -2,
				HealthB:     8,
				MultiplierA: combat.Neutral,
				MultiplierB: combat.Neutral,
			},
		}},
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) encode(msg interface{}) *structpb.Struct {
	in, err := v1alpha1.Encode(msg)
	s.Require().NoError(err)
	return in
}

func (s *HandlerTestSuite) TestNewHandler_Validation() {
	h, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Nil(h)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestCommenceBattle_Success() {
	team := &assembly.BuildTeamInput{
		Units:   []assembly.UnitSpec{{Name: "Spark", Category: "electric", Health: 10, Attack: 6, Defence: 2, Speed: 8}},
		Species: []string{"Emberkit"},
	}
	expires := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	s.mockBattle.EXPECT().
		CommenceBattle(s.ctx, &battle.CommenceBattleInput{
			Mode:  "rotate",
			SideA: &battle.SideInput{Name: "Ash", Team: team},
			SideB: &battle.SideInput{Name: "Gary", Team: &assembly.BuildTeamInput{RandomCount: 2}},
		}).
		Return(&battle.CommenceBattleOutput{Report: s.report, ExpiresAt: expires}, nil)

	out, err := s.handler.CommenceBattle(s.ctx, s.encode(&v1alpha1.CommenceBattleRequest{
		Mode:  "rotate",
		SideA: &v1alpha1.SideRequest{Name: "Ash", Team: team},
		SideB: &v1alpha1.SideRequest{Name: "Gary", Team: &assembly.BuildTeamInput{RandomCount: 2}},
	}))
	s.Require().NoError(err)

	resp := &v1alpha1.CommenceBattleResponse{}
	s.Require().NoError(v1alpha1.Decode(out, resp))
	s.Equal("battle_1", resp.Report.BattleID)
	s.Equal(entities.OutcomeSideBWins, resp.Report.Outcome)
	s.Equal("Gary", resp.Report.Winner())
	s.Require().Len(resp.Report.Rounds, 1)
	s.Equal(int32(12), resp.Report.Rounds[0].Result.DamageToA)
	s.True(expires.Equal(resp.ExpiresAt))
}

func (s *HandlerTestSuite) TestCommenceBattle_ServiceError() {
	s.mockBattle.EXPECT().
		CommenceBattle(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidArgumentf("invalid battle mode %q", "chaos").WithMeta("mode", "chaos"))

	_, err := s.handler.CommenceBattle(s.ctx, s.encode(&v1alpha1.CommenceBattleRequest{Mode: "chaos"}))
	s.Require().Error(err)

	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Contains(st.Message(), "chaos")
}

func (s *HandlerTestSuite) TestCommenceBattle_MalformedRequest() {
	in, err := structpb.NewStruct(map[string]interface{}{"side_a": "not an object"})
	s.Require().NoError(err)

	_, err = s.handler.CommenceBattle(s.ctx, in)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestGetBattle() {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.mockBattle.EXPECT().
		GetBattle(s.ctx, &battle.GetBattleInput{BattleID: "battle_1"}).
		Return(&battle.GetBattleOutput{Report: s.report, CreatedAt: created, ExpiresAt: created.Add(24 * time.Hour)}, nil)

	out, err := s.handler.GetBattle(s.ctx, s.encode(&v1alpha1.GetBattleRequest{BattleID: "battle_1"}))
	s.Require().NoError(err)

	resp := &v1alpha1.GetBattleResponse{}
	s.Require().NoError(v1alpha1.Decode(out, resp))
	s.Equal(entities.ModeRotating, resp.Report.Mode)
	s.True(created.Equal(resp.CreatedAt))
}

func (s *HandlerTestSuite) TestGetBattle_MissingID() {
	_, err := s.handler.GetBattle(s.ctx, s.encode(&v1alpha1.GetBattleRequest{}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestGetBattle_NotFound() {
	s.mockBattle.EXPECT().
		GetBattle(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("battle battle_x not found"))

	_, err := s.handler.GetBattle(s.ctx, s.encode(&v1alpha1.GetBattleRequest{BattleID: "battle_x"}))
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestListBattles() {
	s.mockBattle.EXPECT().
		ListBattles(s.ctx, &battle.ListBattlesInput{ParticipantName: "Ash", Limit: 3}).
		Return(&battle.ListBattlesOutput{Battles: []*battle.BattleSummary{
			{BattleID: "battle_2", Outcome: entities.OutcomeDraw, Rounds: 4},
			{BattleID: "battle_1", Outcome: entities.OutcomeSideAWins, Winner: "Ash", Rounds: 2},
		}}, nil)

	out, err := s.handler.ListBattles(s.ctx, s.encode(&v1alpha1.ListBattlesRequest{ParticipantName: "Ash", Limit: 3}))
	s.Require().NoError(err)

	resp := &v1alpha1.ListBattlesResponse{}
	s.Require().NoError(v1alpha1.Decode(out, resp))
	s.Require().Len(resp.Battles, 2)
	s.Equal("battle_2", resp.Battles[0].BattleID)
	s.Empty(resp.Battles[0].Winner)
	s.Equal("Ash", resp.Battles[1].Winner)
}

func (s *HandlerTestSuite) TestResolveRound() {
	unitA := assembly.UnitSpec{Name: "Even", Category: "fire", Health: 10, Attack: 5, Speed: 5}
	unitB := assembly.UnitSpec{Name: "Odd", Category: "water", Health: 10, Attack: 5, Speed: 5}

	s.mockBattle.EXPECT().
		ResolveRound(s.ctx, &battle.ResolveRoundInput{
			SideA: &battle.RoundSide{Participant: "Ash", Unit: unitA},
			SideB: &battle.RoundSide{Unit: unitB},
		}).
		Return(&battle.ResolveRoundOutput{
			Result: &combat.Result{Verdict: combat.VerdictStalemate, Simultaneous: true, Fatigue: true, HealthA: 4, HealthB: 4},
			UnitA:  &entities.Unit{Name: "Even", Health: 4, MaxHealth: 10},
			UnitB:  &entities.Unit{Name: "Odd", Health: 4, MaxHealth: 10},
			RatioA: 0.5,
		}, nil)

	out, err := s.handler.ResolveRound(s.ctx, s.encode(&v1alpha1.ResolveRoundRequest{
		SideA: &v1alpha1.RoundSideRequest{Participant: "Ash", Unit: unitA},
		SideB: &v1alpha1.RoundSideRequest{Unit: unitB},
	}))
	s.Require().NoError(err)

	resp := &v1alpha1.ResolveRoundResponse{}
	s.Require().NoError(v1alpha1.Decode(out, resp))
	s.Equal(combat.VerdictStalemate, resp.Result.Verdict)
	s.Equal(entities.Side(""), resp.Winner)
	s.Equal(int32(4), resp.UnitA.Health)
	s.Equal(0.5, resp.RatioA)
}

func (s *HandlerTestSuite) TestGetParticipant() {
	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.mockBattle.EXPECT().
		GetParticipant(s.ctx, &battle.GetParticipantInput{Name: "Ash"}).
		Return(&battle.GetParticipantOutput{
			Participant: &participants.Data{
				Name:          "Ash",
				Registry:      []entities.Category{"fire", "water"},
				BattlesFought: 3,
				BattlesWon:    2,
				UpdatedAt:     updated,
			},
			CompletionRatio: 0.13,
		}, nil)

	out, err := s.handler.GetParticipant(s.ctx, s.encode(&v1alpha1.GetParticipantRequest{Name: "Ash"}))
	s.Require().NoError(err)

	resp := &v1alpha1.GetParticipantResponse{}
	s.Require().NoError(v1alpha1.Decode(out, resp))
	s.Equal([]entities.Category{"fire", "water"}, resp.Registry)
	s.Equal(int64(2), resp.BattlesWon)
	s.Equal(0.13, resp.CompletionRatio)
}

func (s *HandlerTestSuite) TestGetParticipant_MissingName() {
	_, err := s.handler.GetParticipant(s.ctx, nil)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

// TestClient_OverGRPC serves the handler on an in-process listener and calls
// it through the typed client
func (s *HandlerTestSuite) TestClient_OverGRPC() {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterBattleServiceServer(srv, s.handler)
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	client := v1alpha1.NewClient(conn)

	s.mockBattle.EXPECT().
		GetBattle(gomock.Any(), &battle.GetBattleInput{BattleID: "battle_1"}).
		Return(&battle.GetBattleOutput{Report: s.report}, nil)

	resp, err := client.GetBattle(s.ctx, &v1alpha1.GetBattleRequest{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.Equal("Gary", resp.Report.Winner())
	s.Equal([]entities.Category{"fire"}, resp.Report.SideB.Registry)

	s.mockBattle.EXPECT().
		GetParticipant(gomock.Any(), &battle.GetParticipantInput{Name: "Brock"}).
		Return(nil, errors.NotFound("participant brock not found").WithMeta("participant", "brock"))

	_, err = client.GetParticipant(s.ctx, &v1alpha1.GetParticipantRequest{Name: "Brock"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal("brock", errors.GetMeta(err)["participant"])
}
