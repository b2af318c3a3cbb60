package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	enginebattle "github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/rest"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	battlemock "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle/mock"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/participants"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

type RESTHandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockBattle *battlemock.MockService
	router     *gin.Engine
}

func TestRESTHandlerTestSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RESTHandlerTestSuite))
}

func (s *RESTHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockBattle = battlemock.NewMockService(s.ctrl)

	h, err := rest.NewHandler(&rest.HandlerConfig{BattleService: s.mockBattle})
	s.Require().NoError(err)
	s.router = rest.NewRouter(h)
}

func (s *RESTHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RESTHandlerTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RESTHandlerTestSuite) TestNewHandler_Validation() {
	h, err := rest.NewHandler(&rest.HandlerConfig{})
	s.Nil(h)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RESTHandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RESTHandlerTestSuite) TestCommenceBattle() {
	team := &assembly.BuildTeamInput{RandomCount: 3}
	s.mockBattle.EXPECT().
		CommenceBattle(gomock.Any(), &battle.CommenceBattleInput{
			Mode:  "optimise",
			SideA: &battle.SideInput{Name: "Ash", Team: team},
			SideB: &battle.SideInput{Name: "Gary", Team: team},
		}).
		Return(&battle.CommenceBattleOutput{
			Report: &enginebattle.Report{
				BattleID: "battle_7",
				Mode:     entities.ModePriorityByLevel,
				Outcome:  entities.OutcomeDraw,
				SideA:    &enginebattle.SideSummary{Name: "Ash"},
				SideB:    &enginebattle.SideSummary{Name: "Gary"},
			},
			ExpiresAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		}, nil)

	w := s.do(http.MethodPost, "/v1alpha1/battles", &v1alpha1.CommenceBattleRequest{
		Mode:  "optimise",
		SideA: &v1alpha1.SideRequest{Name: "Ash", Team: team},
		SideB: &v1alpha1.SideRequest{Name: "Gary", Team: team},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp v1alpha1.CommenceBattleResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("battle_7", resp.Report.BattleID)
	s.Equal(entities.OutcomeDraw, resp.Report.Outcome)
	s.Empty(resp.Report.Winner())
}

func (s *RESTHandlerTestSuite) TestCommenceBattle_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1alpha1/battles", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RESTHandlerTestSuite) TestCommenceBattle_ErrorMapping() {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid argument", err: errors.InvalidArgument("participants must have different names"), status: http.StatusBadRequest},
		{name: "team too large", err: errors.ResourceExhausted("roster is full"), status: http.StatusUnprocessableEntity},
		{name: "storage down", err: errors.Unavailable("redis down"), status: http.StatusServiceUnavailable},
		{name: "foreign error", err: context.DeadlineExceeded, status: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockBattle.EXPECT().CommenceBattle(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			w := s.do(http.MethodPost, "/v1alpha1/battles", &v1alpha1.CommenceBattleRequest{Mode: "set"})
			s.Equal(tc.status, w.Code)

			var body map[string]interface{}
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
			s.Equal(string(errors.GetCode(tc.err)), body["code"])
		})
	}
}

func (s *RESTHandlerTestSuite) TestGetBattle_NotFound() {
	s.mockBattle.EXPECT().
		GetBattle(gomock.Any(), &battle.GetBattleInput{BattleID: "battle_404"}).
		Return(nil, errors.NotFound("battle battle_404 not found").WithMeta("battle_id", "battle_404"))

	w := s.do(http.MethodGet, "/v1alpha1/battles/battle_404", nil)
	s.Equal(http.StatusNotFound, w.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("battle battle_404 not found", body["message"])
	s.Equal(map[string]interface{}{"battle_id": "battle_404"}, body["meta"])
}

func (s *RESTHandlerTestSuite) TestListBattles() {
	s.mockBattle.EXPECT().
		ListBattles(gomock.Any(), &battle.ListBattlesInput{ParticipantName: "Ash", Limit: 2}).
		Return(&battle.ListBattlesOutput{Battles: []*battle.BattleSummary{
			{BattleID: "battle_2", Winner: "Ash", Rounds: 3},
		}}, nil)

	w := s.do(http.MethodGet, "/v1alpha1/participants/Ash/battles?limit=2", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp v1alpha1.ListBattlesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Battles, 1)
	s.Equal(3, resp.Battles[0].Rounds)
}

func (s *RESTHandlerTestSuite) TestListBattles_BadLimit() {
	w := s.do(http.MethodGet, "/v1alpha1/participants/Ash/battles?limit=many", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RESTHandlerTestSuite) TestResolveRound() {
	unit := assembly.UnitSpec{Name: "Spark", Category: "electric", Health: 8, Attack: 4, Speed: 3}
	s.mockBattle.EXPECT().
		ResolveRound(gomock.Any(), &battle.ResolveRoundInput{
			SideA: &battle.RoundSide{Unit: unit},
			SideB: &battle.RoundSide{Unit: unit},
		}).
		Return(&battle.ResolveRoundOutput{
			Winner: entities.SideA,
			UnitA:  &entities.Unit{Name: "Spark", Health: 8, MaxHealth: 8, Level: 2},
		}, nil)

	w := s.do(http.MethodPost, "/v1alpha1/rounds", &v1alpha1.ResolveRoundRequest{
		SideA: &v1alpha1.RoundSideRequest{Unit: unit},
		SideB: &v1alpha1.RoundSideRequest{Unit: unit},
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp v1alpha1.ResolveRoundResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(entities.SideA, resp.Winner)
	s.Equal(int32(2), resp.UnitA.Level)
}

func (s *RESTHandlerTestSuite) TestGetParticipant() {
	s.mockBattle.EXPECT().
		GetParticipant(gomock.Any(), &battle.GetParticipantInput{Name: "Ash"}).
		Return(&battle.GetParticipantOutput{
			Participant:     &participants.Data{Name: "Ash", Registry: []entities.Category{"fire"}, BattlesFought: 1},
			CompletionRatio: 0.07,
		}, nil)

	w := s.do(http.MethodGet, "/v1alpha1/participants/Ash", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp v1alpha1.GetParticipantResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(0.07, resp.CompletionRatio)
	s.Equal(int64(1), resp.BattlesFought)
}
