// Package rest serves the battle service as JSON over HTTP
package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
)

// Routes
const (
	RoutePrefix             = "/v1alpha1"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:id"
	RouteRounds             = "/rounds"
	RouteParticipantByName  = "/participants/:name"
	RouteParticipantBattles = "/participants/:name/battles"
	RouteHealth             = "/healthz"
)

// JSON keys of error bodies
const (
	jsonKeyCode    = "code"
	jsonKeyMessage = "message"
	jsonKeyMeta    = "meta"
)

// HandlerConfig holds dependencies for the REST handler
type HandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// Handler serves the battle service over HTTP
type Handler struct {
	battleService battle.Service
}

// NewHandler creates a new REST handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{battleService: cfg.BattleService}, nil
}

// Register mounts the routes on router
func (h *Handler) Register(router gin.IRouter) {
	router.GET(RouteHealth, h.Health)

	api := router.Group(RoutePrefix)
	{
		api.POST(RouteBattles, h.CommenceBattle)
		api.GET(RouteBattleByID, h.GetBattle)
		api.POST(RouteRounds, h.ResolveRound)
		api.GET(RouteParticipantByName, h.GetParticipant)
		api.GET(RouteParticipantBattles, h.ListBattles)
	}
}

// NewRouter returns a gin engine with recovery and the battle routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	h.Register(router)
	return router
}

// Health answers liveness probes
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CommenceBattle runs a full battle
func (h *Handler) CommenceBattle(c *gin.Context) {
	var req v1alpha1.CommenceBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request"))
		return
	}

	input := &battle.CommenceBattleInput{Mode: req.Mode}
	if req.SideA != nil {
		input.SideA = &battle.SideInput{Name: req.SideA.Name, Team: req.SideA.Team}
	}
	if req.SideB != nil {
		input.SideB = &battle.SideInput{Name: req.SideB.Name, Team: req.SideB.Team}
	}

	out, err := h.battleService.CommenceBattle(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &v1alpha1.CommenceBattleResponse{
		Report:    out.Report,
		ExpiresAt: out.ExpiresAt,
	})
}

// GetBattle returns a stored battle report
func (h *Handler) GetBattle(c *gin.Context) {
	out, err := h.battleService.GetBattle(c.Request.Context(), &battle.GetBattleInput{
		BattleID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &v1alpha1.GetBattleResponse{
		Report:    out.Report,
		CreatedAt: out.CreatedAt,
		ExpiresAt: out.ExpiresAt,
	})
}

// ListBattles returns a participant's recent battles. ?limit=N caps the list.
func (h *Handler) ListBattles(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(c, errors.InvalidArgumentf("invalid limit %q", s).WithMeta("limit", s))
			return
		}
		limit = n
	}

	out, err := h.battleService.ListBattles(c.Request.Context(), &battle.ListBattlesInput{
		ParticipantName: c.Param("name"),
		Limit:           limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &v1alpha1.ListBattlesResponse{
		Battles: v1alpha1.ConvertSummaries(out.Battles),
	})
}

// ResolveRound fights a single round
func (h *Handler) ResolveRound(c *gin.Context) {
	var req v1alpha1.ResolveRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request"))
		return
	}

	input := &battle.ResolveRoundInput{}
	if req.SideA != nil {
		input.SideA = &battle.RoundSide{Participant: req.SideA.Participant, Unit: req.SideA.Unit}
	}
	if req.SideB != nil {
		input.SideB = &battle.RoundSide{Participant: req.SideB.Participant, Unit: req.SideB.Unit}
	}

	out, err := h.battleService.ResolveRound(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, &v1alpha1.ResolveRoundResponse{
		Result: out.Result,
		Winner: out.Winner,
		UnitA:  out.UnitA,
		UnitB:  out.UnitB,
		RatioA: out.RatioA,
		RatioB: out.RatioB,
	})
}

// GetParticipant returns a participant's registry and tallies
func (h *Handler) GetParticipant(c *gin.Context) {
	out, err := h.battleService.GetParticipant(c.Request.Context(), &battle.GetParticipantInput{
		Name: c.Param("name"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1alpha1.ConvertParticipant(out))
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	body := gin.H{
		jsonKeyCode:    code,
		jsonKeyMessage: errors.GetMessage(err),
	}
	if meta := errors.GetMeta(err); len(meta) > 0 {
		body[jsonKeyMeta] = meta
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), body)
}
