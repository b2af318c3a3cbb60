package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Client calls the battle service over a gRPC connection and converts
// statuses back into *errors.Error
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// CommenceBattle runs a full battle
func (c *Client) CommenceBattle(ctx context.Context, req *CommenceBattleRequest) (*CommenceBattleResponse, error) {
	resp := &CommenceBattleResponse{}
	if err := c.invoke(ctx, MethodCommenceBattle, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetBattle returns a stored battle report
func (c *Client) GetBattle(ctx context.Context, req *GetBattleRequest) (*GetBattleResponse, error) {
	resp := &GetBattleResponse{}
	if err := c.invoke(ctx, MethodGetBattle, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListBattles returns a participant's recent battles
func (c *Client) ListBattles(ctx context.Context, req *ListBattlesRequest) (*ListBattlesResponse, error) {
	resp := &ListBattlesResponse{}
	if err := c.invoke(ctx, MethodListBattles, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResolveRound fights a single round
func (c *Client) ResolveRound(ctx context.Context, req *ResolveRoundRequest) (*ResolveRoundResponse, error) {
	resp := &ResolveRoundResponse{}
	if err := c.invoke(ctx, MethodResolveRound, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetParticipant returns a participant's registry and tallies
func (c *Client) GetParticipant(ctx context.Context, req *GetParticipantRequest) (*GetParticipantResponse, error) {
	resp := &GetParticipantResponse{}
	if err := c.invoke(ctx, MethodGetParticipant, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, resp interface{}) error {
	in, err := Encode(req)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return errors.FromGRPCError(err)
	}

	return Decode(out, resp)
}
