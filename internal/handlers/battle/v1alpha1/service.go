// Package v1alpha1 handles the battle gRPC service interface
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "rpgbattle.api.v1alpha1.BattleService"

// Full method names
const (
	MethodCommenceBattle = "/" + ServiceName + "/CommenceBattle"
	MethodGetBattle      = "/" + ServiceName + "/GetBattle"
	MethodListBattles    = "/" + ServiceName + "/ListBattles"
	MethodResolveRound   = "/" + ServiceName + "/ResolveRound"
	MethodGetParticipant = "/" + ServiceName + "/GetParticipant"
)

// BattleServiceServer is the server API for the battle service. Requests and
// responses travel as structpb.Struct holding the JSON form of the messages in
// messages.go.
type BattleServiceServer interface {
	CommenceBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBattles(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveRound(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetParticipant(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterBattleServiceServer registers srv with s
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

type unaryMethod func(BattleServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(BattleServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(server, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BattleServiceDesc is the grpc.ServiceDesc for the battle service
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CommenceBattle",
			Handler:    unaryHandler(MethodCommenceBattle, BattleServiceServer.CommenceBattle),
		},
		{
			MethodName: "GetBattle",
			Handler:    unaryHandler(MethodGetBattle, BattleServiceServer.GetBattle),
		},
		{
			MethodName: "ListBattles",
			Handler:    unaryHandler(MethodListBattles, BattleServiceServer.ListBattles),
		},
		{
			MethodName: "ResolveRound",
			Handler:    unaryHandler(MethodResolveRound, BattleServiceServer.ResolveRound),
		},
		{
			MethodName: "GetParticipant",
			Handler:    unaryHandler(MethodGetParticipant, BattleServiceServer.GetParticipant),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgbattle/api/v1alpha1/battle.proto",
}
