package main

import (
	"context"
	"log"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-battle/internal/redis"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/participants"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

// depsOptions selects the storage backend and report lifetime
type depsOptions struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReportTTL     time.Duration
}

// deps is the wired battle service and what it runs on
type deps struct {
	GameData      *config.GameData
	EventBus      events.EventBus
	BattleService battle.Service
	close         func()
}

// Close releases the storage connection
func (d *deps) Close() {
	if d.close != nil {
		d.close()
	}
}

func buildDeps(ctx context.Context, opts *depsOptions) (*deps, error) {
	gameData, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	d := &deps{
		GameData: gameData,
		EventBus: events.NewBus(),
	}

	var (
		battleRepo      battles.Repository
		participantRepo participants.Repository
	)
	if opts.RedisAddr == "" {
		log.Println("No redis address given, using in-memory storage")
		battleRepo = battles.NewInMemory(clk)
		participantRepo = participants.NewInMemory(clk)
	} else {
		client, err := redis.NewClient(opts.RedisAddr, &redis.Options{
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		if err := redis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		d.close = func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close redis client: %v", err)
			}
		}

		battleRepo, err = battles.NewRedis(&battles.Config{Client: client, Clock: clk})
		if err != nil {
			d.Close()
			return nil, err
		}
		participantRepo, err = participants.NewRedis(&participants.Config{Client: client, Clock: clk})
		if err != nil {
			d.Close()
			return nil, err
		}
		log.Printf("Using redis storage at %s", opts.RedisAddr)
	}

	assembler, err := assembly.New(&assembly.Config{
		GameData:    gameData,
		Roller:      dice.DefaultRoller,
		IDGenerator: idgen.NewUUID(idgen.PrefixUnit),
	})
	if err != nil {
		d.Close()
		return nil, err
	}

	d.BattleService, err = battle.New(&battle.Config{
		BattleRepo:      battleRepo,
		ParticipantRepo: participantRepo,
		Assembler:       assembler,
		Universe:        gameData.Universe(),
		IDGenerator:     idgen.NewUUID(idgen.PrefixBattle),
		EventBus:        d.EventBus,
		ReportTTL:       opts.ReportTTL,
	})
	if err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}
