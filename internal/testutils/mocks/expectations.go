// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	battlesmock "github.com/KirkDiggler/rpg-battle/internal/repositories/battles/mock"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/participants"
	participantsmock "github.com/KirkDiggler/rpg-battle/internal/repositories/participants/mock"
)

// ExpectNewParticipant sets up a lookup for a participant that has never
// battled
func ExpectNewParticipant(ctx context.Context, mockRepo *participantsmock.MockRepository, name string) {
	mockRepo.EXPECT().
		Get(ctx, &participants.GetInput{Name: name}).
		Return(nil, errors.NotFoundf("participant %s not found", name))
}

// ExpectParticipantGet sets up a lookup returning a stored registry
func ExpectParticipantGet(
	ctx context.Context, mockRepo *participantsmock.MockRepository,
	name string, registry ...entities.Category,
) {
	mockRepo.EXPECT().
		Get(ctx, &participants.GetInput{Name: name}).
		Return(&participants.GetOutput{
			Data: &participants.Data{
				Name:     name,
				Registry: registry,
			},
		}, nil)
}

// ExpectParticipantRecord sets up the merge of one battle result
func ExpectParticipantRecord(
	ctx context.Context, mockRepo *participantsmock.MockRepository,
	name string, won bool, registry ...entities.Category,
) {
	if registry == nil {
		registry = []entities.Category{}
	}

	mockRepo.EXPECT().
		Record(ctx, &participants.RecordInput{
			Name:     name,
			Registry: registry,
			Won:      won,
		}).
		Return(&participants.RecordOutput{
			Data: &participants.Data{Name: name, Registry: registry},
		}, nil)
}

// ExpectBattleCreate sets up storing a report and returns the record the
// repository would have built
func ExpectBattleCreate(ctx context.Context, mockRepo *battlesmock.MockRepository, now time.Time) {
	mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *battles.CreateInput) (*battles.CreateOutput, error) {
			return &battles.CreateOutput{
				Record: &battles.Record{
					ID:        input.Report.BattleID,
					Report:    input.Report,
					CreatedAt: now,
					ExpiresAt: now.Add(input.TTL),
				},
			}, nil
		})
}
