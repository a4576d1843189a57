// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/repositories/roster"
	rostermock "github.com/KirkDiggler/dna-planner/internal/repositories/roster/mock"
)

// ExpectRosterLoad sets up a single load returning r and the normalized wishlist
func ExpectRosterLoad(
	ctx context.Context, mockRepo *rostermock.MockRepository,
	r *entities.Roster, wishlist []string,
) *gomock.Call {
	return mockRepo.EXPECT().
		Load(ctx, &roster.LoadInput{}).
		Return(&roster.LoadOutput{Roster: r, Wishlist: entities.Wishlist(wishlist)}, nil)
}

// ExpectRosterSave sets up a single save and copies what was saved into saved
func ExpectRosterSave(
	ctx context.Context, mockRepo *rostermock.MockRepository, saved *roster.SaveInput,
) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *roster.SaveInput) (*roster.SaveOutput, error) {
			*saved = *input
			return &roster.SaveOutput{}, nil
		})
}
