package service

import (
	"context"
	"testing"

	"footy-tipping/internal/scoring"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundService_GetRoundFinished(t *testing.T) {
	f := newFixture(t)
	svc := NewRoundService(f.matches, f.tips, f.members, zerolog.Nop())
	svc.now = at(kickoff.AddDate(0, 0, 2))

	view, err := svc.GetRound(context.Background(), 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, "Round 1", view.Label)
	assert.True(t, view.Locked)
	assert.True(t, view.TipsComplete)
	require.Len(t, view.Winners, 1)
	assert.Equal(t, f.amy.ID, view.Winners[0].ID)

	require.Len(t, view.Matches, 2)
	first := view.Matches[0]
	assert.Equal(t, "r1m1", first.Match.ID)
	require.Len(t, first.Tips, 2)
	assert.Equal(t, "Amy", first.Tips[0].Member.Name)
	assert.Equal(t, "ADL", first.Tips[0].Abbreviation)
	assert.Equal(t, scoring.OutcomeCorrect, first.Tips[0].Outcome)
	assert.Equal(t, scoring.OutcomeIncorrect, first.Tips[1].Outcome)

	require.Len(t, first.HomeForm, 1)
	assert.Equal(t, scoring.ResultWin, first.HomeForm[0].Result)
	require.Len(t, first.AwayForm, 1)
	assert.Equal(t, scoring.ResultLoss, first.AwayForm[0].Result)
}

func TestRoundService_GetRoundUpcoming(t *testing.T) {
	f := newFixture(t)
	svc := NewRoundService(f.matches, f.tips, f.members, zerolog.Nop())
	svc.now = at(kickoff.AddDate(0, 0, 2))

	view, err := svc.GetRound(context.Background(), 2025, 2)
	require.NoError(t, err)

	assert.False(t, view.Locked)
	assert.False(t, view.TipsComplete)
	assert.Empty(t, view.Winners)
	for _, m := range view.Matches {
		assert.Empty(t, m.Tips)
	}
}

func TestRoundService_GetRoundMissing(t *testing.T) {
	f := newFixture(t)
	svc := NewRoundService(f.matches, f.tips, f.members, zerolog.Nop())

	_, err := svc.GetRound(context.Background(), 2025, 9)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestRoundService_CurrentRound(t *testing.T) {
	f := newFixture(t)
	svc := NewRoundService(f.matches, f.tips, f.members, zerolog.Nop())

	svc.now = at(kickoff.AddDate(0, 0, 2))
	current, err := svc.CurrentRound(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	svc.now = at(kickoff.AddDate(1, 0, 0))
	current, err = svc.CurrentRound(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	current, err = svc.CurrentRound(context.Background(), 1999)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
}
