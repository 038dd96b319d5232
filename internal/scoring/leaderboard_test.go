package scoring

import (
	"testing"

	"footy-tipping/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaderboard(t *testing.T) {
	matches, tips := roundOne()
	matches = append(matches,
		completed("m5", 2, hawthorn, geelong, "Geelong Cats"),
		pending("m6", 2, sydney, adelaide),
	)
	tips = append(tips,
		tip("b", "m5", "GEE"),
		tip("b", "m6", "SYD"),
		tip("c", "m5", "HAW"),
	)
	members := []domain.Member{
		member("c", "Cleo", 99), // stored totals are ignored
		member("b", "Bob", 0),
		member("a", "Alice", 0),
		member("d", "Dana", 0),
	}

	standings := BuildLeaderboard(members, matches, tips)
	require.Len(t, standings, 4)

	type row struct {
		ID           string
		Rank         int
		Correct      int
		Tipped       int
		Decided      int
		RoundsPlayed int
	}
	got := make([]row, len(standings))
	for i, s := range standings {
		got[i] = row{s.Member.ID, s.Rank, s.Correct, s.Tipped, s.Decided, s.RoundsPlayed}
		assert.Equal(t, s.Correct, s.Member.TotalPoints)
	}
	want := []row{
		{ID: "a", Rank: 1, Correct: 2, Tipped: 2, Decided: 2, RoundsPlayed: 1},
		{ID: "b", Rank: 1, Correct: 2, Tipped: 4, Decided: 3, RoundsPlayed: 2},
		{ID: "c", Rank: 3, Correct: 1, Tipped: 3, Decided: 3, RoundsPlayed: 2},
		{ID: "d", Rank: 4, Correct: 0, Tipped: 0, Decided: 0, RoundsPlayed: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}

	assert.InDelta(t, 100.0, standings[0].SuccessRate, 0.001)
	assert.InDelta(t, 66.666, standings[1].SuccessRate, 0.001)
	assert.Zero(t, standings[3].SuccessRate)
}

func TestSummarizeSeason(t *testing.T) {
	matches, tips := roundOne()
	matches = append(matches, pending("m6", 2, sydney, adelaide))
	standings := BuildLeaderboard([]domain.Member{member("a", "Alice", 0), member("b", "Bob", 0)}, matches, tips)

	stats := SummarizeSeason(matches, standings)
	assert.Equal(t, SeasonStats{TotalGames: 3, CompletedGames: 2, UpcomingGames: 1, TotalCorrectTips: 3}, stats)
}
