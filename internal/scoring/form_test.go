package scoring

import (
	"testing"

	"footy-tipping/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTeamForm(t *testing.T) {
	matches := []domain.Match{
		completed("r1", 1, adelaide, hawthorn, "ADL"),
		completed("r2", 2, geelong, adelaide, "GEE"),
		completed("r3", 3, adelaide, sydney, domain.WinnerDraw),
		completed("r4", 4, sydney, adelaide, "Adelaide Crows"),
		completed("r5", 5, adelaide, geelong, "Adelaide Crows"),
		completed("r6", 6, hawthorn, adelaide, "HAW"),
		pending("r7", 7, adelaide, hawthorn),
		completed("x1", 3, hawthorn, geelong, "HAW"),
	}

	got := TeamForm(matches, adelaide, 0)
	want := []FormEntry{
		{MatchID: "r6", Round: 6, Location: LocationAway, Result: ResultLoss},
		{MatchID: "r5", Round: 5, Location: LocationHome, Result: ResultWin},
		{MatchID: "r4", Round: 4, Location: LocationAway, Result: ResultWin},
		{MatchID: "r3", Round: 3, Location: LocationHome, Result: ResultDraw},
		{MatchID: "r2", Round: 2, Location: LocationAway, Result: ResultLoss},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, TeamForm(matches, adelaide, 2), 2)
	assert.Empty(t, TeamForm(matches, domain.Team{ID: "t-none", Name: "Nobody"}, 5))
}

func TestTeamForm_MatchesByNameWithoutIDs(t *testing.T) {
	home := domain.Team{Name: "Adelaide Crows", Abbreviation: "ADL"}
	away := domain.Team{Name: "Hawthorn Hawks", Abbreviation: "HAW"}
	m := completed("m1", 1, home, away, "HAW")

	got := TeamForm([]domain.Match{m}, domain.Team{Name: "Hawthorn Hawks"}, 5)
	assert.Equal(t, []FormEntry{{MatchID: "m1", Round: 1, Location: LocationAway, Result: ResultWin}}, got)
}
