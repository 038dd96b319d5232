package scoring

import (
	"testing"

	"footy-tipping/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankMembers(t *testing.T) {
	tests := []struct {
		name      string
		members   []domain.Member
		wantIDs   []string
		wantRanks []int
	}{
		{
			name: "ties share a rank and the next rank skips",
			members: []domain.Member{
				member("d", "Dana", 10),
				member("a", "Alice", 30),
				member("c", "Cleo", 25),
				member("b", "Bob", 30),
			},
			wantIDs:   []string{"a", "b", "c", "d"},
			wantRanks: []int{1, 1, 3, 4},
		},
		{
			name: "three way tie at the bottom",
			members: []domain.Member{
				member("a", "Alice", 10),
				member("b", "Bob", 10),
				member("c", "Cleo", 8),
			},
			wantIDs:   []string{"a", "b", "c"},
			wantRanks: []int{1, 1, 3},
		},
		{
			name: "equal points ordered by name regardless of input order",
			members: []domain.Member{
				member("3", "Poppy", 5),
				member("1", "Granny", 5),
				member("2", "Leo", 5),
			},
			wantIDs:   []string{"1", "2", "3"},
			wantRanks: []int{1, 1, 1},
		},
		{
			name: "same name falls back to id",
			members: []domain.Member{
				member("b", "Sam", 1),
				member("a", "Sam", 1),
			},
			wantIDs:   []string{"a", "b"},
			wantRanks: []int{1, 1},
		},
		{
			name:      "empty",
			members:   nil,
			wantIDs:   []string{},
			wantRanks: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankMembers(tt.members)
			require.Len(t, ranked, len(tt.wantIDs))

			ids := make([]string, len(ranked))
			ranks := make([]int, len(ranked))
			for i, r := range ranked {
				ids[i] = r.ID
				ranks[i] = r.Rank
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantRanks, ranks)
		})
	}
}

func TestRankMembers_DoesNotReorderInput(t *testing.T) {
	members := []domain.Member{member("a", "Alice", 1), member("b", "Bob", 9)}
	RankMembers(members)
	assert.Equal(t, "a", members[0].ID)
}
