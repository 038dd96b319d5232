package scoring

import (
	"time"

	"footy-tipping/internal/domain"
)

var (
	adelaide = domain.Team{ID: "t-adl", Name: "Adelaide Crows", Abbreviation: "ADL"}
	hawthorn = domain.Team{ID: "t-haw", Name: "Hawthorn Hawks", Abbreviation: "HAW"}
	geelong  = domain.Team{ID: "t-gee", Name: "Geelong Cats", Abbreviation: "GEE"}
	sydney   = domain.Team{ID: "t-syd", Name: "Sydney Swans", Abbreviation: "SYD"}

	seasonStart = time.Date(2025, time.March, 13, 19, 30, 0, 0, time.UTC)
)

func completed(id string, round int, home, away domain.Team, winner string) domain.Match {
	return domain.Match{
		ID:         id,
		Season:     2025,
		Round:      round,
		HomeTeam:   home,
		AwayTeam:   away,
		StartsAt:   seasonStart.AddDate(0, 0, 7*round),
		Winner:     winner,
		IsComplete: true,
	}
}

func pending(id string, round int, home, away domain.Team) domain.Match {
	return domain.Match{
		ID:       id,
		Season:   2025,
		Round:    round,
		HomeTeam: home,
		AwayTeam: away,
		StartsAt: seasonStart.AddDate(0, 0, 7*round),
	}
}

func tip(memberID, matchID, team string) domain.Tip {
	return domain.Tip{TipperID: memberID, MatchID: matchID, TeamTipped: team}
}

func member(id, name string, points int) domain.Member {
	return domain.Member{ID: id, Name: name, TotalPoints: points}
}
