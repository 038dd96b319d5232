// Package seed loads a competition from a YAML file: teams, members,
// fixtures and optionally results and tips.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"footy-tipping/internal/domain"
	"footy-tipping/internal/repository"
	"footy-tipping/internal/scoring"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type File struct {
	Season  int      `yaml:"season"`
	Teams   []Team   `yaml:"teams"`
	Members []Member `yaml:"members"`
	Matches []Match  `yaml:"matches"`
	Tips    []Tip    `yaml:"tips"`
}

type Team struct {
	Name         string `yaml:"name"`
	Abbreviation string `yaml:"abbreviation"`
}

type Member struct {
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

type Match struct {
	ID        string    `yaml:"id"`
	Round     int       `yaml:"round"`
	Venue     string    `yaml:"venue"`
	StartsAt  time.Time `yaml:"starts_at"`
	Home      string    `yaml:"home"`
	Away      string    `yaml:"away"`
	Winner    string    `yaml:"winner"`
	HomeScore *int      `yaml:"home_score"`
	AwayScore *int      `yaml:"away_score"`
}

type Tip struct {
	Member string `yaml:"member"`
	Match  string `yaml:"match"`
	Team   string `yaml:"team"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks references inside the file. Teams are referenced by
// abbreviation, members by name and matches by id.
func (f *File) Validate() error {
	if f.Season <= 0 {
		return fmt.Errorf("season must be set")
	}

	teams := make(map[string]domain.Team, len(f.Teams))
	for _, t := range f.Teams {
		if t.Name == "" || t.Abbreviation == "" {
			return fmt.Errorf("team %q needs a name and an abbreviation", t.Name+t.Abbreviation)
		}
		if _, dup := teams[t.Abbreviation]; dup {
			return fmt.Errorf("duplicate team %s", t.Abbreviation)
		}
		teams[t.Abbreviation] = domain.Team{Name: t.Name, Abbreviation: t.Abbreviation}
	}

	members := make(map[string]struct{}, len(f.Members))
	for _, m := range f.Members {
		if m.Name == "" {
			return fmt.Errorf("member without a name")
		}
		if _, dup := members[m.Name]; dup {
			return fmt.Errorf("duplicate member %s", m.Name)
		}
		members[m.Name] = struct{}{}
	}

	matches := make(map[string]domain.Match, len(f.Matches))
	for _, m := range f.Matches {
		if m.ID == "" {
			return fmt.Errorf("match in round %d has no id", m.Round)
		}
		if _, dup := matches[m.ID]; dup {
			return fmt.Errorf("duplicate match %s", m.ID)
		}
		if m.Round < 0 {
			return fmt.Errorf("match %s: round must not be negative", m.ID)
		}
		home, okHome := teams[m.Home]
		away, okAway := teams[m.Away]
		if !okHome || !okAway {
			return fmt.Errorf("match %s: unknown team %s or %s", m.ID, m.Home, m.Away)
		}
		if m.Home == m.Away {
			return fmt.Errorf("match %s: a team cannot play itself", m.ID)
		}
		dm := domain.Match{HomeTeam: home, AwayTeam: away}
		if m.Winner != "" && !dm.ValidWinner(m.Winner) {
			return fmt.Errorf("match %s: invalid winner %q", m.ID, m.Winner)
		}
		matches[m.ID] = dm
	}

	for _, t := range f.Tips {
		if _, ok := members[t.Member]; !ok {
			return fmt.Errorf("tip for unknown member %s", t.Member)
		}
		m, ok := matches[t.Match]
		if !ok {
			return fmt.Errorf("tip for unknown match %s", t.Match)
		}
		if _, ok := scoring.FindTippedTeam(t.Team, m.HomeTeam, m.AwayTeam); !ok {
			return fmt.Errorf("tip by %s on %s: %q is not playing", t.Member, t.Match, t.Team)
		}
	}

	return nil
}

type Seeder struct {
	teamRepo   *repository.TeamRepository
	memberRepo *repository.MemberRepository
	matchRepo  *repository.MatchRepository
	tipRepo    *repository.TipRepository
	logger     zerolog.Logger
}

func NewSeeder(teamRepo *repository.TeamRepository, memberRepo *repository.MemberRepository, matchRepo *repository.MatchRepository, tipRepo *repository.TipRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{teamRepo: teamRepo, memberRepo: memberRepo, matchRepo: matchRepo, tipRepo: tipRepo, logger: logger}
}

type Summary struct {
	Teams   int
	Members int
	Matches int
	Tips    int
}

// Apply writes the file to the store. Members already present are matched
// by name so re-seeding keeps their ids and tips. Match ids in the file are
// local to its season.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Summary, error) {
	teams := make([]domain.Team, len(f.Teams))
	for i, t := range f.Teams {
		teams[i] = domain.Team{Name: t.Name, Abbreviation: t.Abbreviation}
	}
	if err := s.teamRepo.UpsertBatch(ctx, teams); err != nil {
		return nil, fmt.Errorf("failed to seed teams: %w", err)
	}
	byAbbr := make(map[string]domain.Team, len(teams))
	for _, t := range teams {
		byAbbr[t.Abbreviation] = t
	}

	existing, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	memberIDs := make(map[string]string, len(existing))
	for _, m := range existing {
		memberIDs[m.Name] = m.ID
	}
	for _, m := range f.Members {
		member := domain.Member{ID: memberIDs[m.Name], Name: m.Name, AvatarURL: m.AvatarURL}
		if err := s.memberRepo.Upsert(ctx, &member); err != nil {
			return nil, fmt.Errorf("failed to seed member %s: %w", m.Name, err)
		}
		memberIDs[m.Name] = member.ID
	}

	matches := make([]domain.Match, len(f.Matches))
	matchIDs := make(map[string]string, len(f.Matches))
	rounds := make(map[string]int, len(f.Matches))
	for i, m := range f.Matches {
		matchIDs[m.ID] = repository.SeedMatchID(f.Season, m.ID)
		matches[i] = domain.Match{
			ID:         matchIDs[m.ID],
			Season:     f.Season,
			Round:      m.Round,
			Venue:      m.Venue,
			StartsAt:   m.StartsAt,
			HomeTeam:   byAbbr[m.Home],
			AwayTeam:   byAbbr[m.Away],
			HomeScore:  m.HomeScore,
			AwayScore:  m.AwayScore,
			Winner:     m.Winner,
			IsComplete: m.Winner != "",
		}
		rounds[m.ID] = m.Round
	}
	if err := s.matchRepo.UpsertBatch(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to seed matches: %w", err)
	}

	tips := make([]domain.Tip, len(f.Tips))
	for i, t := range f.Tips {
		tips[i] = domain.Tip{
			TipperID:   memberIDs[t.Member],
			MatchID:    matchIDs[t.Match],
			Round:      rounds[t.Match],
			TeamTipped: t.Team,
		}
	}
	if err := s.tipRepo.UpsertBatch(ctx, tips); err != nil {
		return nil, fmt.Errorf("failed to seed tips: %w", err)
	}

	summary := &Summary{Teams: len(teams), Members: len(f.Members), Matches: len(matches), Tips: len(tips)}
	s.logger.Info().
		Int("season", f.Season).
		Int("teams", summary.Teams).
		Int("members", summary.Members).
		Int("matches", summary.Matches).
		Int("tips", summary.Tips).
		Msg("seed applied")
	return summary, nil
}
