package server

type SignInRequest struct {
	Pin string `json:"pin"`
}

type SignInResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type LeaderboardRequest struct {
	Season int `json:"season,omitempty"`
}

type LeaderboardResponse struct {
	Season    int        `json:"season"`
	Standings []Standing `json:"standings"`
}

type Standing struct {
	Rank         int     `json:"rank"`
	MemberID     string  `json:"memberId"`
	Name         string  `json:"name"`
	AvatarURL    string  `json:"avatarUrl,omitempty"`
	Points       int     `json:"points"`
	Tipped       int     `json:"tipped"`
	Decided      int     `json:"decided"`
	SuccessRate  float64 `json:"successRate"`
	RoundsPlayed int     `json:"roundsPlayed"`
}

type RoundRequest struct {
	Season int `json:"season,omitempty"`
	// Round is optional; the current round is used when it is absent.
	Round *int `json:"round,omitempty"`
}

type RoundResponse struct {
	Season       int      `json:"season"`
	Round        int      `json:"round"`
	Label        string   `json:"label"`
	Locked       bool     `json:"locked"`
	TipsComplete bool     `json:"tipsComplete"`
	Matches      []Match  `json:"matches"`
	Winners      []Member `json:"winners"`
}

type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type Member struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Match struct {
	ID         string     `json:"id"`
	Round      int        `json:"round"`
	Venue      string     `json:"venue,omitempty"`
	StartsAt   string     `json:"startsAt,omitempty"`
	Home       Team       `json:"home"`
	Away       Team       `json:"away"`
	HomeScore  *int       `json:"homeScore,omitempty"`
	AwayScore  *int       `json:"awayScore,omitempty"`
	Winner     string     `json:"winner,omitempty"`
	IsComplete bool       `json:"isComplete"`
	HomeForm   []FormItem `json:"homeForm,omitempty"`
	AwayForm   []FormItem `json:"awayForm,omitempty"`
	Tips       []Tip      `json:"tips,omitempty"`
}

type FormItem struct {
	MatchID  string `json:"matchId"`
	Round    int    `json:"round"`
	Location string `json:"location"`
	Result   string `json:"result"`
}

type Tip struct {
	MemberID     string `json:"memberId"`
	MemberName   string `json:"memberName"`
	TeamTipped   string `json:"teamTipped"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Outcome      string `json:"outcome"`
}

type RoundScoresRequest struct {
	Season int `json:"season,omitempty"`
}

type RoundScoresResponse struct {
	Season int        `json:"season"`
	Rounds []int      `json:"rounds"`
	Rows   []ScoreRow `json:"rows"`
}

type ScoreRow struct {
	MemberID string      `json:"memberId"`
	Name     string      `json:"name"`
	Cells    []ScoreCell `json:"cells"`
}

// ScoreCell is one round for one member. Present is false when there is
// nothing to score yet, which renders as "-".
type ScoreCell struct {
	Round   int    `json:"round"`
	Present bool   `json:"present"`
	Correct int    `json:"correct"`
	Decided int    `json:"decided"`
	Display string `json:"display"`
}

type SeasonStatsRequest struct {
	Season int `json:"season,omitempty"`
}

type SeasonStatsResponse struct {
	Season           int `json:"season"`
	TotalGames       int `json:"totalGames"`
	CompletedGames   int `json:"completedGames"`
	UpcomingGames    int `json:"upcomingGames"`
	TotalCorrectTips int `json:"totalCorrectTips"`
}

type SubmitTipsRequest struct {
	Season   int    `json:"season,omitempty"`
	MemberID string `json:"memberId"`
	Round    int    `json:"round"`
	Picks    []Pick `json:"picks"`
}

type Pick struct {
	MatchID string `json:"matchId"`
	Team    string `json:"team"`
}

type SubmitTipsResponse struct {
	Stored int `json:"stored"`
}

type RecordResultRequest struct {
	MatchID   string `json:"matchId"`
	Winner    string `json:"winner"`
	HomeScore *int   `json:"homeScore,omitempty"`
	AwayScore *int   `json:"awayScore,omitempty"`
}

type RecordResultResponse struct {
	Match Match `json:"match"`
}

type ImportFixturesRequest struct {
	Season int `json:"season,omitempty"`
}

type ImportFixturesResponse struct {
	Teams   int `json:"teams"`
	Matches int `json:"matches"`
	Skipped int `json:"skipped"`
}
