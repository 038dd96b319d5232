package scoring

import "footy-tipping/internal/domain"

type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// IsTipCorrect decides a single tip.
//
// A match without a recorded result never has a correct tip. A drawn match
// credits every tip on it, whatever was tipped. Otherwise the tip must
// resolve to one of the two teams and that team must be the recorded winner;
// the tip and the winner may use different representations (name vs abbreviation).
func IsTipCorrect(tip domain.Tip, match domain.Match) bool {
	if !match.HasWinner() {
		return false
	}

	if match.Winner == domain.WinnerDraw {
		return true
	}

	tipped, ok := FindTippedTeam(tip.TeamTipped, match.HomeTeam, match.AwayTeam)
	if !ok {
		return false
	}

	return IsTeamMatch(tipped, match.Winner)
}

// Evaluate is IsTipCorrect with the pending state kept separate from a wrong tip.
func Evaluate(tip domain.Tip, match domain.Match) Outcome {
	if !match.HasWinner() {
		return OutcomePending
	}
	if IsTipCorrect(tip, match) {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}
