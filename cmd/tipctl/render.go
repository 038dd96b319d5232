package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"footy-tipping/internal/domain"
	"footy-tipping/internal/rounds"
	"footy-tipping/internal/scoring"
	"footy-tipping/internal/service"
)

func renderLeaderboard(w io.Writer, standings []scoring.Standing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tCORRECT\tTIPPED\tSUCCESS\tROUNDS")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.1f%%\t%d\n",
			s.Rank, s.Member.Name, s.Member.TotalPoints, s.Tipped, s.SuccessRate, s.RoundsPlayed)
	}
	return tw.Flush()
}

func renderRoundScores(w io.Writer, scores *service.RoundScores) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"MEMBER"}
	for _, r := range scores.Rounds {
		header = append(header, shortLabel(r))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, m := range scores.Members {
		row := []string{m.Name}
		for _, r := range scores.Rounds {
			row = append(row, scores.Table.Cell(m.ID, r))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func renderRounds(w io.Writer, numbers []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tLABEL")
	for _, n := range numbers {
		fmt.Fprintf(tw, "%d\t%s\n", n, rounds.Label(n))
	}
	return tw.Flush()
}

func renderTeams(w io.Writer, teams []domain.Team) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ABBR\tNAME\tID")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Abbreviation, t.Name, t.ID)
	}
	return tw.Flush()
}

// shortLabel keeps column headers narrow: numbered rounds become R<n>,
// named rounds keep their initials.
func shortLabel(round int) string {
	label := rounds.Label(round)
	if label == fmt.Sprintf("Round %d", round) {
		return fmt.Sprintf("R%d", round)
	}
	var b strings.Builder
	for _, word := range strings.Fields(label) {
		b.WriteString(word[:1])
	}
	return b.String()
}
