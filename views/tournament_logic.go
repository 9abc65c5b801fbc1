package views

import (
	"sort"

	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
)

type StageSection struct {
	Step    tournament.Step
	Matches []tournament.Match
}

// PrepareStageSections splits matches into wizard steps (one per group, one per knockout round)
// in tournament order, each sorted by kickoff. Steps without matches are left out.
func PrepareStageSections(matches []tournament.Match) []StageSection {
	byStep := make(map[tournament.Step][]tournament.Match)
	for _, m := range matches {
		step := tournament.Step{Stage: m.Stage}
		if m.GroupCode != nil {
			step.GroupCode = *m.GroupCode
		}
		byStep[step] = append(byStep[step], m)
	}

	var sections []StageSection
	for _, step := range tournament.Steps() {
		stepMatches := byStep[step]
		if len(stepMatches) == 0 {
			continue
		}
		sort.SliceStable(stepMatches, func(i, j int) bool {
			return stepMatches[i].KickoffAt.Before(stepMatches[j].KickoffAt)
		})
		sections = append(sections, StageSection{Step: step, Matches: stepMatches})
	}

	return sections
}
