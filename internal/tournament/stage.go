package tournament

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StageGroup      Stage = "GROUP"
	StageRoundOf16  Stage = "R16"
	StageQuarter    Stage = "QF"
	StageSemi       Stage = "SF"
	StageThirdPlace Stage = "3P"
	StageFinal      Stage = "F"
)

type Phase string

const (
	PhaseGroup    Phase = "group"
	PhaseKnockout Phase = "knockout"
)

// Knockout stages in the order they are played. 3P and F share a tier.
var KnockoutStages = []Stage{StageRoundOf16, StageQuarter, StageSemi, StageThirdPlace, StageFinal}

var stageTiers = map[Stage]int{
	StageGroup:      0,
	StageRoundOf16:  1,
	StageQuarter:    2,
	StageSemi:       3,
	StageThirdPlace: 4,
	StageFinal:      4,
}

func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := stageTiers[stage]; !ok {
		return "", fmt.Errorf("unknown stage %q", s)
	}
	return stage, nil
}

// Panics on an unknown code, stages only come from ParseStage or the constants above
func (s Stage) Phase() Phase {
	if s.Tier() == 0 {
		return PhaseGroup
	}
	return PhaseKnockout
}

func (s Stage) IsKnockout() bool {
	return s.Phase() == PhaseKnockout
}

// Tier is the position in the elimination sequence, 0 for the group stage
func (s Stage) Tier() int {
	tier, ok := stageTiers[s]
	if !ok {
		panic(fmt.Sprintf("tournament: unknown stage %q", string(s)))
	}
	return tier
}

func (s Stage) Label() string {
	switch s {
	case StageGroup:
		return "Group stage"
	case StageRoundOf16:
		return "Round of 16"
	case StageQuarter:
		return "Quarter-finals"
	case StageSemi:
		return "Semi-finals"
	case StageThirdPlace:
		return "Third place"
	case StageFinal:
		return "Final"
	}
	panic(fmt.Sprintf("tournament: unknown stage %q", string(s)))
}

var GroupCodes = []string{"A", "B", "C", "D", "E", "F"}

func ParseGroupCode(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for _, g := range GroupCodes {
		if g == code {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown group %q", s)
}
