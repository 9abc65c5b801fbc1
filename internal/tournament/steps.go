package tournament

import "fmt"

// Step is one page of the prediction wizard: either a single group or a knockout round
type Step struct {
	Stage     Stage
	GroupCode string
}

// Groups come first, then the knockout rounds in playing order
func Steps() []Step {
	steps := make([]Step, 0, len(GroupCodes)+len(KnockoutStages))
	for _, g := range GroupCodes {
		steps = append(steps, Step{Stage: StageGroup, GroupCode: g})
	}
	for _, s := range KnockoutStages {
		steps = append(steps, Step{Stage: s})
	}
	return steps
}

// Slug is the URL segment for the step, e.g. "group/A" or "knockout/QF"
func (s Step) Slug() string {
	if s.Stage == StageGroup {
		return "group/" + s.GroupCode
	}
	return "knockout/" + string(s.Stage)
}

func (s Step) Title() string {
	if s.Stage == StageGroup {
		return "Group " + s.GroupCode
	}
	return s.Stage.Label()
}

// Returns the index of the step in Steps(), or -1
func FindStep(kind, code string) (Step, int, error) {
	var target Step
	switch kind {
	case "group":
		g, err := ParseGroupCode(code)
		if err != nil {
			return Step{}, -1, err
		}
		target = Step{Stage: StageGroup, GroupCode: g}
	case "knockout":
		stage, err := ParseStage(code)
		if err != nil {
			return Step{}, -1, err
		}
		if !stage.IsKnockout() {
			return Step{}, -1, fmt.Errorf("%q is not a knockout round", code)
		}
		target = Step{Stage: stage}
	default:
		return Step{}, -1, fmt.Errorf("unknown step kind %q", kind)
	}

	for i, s := range Steps() {
		if s == target {
			return s, i, nil
		}
	}
	return Step{}, -1, fmt.Errorf("step %s not found", target.Slug())
}

// Previous and next steps for wizard navigation, nil at either end
func Neighbours(index int) (prev, next *Step) {
	steps := Steps()
	if index > 0 && index < len(steps) {
		p := steps[index-1]
		prev = &p
	}
	if index >= 0 && index < len(steps)-1 {
		n := steps[index+1]
		next = &n
	}
	return prev, next
}
