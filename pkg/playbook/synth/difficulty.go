package synth

import "github.com/cognicore/playbook/pkg/playbook/records"

type difficultyRule struct {
	name   string
	match  func(phase, week int) bool
	result records.Difficulty
}

// difficultyRules is evaluated in order; the first match wins.
var difficultyRules = []difficultyRule{
	{"early_phase_one", func(p, w int) bool { return p == 1 && w <= 2 }, records.Beginner},
	{"late_phase", func(p, w int) bool { return p >= 3 }, records.Advanced},
	{"late_phase_two", func(p, w int) bool { return p == 2 && w >= 3 }, records.Advanced},
}

// Difficulty maps a roadmap position to a difficulty level.
func Difficulty(phase, week int) records.Difficulty {
	for _, r := range difficultyRules {
		if r.match(phase, week) {
			return r.result
		}
	}
	return records.Intermediate
}
