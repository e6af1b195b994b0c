package directions

import (
	"strings"

	"campusmove/pkg/model"
)

// Disclaimer is shown with every wheelchair route. Filtering is keyword
// based and does not guarantee the remaining steps connect.
const Disclaimer = "These directions attempt to provide wheelchair-accessible routes but may not account for all obstacles."

var inaccessibleKeywords = []string{"stairs", "step"}

// FilterWheelchairSteps drops every step whose instruction mentions stairs or steps.
func FilterWheelchairSteps(steps []model.Step) []model.Step {
	out := make([]model.Step, 0, len(steps))
	for _, s := range steps {
		if !mentionsAny(strings.ToLower(s.Instructions), inaccessibleKeywords) {
			out = append(out, s)
		}
	}
	return out
}

func mentionsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
