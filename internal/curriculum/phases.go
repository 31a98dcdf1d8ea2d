package curriculum

import "fmt"

type Phase struct {
	Weeks string
	Title string
}

var phaseTitles = []string{
	"Foundation & Fundamentals",
	"Core Concepts & Methodologies",
	"Advanced Techniques & Applications",
	"Practical Implementation & Mastery",
}

// Phases splits a plan of n weeks into up to four consecutive phases. Earlier
// phases take the remainder weeks.
func Phases(weeks int) []Phase {
	if weeks < 1 {
		weeks = 1
	}
	count := len(phaseTitles)
	if weeks < count {
		count = weeks
	}

	out := make([]Phase, 0, count)
	start := 1
	for i := 0; i < count; i++ {
		span := weeks / count
		if i < weeks%count {
			span++
		}
		end := start + span - 1
		label := fmt.Sprintf("Week %d", start)
		if end > start {
			label = fmt.Sprintf("Week %d-%d", start, end)
		}
		out = append(out, Phase{Weeks: label, Title: phaseTitles[i]})
		start = end + 1
	}
	return out
}
