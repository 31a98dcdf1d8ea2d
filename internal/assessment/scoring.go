package assessment

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/model"
	"math"
	"strings"
	"unicode/utf8"
)

// Heuristic thresholds. They are tunable, not semantic requirements.
const (
	// FillBlankOverlapNum/FillBlankOverlapDen is the share of required terms
	// a fill-in-the-blank answer must contain.
	FillBlankOverlapNum = 7
	FillBlankOverlapDen = 10

	// An open answer longer than AttemptMinChars earns attempt credit, one
	// longer than DetailMinChars earns the rest and counts as correct.
	AttemptMinChars = 20
	DetailMinChars  = 100
	AttemptShare    = 0.7

	PromoteAtPercent  = 80.0
	KeepAtPercent     = 60.0
	StrongAtPercent   = 70.0
	ModerateAtPercent = 50.0
)

const fillBlankSeparator = ", "

// Outcome is the scoring of one submission against one assessment.
type Outcome struct {
	Score           int
	TotalPoints     int
	Percentage      float64
	SkillLevel      string
	Recommendations []string
	CorrectAnswers  int
	TotalQuestions  int
}

// Evaluate scores sub against a and derives the skill level and
// recommendations. It is pure: the same inputs always give the same Outcome.
func Evaluate(a *model.Assessment, sub model.Submission) Outcome {
	o := Score(a, sub)
	o.SkillLevel = DetermineSkillLevel(a.Level, o.Percentage)
	o.Recommendations = Recommendations(o.Percentage, sub.CareerGoal)
	return o
}

// Score awards points per matched response. Responses naming unknown
// questions are skipped and do not count toward TotalPoints.
func Score(a *model.Assessment, sub model.Submission) Outcome {
	byID := make(map[string]model.Question, len(a.Questions))
	for _, q := range a.Questions {
		byID[q.ID] = q
	}

	o := Outcome{TotalQuestions: len(a.Questions)}
	for _, r := range sub.Responses {
		q, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		o.TotalPoints += q.Points

		points, correct := scoreAnswer(q, r.Answer)
		o.Score += points
		if correct {
			o.CorrectAnswers++
		}
	}

	o.Percentage = Percentage(o.Score, o.TotalPoints)
	return o
}

func scoreAnswer(q model.Question, answer string) (int, bool) {
	switch q.QuestionType {
	case model.QuestionTypeMCQ:
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer)) {
			return q.Points, true
		}
		return 0, false
	case model.QuestionTypeFillBlank:
		if FillBlankPasses(q.CorrectAnswer, answer) {
			return q.Points, true
		}
		return 0, false
	case model.QuestionTypePractical, model.QuestionTypeCoding:
		return openAnswerCredit(q.Points, answer)
	default:
		return 0, false
	}
}

// FillBlankPasses reports whether answer contains enough of the required
// terms. An answer key with no terms never passes.
func FillBlankPasses(correct, answer string) bool {
	required := termSet(correct)
	if len(required) == 0 {
		return false
	}
	given := termSet(answer)

	matched := 0
	for term := range required {
		if given[term] {
			matched++
		}
	}
	return matched*FillBlankOverlapDen >= len(required)*FillBlankOverlapNum
}

func termSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Split(s, fillBlankSeparator) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = true
		}
	}
	return set
}

// openAnswerCredit splits points into a rounded attempt share and the
// remaining detail share, so a full answer always earns exactly points.
func openAnswerCredit(points int, answer string) (int, bool) {
	n := utf8.RuneCountInString(strings.TrimSpace(answer))
	if n <= AttemptMinChars {
		return 0, false
	}
	attempt := int(math.Round(AttemptShare * float64(points)))
	if n <= DetailMinChars {
		return attempt, false
	}
	return points, true
}

// Percentage is score/total as a percentage rounded to two decimals, or 0
// when total is 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)*100/float64(total)*100) / 100
}

// DetermineSkillLevel derives the learner's level from the assessment level.
// Only intermediate is promoted on a high score; low scores step down one
// level, never below beginner.
func DetermineSkillLevel(original string, percentage float64) string {
	switch {
	case percentage >= PromoteAtPercent:
		if original == catalog.LevelIntermediate {
			return catalog.LevelAdvanced
		}
		return original
	case percentage >= KeepAtPercent:
		return original
	default:
		return catalog.StepDown(original)
	}
}

// Recommendations are appended in a fixed order: one score band, then any
// career goal extras.
func Recommendations(percentage float64, careerGoal string) []string {
	var recs []string
	switch {
	case percentage < ModerateAtPercent:
		recs = append(recs,
			"Focus on building strong fundamentals before moving to advanced topics",
			"Start with beginner-friendly resources and guided labs",
		)
	case percentage < StrongAtPercent:
		recs = append(recs,
			"Review core concepts where you lost points",
			"Practice more hands-on exercises to solidify your knowledge",
		)
	default:
		recs = append(recs,
			"You're ready for advanced topics and specialized tracks",
			"Consider pursuing a relevant industry certification",
		)
	}

	switch careerGoal {
	case catalog.GoalFaangPrep:
		recs = append(recs, "Practice system design and coding interview problems with a security focus")
	case catalog.GoalCareerSwitcher:
		recs = append(recs, "Build a portfolio of security projects and earn an entry-level certification such as CompTIA Security+")
	}
	return recs
}
