package assessment

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/util"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(id, typ, correct string, points int) model.Question {
	return model.Question{ID: id, QuestionType: typ, CorrectAnswer: correct, Points: points}
}

func resp(id, answer string) model.QuestionResponse {
	return model.QuestionResponse{QuestionID: id, Answer: answer}
}

func TestNewAssessment(t *testing.T) {
	c := catalog.Default()
	a, err := NewAssessment(c, "network-security", "beginner", "student")
	require.NoError(t, err)

	require.Len(t, a.Questions, 5)
	types := []string{}
	points := []int{}
	for _, q := range a.Questions {
		types = append(types, q.QuestionType)
		points = append(points, q.Points)
		assert.Equal(t, "beginner", q.Difficulty)
		assert.NotEmpty(t, q.ID)
	}
	assert.Equal(t, []string{"mcq", "practical", "fill_blank", "coding", "practical"}, types)
	assert.Equal(t, []int{10, 15, 10, 20, 5}, points)
	assert.Equal(t, 60, a.TotalPoints)
	assert.Contains(t, a.Questions[0].QuestionText, "Network Security and Infrastructure Protection")
	assert.Contains(t, a.Questions[4].QuestionText, "career path")
}

func TestNewAssessment_DeterministicContent(t *testing.T) {
	c := catalog.Default()
	a1, _ := NewAssessment(c, "cloud-security", "advanced", "professional")
	a2, _ := NewAssessment(c, "cloud-security", "advanced", "professional")

	assert.NotEqual(t, a1.ID, a2.ID)
	for i := range a1.Questions {
		assert.Equal(t, a1.Questions[i].QuestionText, a2.Questions[i].QuestionText)
		assert.Equal(t, a1.Questions[i].CorrectAnswer, a2.Questions[i].CorrectAnswer)
	}
}

func TestNewAssessment_Invalid(t *testing.T) {
	c := catalog.Default()

	_, err := NewAssessment(c, "basket-weaving", "beginner", "student")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.Contains(t, err.Error(), "topic")

	_, err = NewAssessment(c, "red-team", "wizard", "student")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.Contains(t, err.Error(), "level")
}

func TestProject_HidesAnswers(t *testing.T) {
	a, err := NewAssessment(catalog.Default(), "cryptography", "beginner", "student")
	require.NoError(t, err)

	projected := Project(a)
	require.Len(t, projected, 5)
	assert.Equal(t, a.Questions[0].Options, projected[0].Options)
	assert.Nil(t, projected[1].Options)
}

func TestScore_MCQ(t *testing.T) {
	a := &model.Assessment{Questions: []model.Question{q("m", model.QuestionTypeMCQ, "DDoS Attack", 10)}}

	tests := []struct {
		answer string
		want   int
	}{
		{"DDoS Attack", 10},
		{"  ddos attack \n", 10},
		{"Phishing", 0},
		{"", 0},
	}
	for _, tt := range tests {
		o := Score(a, model.Submission{Responses: []model.QuestionResponse{resp("m", tt.answer)}})
		assert.Equal(t, tt.want, o.Score, tt.answer)
	}
}

func TestScore_FillBlank(t *testing.T) {
	correct := "Confidentiality, Integrity, Availability"
	a := &model.Assessment{Questions: []model.Question{q("f", model.QuestionTypeFillBlank, correct, 10)}}

	tests := []struct {
		name    string
		answer  string
		points  int
		correct int
	}{
		{"two of three terms", "confidentiality, availability", 0, 0},
		{"exact", "Confidentiality, Integrity, Availability", 10, 1},
		{"case and order", "availability, INTEGRITY, confidentiality", 10, 1},
		{"duplicates do not count twice", "integrity, integrity, integrity", 0, 0},
		{"empty", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Score(a, model.Submission{Responses: []model.QuestionResponse{resp("f", tt.answer)}})
			assert.Equal(t, tt.points, o.Score)
			assert.Equal(t, tt.correct, o.CorrectAnswers)
		})
	}
}

func TestFillBlankPasses_Threshold(t *testing.T) {
	key := "a, b, c, d, e, f, g, h, i, j"
	assert.True(t, FillBlankPasses(key, "a, b, c, d, e, f, g"))
	assert.False(t, FillBlankPasses(key, "a, b, c, d, e, f"))
	assert.False(t, FillBlankPasses("", "anything"))
}

func TestFillBlankPasses_IgnoresCaseAndSpacing(t *testing.T) {
	key := "Confidentiality, Integrity, Availability"
	assert.True(t, FillBlankPasses(key, "  CONFIDENTIALITY, integrity ,  Availability "))
	assert.True(t, FillBlankPasses(key, "availability, integrity, confidentiality"))
	assert.False(t, FillBlankPasses(key, "Confidentiality Integrity Availability"))
}

func TestScore_OpenAnswers(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		points  int
		length  int
		want    int
		correct int
	}{
		{"too short", model.QuestionTypePractical, 15, 20, 0, 0},
		{"attempt", model.QuestionTypePractical, 15, 21, 11, 0},
		{"attempt upper bound", model.QuestionTypePractical, 15, 100, 11, 0},
		{"detailed", model.QuestionTypePractical, 15, 101, 15, 1},
		{"coding attempt", model.QuestionTypeCoding, 20, 50, 14, 0},
		{"coding detailed", model.QuestionTypeCoding, 20, 300, 20, 1},
		{"career question", model.QuestionTypePractical, 5, 60, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Assessment{Questions: []model.Question{q("p", tt.typ, "", tt.points)}}
			o := Score(a, model.Submission{Responses: []model.QuestionResponse{resp("p", strings.Repeat("x", tt.length))}})
			assert.Equal(t, tt.want, o.Score)
			assert.Equal(t, tt.correct, o.CorrectAnswers)
		})
	}
}

func TestScore_TrimsBeforeMeasuring(t *testing.T) {
	a := &model.Assessment{Questions: []model.Question{q("p", model.QuestionTypePractical, "", 15)}}
	answer := "   " + strings.Repeat("y", 20) + "    "
	o := Score(a, model.Submission{Responses: []model.QuestionResponse{resp("p", answer)}})
	assert.Equal(t, 0, o.Score)
}

func TestScore_UnmatchedResponsesIgnored(t *testing.T) {
	a := &model.Assessment{Questions: []model.Question{
		q("m1", model.QuestionTypeMCQ, "yes", 10),
		q("m2", model.QuestionTypeMCQ, "yes", 30),
	}}

	o := Score(a, model.Submission{Responses: []model.QuestionResponse{
		resp("m1", "yes"),
		resp("ghost", "yes"),
	}})
	assert.Equal(t, 10, o.Score)
	assert.Equal(t, 10, o.TotalPoints)
	assert.Equal(t, 100.0, o.Percentage)
	assert.Equal(t, 2, o.TotalQuestions)
}

func TestScore_NoMatches(t *testing.T) {
	a := &model.Assessment{Level: "beginner", Questions: []model.Question{q("m1", model.QuestionTypeMCQ, "yes", 10)}}
	o := Evaluate(a, model.Submission{Responses: []model.QuestionResponse{resp("nope", "yes")}})
	assert.Equal(t, 0, o.TotalPoints)
	assert.Equal(t, 0.0, o.Percentage)
	assert.Equal(t, "beginner", o.SkillLevel)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 100.0, Percentage(60, 60))
}

func TestDetermineSkillLevel(t *testing.T) {
	tests := []struct {
		level string
		pct   float64
		want  string
	}{
		{"intermediate", 85, "advanced"},
		{"intermediate", 80, "advanced"},
		{"advanced", 85, "advanced"},
		{"beginner", 100, "beginner"},
		{"expert", 95, "expert"},
		{"intermediate", 79.99, "intermediate"},
		{"advanced", 60, "advanced"},
		{"intermediate", 45, "beginner"},
		{"advanced", 59.99, "intermediate"},
		{"expert", 10, "advanced"},
		{"beginner", 0, "beginner"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetermineSkillLevel(tt.level, tt.pct), "%s at %.2f", tt.level, tt.pct)
	}
}

func TestDetermineSkillLevel_NeverBelowBeginner(t *testing.T) {
	for _, level := range catalog.Progression {
		for pct := 0.0; pct < 60; pct += 7.5 {
			got := DetermineSkillLevel(level, pct)
			assert.Contains(t, catalog.Progression, got)
		}
	}
	assert.Equal(t, "beginner", DetermineSkillLevel("beginner", 0))
}

func TestRecommendations(t *testing.T) {
	low := Recommendations(30, "student")
	assert.Len(t, low, 2)
	assert.Contains(t, low[0], "fundamentals")
	assert.Contains(t, low[1], "beginner")

	mid := Recommendations(50, "student")
	assert.Contains(t, mid[0], "Review core concepts")
	assert.Contains(t, mid[1], "exercises")

	high := Recommendations(70, "professional")
	assert.Contains(t, high[0], "advanced topics")
	assert.Contains(t, high[1], "certification")

	faang := Recommendations(90, "faang_prep")
	require.Len(t, faang, 3)
	assert.Contains(t, faang[2], "system design")

	switcher := Recommendations(10, "career_switcher")
	require.Len(t, switcher, 3)
	assert.Contains(t, switcher[2], "portfolio")
}

// Scenarios A to C: an 85% or 45% score on a 20 point assessment.
func scoredAssessment(level string, correct int) (*model.Assessment, model.Submission) {
	a := &model.Assessment{Level: level}
	sub := model.Submission{CareerGoal: "student"}
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		a.Questions = append(a.Questions, q(id, model.QuestionTypeMCQ, "right", 1))
		answer := "wrong"
		if i < correct {
			answer = "right"
		}
		sub.Responses = append(sub.Responses, resp(id, answer))
	}
	return a, sub
}

func TestScenarioA_IntermediatePromoted(t *testing.T) {
	a, sub := scoredAssessment("intermediate", 17)
	o := Evaluate(a, sub)
	assert.Equal(t, 85.0, o.Percentage)
	assert.Equal(t, "advanced", o.SkillLevel)
}

func TestScenarioB_AdvancedStays(t *testing.T) {
	a, sub := scoredAssessment("advanced", 17)
	o := Evaluate(a, sub)
	assert.Equal(t, 85.0, o.Percentage)
	assert.Equal(t, "advanced", o.SkillLevel)
}

func TestScenarioC_IntermediateDemoted(t *testing.T) {
	a, sub := scoredAssessment("intermediate", 9)
	o := Evaluate(a, sub)
	assert.Equal(t, 45.0, o.Percentage)
	assert.Equal(t, "beginner", o.SkillLevel)
}

func TestScenarioD_FillBlank(t *testing.T) {
	a, err := NewAssessment(catalog.Default(), "network-security", "beginner", "student")
	require.NoError(t, err)
	fill := a.Questions[2]
	require.Equal(t, model.QuestionTypeFillBlank, fill.QuestionType)

	o := Score(a, model.Submission{Responses: []model.QuestionResponse{resp(fill.ID, "confidentiality, availability")}})
	assert.Equal(t, 0, o.Score)

	o = Score(a, model.Submission{Responses: []model.QuestionResponse{resp(fill.ID, "Confidentiality, Integrity, Availability")}})
	assert.Equal(t, 10, o.Score)
}

func TestScenarioE_DetailedPractical(t *testing.T) {
	a, err := NewAssessment(catalog.Default(), "incident-response", "intermediate", "student")
	require.NoError(t, err)
	practical := a.Questions[1]
	require.Equal(t, 15, practical.Points)

	o := Score(a, model.Submission{Responses: []model.QuestionResponse{resp(practical.ID, strings.Repeat("z", 150))}})
	assert.Equal(t, 15, o.Score)
	assert.Equal(t, 1, o.CorrectAnswers)
}

func TestFullAssessment(t *testing.T) {
	a, err := NewAssessment(catalog.Default(), "network-security", "intermediate", "faang_prep")
	require.NoError(t, err)

	sub := model.Submission{CareerGoal: "faang_prep", Responses: []model.QuestionResponse{
		resp(a.Questions[0].ID, "to monitor and control network traffic based on security rules"),
		resp(a.Questions[1].ID, "1. Document the observation with timestamps 2. Check network monitoring tools and logs 3. Isolate affected systems"),
		resp(a.Questions[2].ID, "Confidentiality, Integrity, Availability"),
		resp(a.Questions[3].ID, "def check(p): return len(p) >= 8"),
		resp(a.Questions[4].ID, "short"),
	}}

	o := Evaluate(a, sub)
	assert.Equal(t, 10+15+10+14+0, o.Score)
	assert.Equal(t, 60, o.TotalPoints)
	assert.Equal(t, 81.67, o.Percentage)
	assert.Equal(t, "advanced", o.SkillLevel)
	assert.Equal(t, 3, o.CorrectAnswers)
	assert.Equal(t, 5, o.TotalQuestions)
	assert.Len(t, o.Recommendations, 3)
}

var answerPool = []string{
	"",
	"right",
	"RIGHT ",
	"wrong",
	"confidentiality, integrity",
	"Confidentiality, Integrity, Availability",
	strings.Repeat("a", 21),
	strings.Repeat("b", 150),
}

func randomCase(r *rand.Rand) (*model.Assessment, model.Submission) {
	types := []string{model.QuestionTypeMCQ, model.QuestionTypeFillBlank, model.QuestionTypePractical, model.QuestionTypeCoding}
	a := &model.Assessment{Level: catalog.Progression[r.Intn(len(catalog.Progression))]}
	n := r.Intn(6)
	for i := 0; i < n; i++ {
		correct := "right"
		typ := types[r.Intn(len(types))]
		if typ == model.QuestionTypeFillBlank {
			correct = "Confidentiality, Integrity, Availability"
		}
		a.Questions = append(a.Questions, q(string(rune('a'+i)), typ, correct, 1+r.Intn(20)))
	}

	sub := model.Submission{CareerGoal: []string{"student", "faang_prep", "career_switcher"}[r.Intn(3)]}
	for i := 0; i < r.Intn(8); i++ {
		id := string(rune('a' + r.Intn(8)))
		sub.Responses = append(sub.Responses, resp(id, answerPool[r.Intn(len(answerPool))]))
	}
	return a, sub
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a, sub := randomCase(r)
		o := Evaluate(a, sub)

		known := map[string]int{}
		for _, q := range a.Questions {
			known[q.ID] = q.Points
		}
		want := 0
		for _, rr := range sub.Responses {
			want += known[rr.QuestionID]
		}
		assert.Equal(t, want, o.TotalPoints)

		if o.TotalPoints == 0 {
			assert.Equal(t, 0.0, o.Percentage)
		} else {
			assert.GreaterOrEqual(t, o.Percentage, 0.0)
			assert.LessOrEqual(t, o.Percentage, 100.0)
		}

		assert.Equal(t, o, Evaluate(a, sub))
	}
}

func TestMonotonicMCQ(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a, sub := randomCase(r)
		a.Questions = append(a.Questions, q("mcq", model.QuestionTypeMCQ, "The Answer", 10))
		sub.Responses = append(sub.Responses, resp("mcq", "not it"))
		before := Score(a, sub).Score

		sub.Responses[len(sub.Responses)-1].Answer = "  the answer "
		after := Score(a, sub).Score

		assert.Greater(t, after, before)
	}
}
