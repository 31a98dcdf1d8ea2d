package prompt

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessmentPrompt(t *testing.T) {
	p := AssessmentPrompt(catalog.Default(), "cloud-security", "beginner", "faang_prep")

	assert.Contains(t, p, "TOPIC: Cloud Security and DevSecOps")
	assert.Contains(t, p, "SKILL LEVEL: Beginner (No prior cybersecurity experience)")
	assert.Contains(t, p, "CAREER GOAL: FAANG Preparation - Targeting top tech companies")
}

func TestAssessmentPrompt_FreeFormGoal(t *testing.T) {
	p := AssessmentPrompt(catalog.Default(), "red-team", "expert", "run my own consultancy")
	assert.Contains(t, p, "CAREER GOAL: run my own consultancy")
}

func TestLearningPlanPrompt(t *testing.T) {
	c := catalog.Default()
	p := LearningPlanPrompt(c, PlanRequest{
		Topic:         "network-security",
		Level:         "intermediate",
		DurationWeeks: 12,
		FocusAreas:    []string{"Hands-on Labs", "CTF Challenges"},
		IncludeLabs:   true,
	})

	assert.Contains(t, p, "DURATION: 12 weeks")
	assert.Contains(t, p, "FOCUS AREAS: Hands-on Labs, CTF Challenges")
	assert.Contains(t, p, "USER BACKGROUND: Not specified")
	assert.Contains(t, p, "HANDS-ON LABS")
	assert.NotContains(t, p, "CERTIFICATION PATHWAYS")
	assert.NotContains(t, p, "PERSONALIZATION")

	p = LearningPlanPrompt(c, PlanRequest{
		Topic:                 "network-security",
		Level:                 "beginner",
		DurationWeeks:         8,
		IncludeCertifications: true,
		Personalization:       "- Assessment score: 10/60",
	})
	assert.Contains(t, p, "FOCUS AREAS: General comprehensive coverage")
	assert.Contains(t, p, "CERTIFICATION PATHWAYS")
	assert.Contains(t, p, "PERSONALIZATION FROM ASSESSMENT:\n- Assessment score: 10/60")
}

func TestPersonalizationNotes(t *testing.T) {
	role := "SOC analyst"
	years := 3
	notes := PersonalizationNotes(&model.AssessmentResult{
		Score:           45,
		TotalPoints:     60,
		Percentage:      75,
		SkillLevel:      "intermediate",
		Recommendations: []string{"Review core concepts"},
		Submission: model.Submission{
			CareerGoal:      "professional",
			CurrentRole:     &role,
			ExperienceYears: &years,
		},
	})

	assert.Contains(t, notes, "45/60 (75.00%)")
	assert.Contains(t, notes, "Demonstrated skill level: intermediate")
	assert.Contains(t, notes, "Current role: SOC analyst")
	assert.Contains(t, notes, "Years of experience: 3")
	assert.Contains(t, notes, "  - Review core concepts")
}

func TestChatPrompt(t *testing.T) {
	plan := &model.LearningPlan{Topic: "cryptography", Level: "beginner", DurationWeeks: 4, Curriculum: strings.Repeat("x", 5000)}
	history := []model.ChatMessage{
		{Sender: model.SenderUser, Message: "What is AES?"},
		{Sender: model.SenderAI, Message: "A block cipher."},
	}

	p := ChatPrompt(plan, "Week 1", history, "And RSA?")
	assert.Contains(t, p, "LEARNING PLAN: cryptography (beginner, 4 weeks)")
	assert.Contains(t, p, "CURRENT MODULE: Week 1")
	assert.Contains(t, p, "Learner: What is AES?\nTutor: A block cipher.")
	assert.True(t, strings.HasSuffix(p, "LEARNER QUESTION: And RSA?\n"))
	assert.Less(t, len(p), 2300)

	assert.Contains(t, ChatPrompt(nil, "", nil, "hi"), "LEARNER QUESTION: hi")
}
