package assessment

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/model"
	"fmt"
)

// Point values of the five template questions, in order.
const (
	PointsMCQ       = 10
	PointsScenario  = 15
	PointsFillBlank = 10
	PointsCoding    = 20
	PointsCareer    = 5
)

// NewAssessment validates topic and level and builds the fixed five question
// assessment. Only ids and the timestamp vary between calls.
func NewAssessment(c *catalog.Catalog, topic, level, careerGoal string) (*model.Assessment, error) {
	if err := c.ValidateTopic(topic); err != nil {
		return nil, err
	}
	if err := c.ValidateLevel(level); err != nil {
		return nil, err
	}

	questions := Questions(c.TopicText(topic), level)
	total := 0
	for _, q := range questions {
		total += q.Points
	}

	return &model.Assessment{
		ID:          model.GenerateUUID(),
		Topic:       topic,
		Level:       level,
		CareerGoal:  careerGoal,
		Questions:   questions,
		TotalPoints: total,
		CreatedAt:   model.Now(),
	}, nil
}

// Questions renders the question templates for a topic description and
// level key.
func Questions(topicText, level string) []model.Question {
	return []model.Question{
		{
			ID:           model.GenerateUUID(),
			QuestionType: model.QuestionTypeMCQ,
			QuestionText: fmt.Sprintf("What is the primary purpose of a firewall in %s?", topicText),
			Options: []string{
				"To block all network traffic",
				"To monitor and control network traffic based on security rules",
				"To encrypt all data transmissions",
				"To provide user authentication",
			},
			CorrectAnswer: "To monitor and control network traffic based on security rules",
			Explanation:   "Firewalls monitor incoming and outgoing traffic and permit or block packets based on a set of security rules.",
			Difficulty:    level,
			Points:        PointsMCQ,
		},
		{
			ID:            model.GenerateUUID(),
			QuestionType:  model.QuestionTypePractical,
			QuestionText:  fmt.Sprintf("You notice unusual activity in your organization that falls under %s. Describe the first three steps you would take to investigate this potential security incident.", topicText),
			CorrectAnswer: "1. Document the observation with timestamps 2. Check monitoring tools and logs 3. Isolate affected systems if necessary and notify the incident response team",
			Explanation:   "Good incident handling documents first, investigates with the tools available, then contains and escalates through established procedures.",
			Difficulty:    level,
			Points:        PointsScenario,
		},
		{
			ID:            model.GenerateUUID(),
			QuestionType:  model.QuestionTypeFillBlank,
			QuestionText:  "The CIA triad in cybersecurity stands for _____, _____, and _____.",
			Options:       []string{"Confidentiality", "Integrity", "Availability"},
			CorrectAnswer: "Confidentiality, Integrity, Availability",
			Explanation:   "The CIA triad is the foundational model for keeping data confidential, unaltered and available.",
			Difficulty:    level,
			Points:        PointsFillBlank,
		},
		{
			ID:            model.GenerateUUID(),
			QuestionType:  model.QuestionTypeCoding,
			QuestionText:  fmt.Sprintf("Write a short script in any language that checks whether a password has at least 8 characters, an uppercase letter, a lowercase letter and a number. Explain where a check like this fits in %s at the %s level.", topicText, level),
			CorrectAnswer: "A function that tests length and each character class, for example with regular expressions or per-character checks, and reports which rules fail",
			Explanation:   "Validation should check every criterion and give actionable feedback rather than a bare pass or fail.",
			Difficulty:    level,
			Points:        PointsCoding,
		},
		{
			ID:            model.GenerateUUID(),
			QuestionType:  model.QuestionTypePractical,
			QuestionText:  "What career path interests you most in cybersecurity, and what specific skills do you want to develop? (This helps us personalize your learning plan)",
			CorrectAnswer: "Personal response about career interests and skill goals",
			Explanation:   "Knowing your goals lets the learning plan target the skills that matter for them.",
			Difficulty:    level,
			Points:        PointsCareer,
		},
	}
}

// Project strips answers and explanations for delivery to a learner.
func Project(a *model.Assessment) []model.LearnerQuestion {
	out := make([]model.LearnerQuestion, 0, len(a.Questions))
	for _, q := range a.Questions {
		out = append(out, q.ForLearner())
	}
	return out
}
