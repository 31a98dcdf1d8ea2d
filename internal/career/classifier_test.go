package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Default(t *testing.T) {
	p := Classify("I like computers")
	assert.Equal(t, "student", p.CareerGoal)
	assert.Equal(t, "beginner", p.SuggestedLevel)
	assert.Empty(t, p.SuggestedTopics)
	assert.Empty(t, p.Scores)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		goal   string
		level  string
		topics []string
	}{
		{
			name:   "faang candidate",
			text:   "Senior engineer preparing for Google and Amazon interviews, strong in AWS and Kubernetes, OSCP holder",
			goal:   "faang_prep",
			level:  "advanced",
			topics: []string{"cloud-security"},
		},
		{
			name:   "career switcher",
			text:   "Teacher looking to transition into security, just started learning about phishing and network basics",
			goal:   "career_switcher",
			level:  "beginner",
			topics: []string{"network-security", "social-engineering"},
		},
		{
			name:   "soc analyst",
			text:   "Currently working as a SOC analyst with 2 years on SIEM detection and incident triage",
			goal:   "professional",
			level:  "intermediate",
			topics: []string{"blue-team", "incident-response"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Classify(tt.text)
			assert.Equal(t, tt.goal, p.CareerGoal)
			assert.Equal(t, tt.level, p.SuggestedLevel)
			assert.Equal(t, tt.topics, p.SuggestedTopics)
		})
	}
}

func TestClassify_TieUsesTableOrder(t *testing.T) {
	table := Table{
		Goals: []Category{
			{"first", []string{"alpha"}},
			{"second", []string{"beta"}},
		},
		Default:   "none",
		BaseLevel: "beginner",
	}
	p := table.Classify("beta and alpha")
	assert.Equal(t, "first", p.CareerGoal)
	assert.Equal(t, map[string]int{"first": 1, "second": 1}, p.Scores)
	assert.Equal(t, []string{"beta"}, p.MatchedKeywords["second"])
}

func TestClassify_TopicCap(t *testing.T) {
	p := Classify("network firewall malware ghidra cloud aws phishing encryption")
	assert.Len(t, p.SuggestedTopics, 3)
	assert.Equal(t, "network-security", p.SuggestedTopics[0])
}
