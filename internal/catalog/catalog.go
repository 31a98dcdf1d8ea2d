package catalog

import (
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/util"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// Progression is the ordered skill ladder. It cannot be overridden.
var Progression = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

const (
	GoalStudent        = "student"
	GoalProfessional   = "professional"
	GoalCareerSwitcher = "career_switcher"
	GoalFaangPrep      = "faang_prep"
)

const (
	AchievementFirstAssessment = "first_assessment"
	AchievementPlanApproved    = "plan_approved"
	AchievementFirstSession    = "first_session"
	AchievementAIHelper        = "ai_helper"
	AchievementProgressTracker = "progress_tracker"
)

type Entry struct {
	Key         string `yaml:"key" json:"key"`
	Description string `yaml:"description" json:"description"`
}

type Catalog struct {
	Topics        []Entry             `yaml:"topics"`
	Levels        []Entry             `yaml:"levels"`
	CareerGoals   []Entry             `yaml:"career_goals"`
	FocusAreas    []string            `yaml:"focus_areas"`
	QuestionTypes []Entry             `yaml:"question_types"`
	Achievements  []model.Achievement `yaml:"achievements"`
}

func Default() *Catalog {
	return &Catalog{
		Topics: []Entry{
			{"network-security", "Network Security and Infrastructure Protection"},
			{"ethical-hacking", "Ethical Hacking and Penetration Testing"},
			{"incident-response", "Incident Response and Digital Forensics"},
			{"threat-hunting", "Threat Hunting and Threat Intelligence"},
			{"malware-analysis", "Malware Analysis and Reverse Engineering"},
			{"cloud-security", "Cloud Security and DevSecOps"},
			{"application-security", "Application Security and Secure Coding"},
			{"compliance-governance", "Compliance, Governance, Risk Management"},
			{"cryptography", "Cryptography and PKI"},
			{"iot-security", "IoT and Embedded Systems Security"},
			{"social-engineering", "Social Engineering and Awareness"},
			{"blue-team", "Blue Team Operations and SOC"},
			{"red-team", "Red Team Operations and Advanced Tactics"},
		},
		Levels: []Entry{
			{LevelBeginner, "Beginner (No prior cybersecurity experience)"},
			{LevelIntermediate, "Intermediate (Some IT/security background)"},
			{LevelAdvanced, "Advanced (Experienced security professional)"},
			{LevelExpert, "Expert (Senior security specialist/consultant)"},
		},
		CareerGoals: []Entry{
			{GoalStudent, "Student - Learning cybersecurity fundamentals"},
			{GoalProfessional, "Professional - Advancing current cybersecurity career"},
			{GoalCareerSwitcher, "Career Switcher - Transitioning to cybersecurity"},
			{GoalFaangPrep, "FAANG Preparation - Targeting top tech companies"},
			{"maang_prep", "MAANG Preparation - Targeting major tech companies"},
			{"startup_job", "Startup Job - Looking for cybersecurity roles in startups"},
			{"freelance", "Freelance - Building independent cybersecurity consulting skills"},
			{"government", "Government - Preparing for public sector cybersecurity roles"},
		},
		FocusAreas: []string{
			"Hands-on Labs",
			"Certification Preparation",
			"Industry Tools & Software",
			"Compliance Frameworks",
			"Real-world Scenarios",
			"CTF Challenges",
			"Career Development",
			"Leadership Skills",
		},
		QuestionTypes: []Entry{
			{model.QuestionTypeMCQ, "Multiple Choice Question"},
			{model.QuestionTypePractical, "Practical Scenario"},
			{model.QuestionTypeCoding, "Coding Challenge"},
			{model.QuestionTypeFillBlank, "Fill in the Blanks"},
		},
		Achievements: []model.Achievement{
			{ID: AchievementFirstAssessment, Name: "First Steps", Description: "Completed your first cybersecurity assessment", Icon: "🎯", Category: "assessment", Points: 50},
			{ID: AchievementPlanApproved, Name: "Plan Maker", Description: "Approved your first personalized learning plan", Icon: "📋", Category: "learning", Points: 100},
			{ID: AchievementFirstSession, Name: "Learning Journey", Description: "Started your first learning session", Icon: "🚀", Category: "learning", Points: 75},
			{ID: AchievementAIHelper, Name: "AI Companion", Description: "Had your first conversation with AI tutor", Icon: "🤖", Category: "interaction", Points: 25},
			{ID: AchievementProgressTracker, Name: "Progress Champion", Description: "Completed 25% of your learning plan", Icon: "📈", Category: "progress", Points: 200},
		},
	}
}

// Load returns the built-in catalog with the YAML file at path merged over
// it. An empty path yields the defaults.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c.Merge(&override)
	return c, nil
}

// Merge overlays o onto c. Entries with a known key replace the description,
// unknown keys are appended. Level keys are fixed by Progression, so only
// their descriptions can change.
func (c *Catalog) Merge(o *Catalog) {
	c.Topics = mergeEntries(c.Topics, o.Topics, true)
	c.Levels = mergeEntries(c.Levels, o.Levels, false)
	c.CareerGoals = mergeEntries(c.CareerGoals, o.CareerGoals, true)
	c.QuestionTypes = mergeEntries(c.QuestionTypes, o.QuestionTypes, false)

	for _, area := range o.FocusAreas {
		if !contains(c.FocusAreas, area) {
			c.FocusAreas = append(c.FocusAreas, area)
		}
	}

	for _, a := range o.Achievements {
		replaced := false
		for i := range c.Achievements {
			if c.Achievements[i].ID == a.ID {
				c.Achievements[i] = a
				replaced = true
				break
			}
		}
		if !replaced && a.ID != "" {
			c.Achievements = append(c.Achievements, a)
		}
	}
}

func mergeEntries(base, extra []Entry, allowNew bool) []Entry {
	for _, e := range extra {
		if e.Key == "" {
			continue
		}
		found := false
		for i := range base {
			if base[i].Key == e.Key {
				if e.Description != "" {
					base[i].Description = e.Description
				}
				found = true
				break
			}
		}
		if !found && allowNew {
			base = append(base, e)
		}
	}
	return base
}

func lookup(entries []Entry, key string) (string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Description, true
		}
	}
	return "", false
}

func keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func describe(entries []Entry) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Description
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (c *Catalog) Topic(key string) (string, bool)  { return lookup(c.Topics, key) }
func (c *Catalog) Level(key string) (string, bool)  { return lookup(c.Levels, key) }
func (c *Catalog) TopicKeys() []string              { return keys(c.Topics) }
func (c *Catalog) LevelKeys() []string              { return keys(c.Levels) }
func (c *Catalog) CareerGoalKeys() []string         { return keys(c.CareerGoals) }
func (c *Catalog) TopicMap() map[string]string      { return describe(c.Topics) }
func (c *Catalog) LevelMap() map[string]string      { return describe(c.Levels) }
func (c *Catalog) CareerGoalMap() map[string]string { return describe(c.CareerGoals) }
func (c *Catalog) QuestionTypeMap() map[string]string {
	return describe(c.QuestionTypes)
}

// TopicText returns the topic description, or the key itself when unknown.
func (c *Catalog) TopicText(key string) string {
	if d, ok := c.Topic(key); ok {
		return d
	}
	return key
}

func (c *Catalog) LevelText(key string) string {
	if d, ok := c.Level(key); ok {
		return d
	}
	return key
}

// CareerGoalText accepts free-form goals and returns them unchanged when they
// are not catalog keys.
func (c *Catalog) CareerGoalText(key string) string {
	if d, ok := lookup(c.CareerGoals, key); ok {
		return d
	}
	return key
}

func (c *Catalog) ValidateTopic(topic string) error {
	if _, ok := c.Topic(topic); !ok {
		return util.NewValidationError("topic", topic, c.TopicKeys())
	}
	return nil
}

func (c *Catalog) ValidateLevel(level string) error {
	if _, ok := c.Level(level); !ok {
		return util.NewValidationError("level", level, c.LevelKeys())
	}
	return nil
}

func (c *Catalog) Achievement(id string) (model.Achievement, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return model.Achievement{}, false
}

// StepDown returns the level one below level, clamped at beginner. Unknown
// levels are returned unchanged.
func StepDown(level string) string {
	for i, l := range Progression {
		if l == level {
			if i == 0 {
				return l
			}
			return Progression[i-1]
		}
	}
	return level
}
