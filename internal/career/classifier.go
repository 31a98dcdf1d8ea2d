package career

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/model"
	"sort"
	"strings"
)

const maxSuggestedTopics = 3

type Category struct {
	Name     string
	Keywords []string
}

// Table drives classification. Order matters: on equal scores the earlier
// category wins.
type Table struct {
	Goals     []Category
	Levels    []Category
	Topics    []Category
	Default   string
	BaseLevel string
}

var DefaultTable = Table{
	Goals: []Category{
		{catalog.GoalFaangPrep, []string{"faang", "google", "meta", "amazon", "apple", "netflix", "big tech", "leetcode", "system design"}},
		{"maang_prep", []string{"maang", "microsoft"}},
		{catalog.GoalCareerSwitcher, []string{"switch", "transition", "career change", "new to tech", "coming from", "bootcamp"}},
		{"startup_job", []string{"startup", "early stage", "founding"}},
		{"freelance", []string{"freelance", "consultant", "consulting", "bug bounty", "independent"}},
		{"government", []string{"government", "public sector", "clearance", "federal", "military", "defense"}},
		{catalog.GoalProfessional, []string{"analyst", "engineer", "administrator", "sysadmin", "work as", "currently working", "promotion"}},
		{catalog.GoalStudent, []string{"student", "university", "college", "degree", "graduate", "school"}},
	},
	Levels: []Category{
		{catalog.LevelExpert, []string{"principal", "architect", "ciso", "10+ years", "lead team", "head of"}},
		{catalog.LevelAdvanced, []string{"senior", "oscp", "cissp", "5 years", "penetration tester", "red team lead"}},
		{catalog.LevelIntermediate, []string{"security+", "ccna", "2 years", "3 years", "junior", "helpdesk", "it support", "soc analyst"}},
		{catalog.LevelBeginner, []string{"beginner", "no experience", "just started", "new to", "learning the basics"}},
	},
	Topics: []Category{
		{"network-security", []string{"network", "firewall", "vpn", "tcp/ip", "wireshark"}},
		{"ethical-hacking", []string{"hacking", "pentest", "penetration", "exploit", "kali"}},
		{"incident-response", []string{"incident", "forensics", "dfir", "breach"}},
		{"threat-hunting", []string{"threat hunting", "threat intel", "mitre", "att&ck"}},
		{"malware-analysis", []string{"malware", "reverse engineering", "ghidra", "ida pro"}},
		{"cloud-security", []string{"cloud", "aws", "azure", "gcp", "kubernetes", "devsecops"}},
		{"application-security", []string{"appsec", "owasp", "secure coding", "web application", "api security"}},
		{"compliance-governance", []string{"compliance", "governance", "grc", "iso 27001", "nist", "audit", "gdpr"}},
		{"cryptography", []string{"cryptography", "encryption", "pki", "tls"}},
		{"iot-security", []string{"iot", "embedded", "firmware", "scada"}},
		{"social-engineering", []string{"social engineering", "phishing", "awareness"}},
		{"blue-team", []string{"blue team", "soc", "siem", "detection", "monitoring"}},
		{"red-team", []string{"red team", "adversary emulation", "c2"}},
	},
	Default:   catalog.GoalStudent,
	BaseLevel: catalog.LevelBeginner,
}

// Classify runs DefaultTable over text.
func Classify(text string) model.CareerProfile {
	return DefaultTable.Classify(text)
}

func (t Table) Classify(text string) model.CareerProfile {
	lower := strings.ToLower(text)
	p := model.CareerProfile{
		CareerGoal:      t.Default,
		SuggestedLevel:  t.BaseLevel,
		SuggestedTopics: []string{},
		MatchedKeywords: map[string][]string{},
		Scores:          map[string]int{},
	}

	if goal, ok := t.best(t.Goals, lower, &p); ok {
		p.CareerGoal = goal
	}
	if level, ok := t.best(t.Levels, lower, &p); ok {
		p.SuggestedLevel = level
	}

	type ranked struct {
		name  string
		score int
	}
	var topics []ranked
	for _, c := range t.Topics {
		if n := score(c, lower, &p); n > 0 {
			topics = append(topics, ranked{c.Name, n})
		}
	}
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].score > topics[j].score })
	for i := 0; i < len(topics) && i < maxSuggestedTopics; i++ {
		p.SuggestedTopics = append(p.SuggestedTopics, topics[i].name)
	}
	return p
}

// best returns the highest scoring category, first in table order on ties.
func (t Table) best(cats []Category, lower string, p *model.CareerProfile) (string, bool) {
	winner, top := "", 0
	for _, c := range cats {
		if n := score(c, lower, p); n > top {
			winner, top = c.Name, n
		}
	}
	return winner, top > 0
}

func score(c Category, lower string, p *model.CareerProfile) int {
	n := 0
	for _, kw := range c.Keywords {
		if strings.Contains(lower, kw) {
			n++
			p.MatchedKeywords[c.Name] = append(p.MatchedKeywords[c.Name], kw)
		}
	}
	if n > 0 {
		p.Scores[c.Name] = n
	}
	return n
}
