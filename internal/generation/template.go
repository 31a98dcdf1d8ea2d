package generation

import (
	"context"
	"fmt"
	"strings"
	"text/template"
)

const curriculumTemplate = `## 🎯 LEARNING OBJECTIVES
- Understand fundamental concepts of {{.topic}}
- Learn key terminology and frameworks
- Develop practical skills in implementing security controls
- Gain hands-on experience with security tools
- Prepare for relevant certifications
- Build a portfolio of security projects
- Develop incident response capabilities
- Understand compliance and regulatory requirements

## 📋 PREREQUISITES
- Level: {{.level}}
- Basic understanding of computer networks
- Familiarity with operating systems (Windows, Linux)
- Basic command-line skills
- Understanding of TCP/IP protocols
- Virtual machine software (VirtualBox or VMware)
- Minimum 8GB RAM, 100GB free disk space

## 📅 WEEKLY CURRICULUM BREAKDOWN
Duration: {{.duration}} weeks. Focus areas: {{.focus}}.
{{range .phases}}
### {{.Weeks}}: {{.Title}}
- {{.Title}} for {{$.topic}}
- Guided reading and concept review
- Tooling walkthrough and configuration
- Lab: apply the week's techniques in an isolated environment
{{end}}{{if .labs}}
## 🔬 HANDS-ON LABS & PRACTICAL EXERCISES
1. Setting up a secure network environment
   - Configure firewalls and access controls
   - Implement network segmentation
2. Vulnerability scanning and assessment
   - Use tools like Nessus, OpenVAS
   - Identify and prioritize vulnerabilities
3. Security monitoring and logging
   - Configure SIEM solutions
   - Create security dashboards and alerts
4. Incident response simulation
   - Detect and analyze security incidents
   - Document and report findings
{{end}}
## 📚 COMPREHENSIVE RESOURCE LIBRARY

### Books & Publications
- NIST Special Publications 800 series
- SANS Reading Room articles

### Online Courses & Training
- Cybrary fundamentals tracks
- Coursera and edX security courses

### Tools & Software
- Wireshark for network analysis
- Nmap for network scanning
- Snort for intrusion detection

### Community Resources
- SANS Internet Storm Center
- r/netsec subreddit
{{if .certifications}}
## 🏆 CERTIFICATION PATHWAYS
- CompTIA Security+
- GIAC GSEC (Security Essentials)
- EC-Council Certified Ethical Hacker
{{end}}
## 📊 ASSESSMENT & EVALUATION METHODS
- Weekly knowledge check quizzes
- Hands-on lab assessments
- Final capstone project

## ⏱️ TIME ALLOCATION & STUDY SCHEDULE
- 10-15 hours per week recommended
- 60% hands-on practice, 30% theory, 10% review

## 🚀 CAREER DEVELOPMENT & NEXT STEPS
- Security Analyst positions
- SOC Analyst opportunities
- Continuing education in specialized areas

## 💡 PRACTICAL TIPS FOR SUCCESS
- Build a home lab for practice
- Document all your projects
- Stay current with security news
`

const chatTemplate = `That's a great question about {{if .topic}}{{.topic}}{{else}}cybersecurity{{end}}!
{{if .module}}
Since you are working on "{{.module}}", let's connect it to what you are studying right now.
{{end}}
You asked: "{{.message}}"

Here is how to approach it:
1. Start from the core concept and write a one-sentence definition in your own words.
2. Look for a real-world example, such as a recent incident report or a lab in your plan.
3. Try it hands-on in an isolated lab environment and note what you observe.

Next step: revisit the relevant section of your learning plan and ask a follow-up question if anything is unclear.`

// TemplateGenerator renders deterministic content for each Kind from the
// request Vars. It never calls out and is always healthy.
type TemplateGenerator struct {
	templates map[Kind]*template.Template
}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		templates: map[Kind]*template.Template{
			KindCurriculum: template.Must(template.New(string(KindCurriculum)).Option("missingkey=zero").Parse(curriculumTemplate)),
			KindChat:       template.Must(template.New(string(KindChat)).Option("missingkey=zero").Parse(chatTemplate)),
		},
	}
}

func (g *TemplateGenerator) Name() string                 { return ProviderTemplate }
func (g *TemplateGenerator) Model() string                { return "template" }
func (g *TemplateGenerator) Healthy(context.Context) bool { return true }

func (g *TemplateGenerator) Generate(_ context.Context, req Request) (string, error) {
	t, ok := g.templates[req.Kind]
	if !ok {
		return "", fmt.Errorf("no template for generation kind %q", req.Kind)
	}

	vars := req.Vars
	if vars == nil {
		vars = map[string]any{}
	}

	var b strings.Builder
	if err := t.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("render %s template: %w", req.Kind, err)
	}
	return b.String(), nil
}
