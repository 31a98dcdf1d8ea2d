package prompt

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/model"
	"fmt"
	"strings"
)

// AssessmentPrompt asks a model for a question set in the same JSON shape the
// built-in assessment templates produce.
func AssessmentPrompt(c *catalog.Catalog, topic, level, careerGoal string) string {
	topicText := c.TopicText(topic)
	levelText := c.LevelText(level)
	goalText := c.CareerGoalText(careerGoal)

	var b strings.Builder
	b.WriteString("You are an expert cybersecurity instructor creating an assessment to evaluate a learner's current knowledge and skills.\n\n")
	b.WriteString("ASSESSMENT REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- TOPIC: %s\n", topicText)
	fmt.Fprintf(&b, "- SKILL LEVEL: %s\n", levelText)
	fmt.Fprintf(&b, "- CAREER GOAL: %s\n", goalText)
	b.WriteString("- GENERATE: 5 diverse questions covering different aspects\n\n")
	b.WriteString("Return ONLY valid JSON of the form {\"questions\": [...]} where each question has ")
	b.WriteString("id, question_type (mcq, practical, fill_blank, coding), question_text, options, ")
	b.WriteString("correct_answer, explanation, difficulty and points.\n\n")
	b.WriteString("QUESTION TYPE GUIDELINES:\n")
	b.WriteString("- MCQ: Test theoretical knowledge and concepts\n")
	b.WriteString("- Practical: Real-world scenarios and problem-solving\n")
	b.WriteString("- Fill_blank: Key terminology and definitions, correct_answer as comma separated terms\n")
	b.WriteString("- Coding: Technical implementation skills (when appropriate for topic)\n\n")
	fmt.Fprintf(&b, "Make questions relevant to %s and appropriate for %s level.\n", goalText, levelText)
	b.WriteString("Include one question that helps assess the learner's background and career interests.\n")
	return b.String()
}

type PlanRequest struct {
	Topic                 string
	Level                 string
	DurationWeeks         int
	FocusAreas            []string
	IncludeLabs           bool
	IncludeCertifications bool
	UserBackground        string
	Personalization       string
}

var planSections = []string{
	"## 🎯 LEARNING OBJECTIVES\nList 6-8 specific, measurable learning objectives that align with industry standards and real-world application.",
	"## 📋 PREREQUISITES\n- Required foundational knowledge\n- Recommended prior experience\n- Essential tools and software to install\n- Hardware requirements (if any)",
	"## 📅 WEEKLY CURRICULUM BREAKDOWN\nUse one ### heading per week or pair of weeks, each with concrete topics and a lab.",
}

var labSection = "## 🔬 HANDS-ON LABS & PRACTICAL EXERCISES\nProvide 8-10 progressive labs with objectives, environment setup, step-by-step procedures and expected results."

var certificationSection = "## 🏆 CERTIFICATION PATHWAYS\n- Primary certifications aligned with this learning path\n- Exam preparation timeline\n- Costs and career advancement opportunities"

var closingSections = []string{
	"## 📚 COMPREHENSIVE RESOURCE LIBRARY\n### Books & Publications\n### Online Courses & Training\n### Tools & Software\n### Community Resources",
	"## 📊 ASSESSMENT & EVALUATION METHODS\n- Knowledge check quizzes (weekly)\n- Practical skill assessments\n- Final capstone project",
	"## ⏱️ TIME ALLOCATION & STUDY SCHEDULE\n- Hours per week breakdown\n- Lab time requirements",
	"## 🚀 CAREER DEVELOPMENT & NEXT STEPS\n- Job roles this learning path prepares for\n- Portfolio development guidance\n- Interview preparation tips",
	"## 💡 PRACTICAL TIPS FOR SUCCESS\n- Study strategies\n- Common pitfalls to avoid",
}

// LearningPlanPrompt builds the curriculum request. The header lines are
// parsed back by the template generator, keep their labels stable.
func LearningPlanPrompt(c *catalog.Catalog, req PlanRequest) string {
	focus := "General comprehensive coverage"
	if len(req.FocusAreas) > 0 {
		focus = strings.Join(req.FocusAreas, ", ")
	}
	background := req.UserBackground
	if background == "" {
		background = "Not specified"
	}

	var b strings.Builder
	b.WriteString("You are an expert cybersecurity instructor and curriculum designer. Create a comprehensive, structured learning plan for:\n\n")
	fmt.Fprintf(&b, "TOPIC: %s\n", c.TopicText(req.Topic))
	fmt.Fprintf(&b, "SKILL LEVEL: %s\n", c.LevelText(req.Level))
	fmt.Fprintf(&b, "DURATION: %d weeks\n", req.DurationWeeks)
	fmt.Fprintf(&b, "FOCUS AREAS: %s\n", focus)
	fmt.Fprintf(&b, "USER BACKGROUND: %s\n", background)

	if req.Personalization != "" {
		b.WriteString("\nPERSONALIZATION FROM ASSESSMENT:\n")
		b.WriteString(req.Personalization)
		b.WriteString("\n")
	}

	b.WriteString("\nCreate a detailed learning plan with the following structure:\n\n")
	sections := append([]string{}, planSections...)
	if req.IncludeLabs {
		sections = append(sections, labSection)
	}
	if req.IncludeCertifications {
		sections = append(sections, certificationSection)
	}
	sections = append(sections, closingSections...)
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n\nFocus on actionable content that learners can immediately apply.\n")
	return b.String()
}

// PersonalizationNotes summarizes an assessment result for plan prompts.
func PersonalizationNotes(r *model.AssessmentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Assessment score: %d/%d (%.2f%%)\n", r.Score, r.TotalPoints, r.Percentage)
	fmt.Fprintf(&b, "- Demonstrated skill level: %s\n", r.SkillLevel)
	if r.Submission.CareerGoal != "" {
		fmt.Fprintf(&b, "- Career goal: %s\n", r.Submission.CareerGoal)
	}
	if r.Submission.CurrentRole != nil && *r.Submission.CurrentRole != "" {
		fmt.Fprintf(&b, "- Current role: %s\n", *r.Submission.CurrentRole)
	}
	if r.Submission.ExperienceYears != nil {
		fmt.Fprintf(&b, "- Years of experience: %d\n", *r.Submission.ExperienceYears)
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("- Recommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}
	return b.String()
}

const ChatSystem = "You are a friendly, expert cybersecurity tutor. Answer the learner's question clearly, " +
	"relate it to their learning plan, and suggest a practical next step. Keep answers under 400 words."

// maxPlanExcerpt bounds how much curriculum text is sent with each chat turn.
const maxPlanExcerpt = 2000

// ChatPrompt renders a tutoring turn with the plan excerpt and recent
// history, oldest first.
func ChatPrompt(plan *model.LearningPlan, module string, history []model.ChatMessage, message string) string {
	var b strings.Builder
	if plan != nil {
		fmt.Fprintf(&b, "LEARNING PLAN: %s (%s, %d weeks)\n", plan.Topic, plan.Level, plan.DurationWeeks)
		excerpt := plan.Curriculum
		if len(excerpt) > maxPlanExcerpt {
			excerpt = strings.ToValidUTF8(excerpt[:maxPlanExcerpt], "")
		}
		if excerpt != "" {
			b.WriteString("PLAN EXCERPT:\n")
			b.WriteString(excerpt)
			b.WriteString("\n")
		}
	}
	if module != "" {
		fmt.Fprintf(&b, "CURRENT MODULE: %s\n", module)
	}
	if len(history) > 0 {
		b.WriteString("\nCONVERSATION SO FAR:\n")
		for _, m := range history {
			speaker := "Learner"
			if m.Sender == model.SenderAI {
				speaker = "Tutor"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, m.Message)
		}
	}
	fmt.Fprintf(&b, "\nLEARNER QUESTION: %s\n", message)
	return b.String()
}
