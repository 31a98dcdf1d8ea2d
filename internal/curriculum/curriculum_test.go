package curriculum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `intro text that is not part of any chapter

## 🎯 LEARNING OBJECTIVES
- Understand fundamentals

## 📅 WEEKLY CURRICULUM BREAKDOWN
Overview line.

### Week 1-2: Foundation & Fundamentals
- Core concepts

### Week 3-4: Core Concepts & Methodologies
- Vulnerability assessment

## 🏆 CERTIFICATION PATHWAYS
- CompTIA Security+
`

func TestExtract(t *testing.T) {
	toc := Extract(sample, "beginner")

	require.Equal(t, 3, toc.TotalChapters)
	require.Len(t, toc.Chapters, 3)
	assert.Equal(t, "beginner", toc.DifficultyLevel)

	first := toc.Chapters[0]
	assert.Equal(t, "chapter-1", first.ID)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "🎯 LEARNING OBJECTIVES", first.Title)
	assert.Equal(t, "- Understand fundamentals", first.Content)
	assert.Empty(t, first.Sections)
	assert.Equal(t, "5 min", first.EstimatedTime)

	weekly := toc.Chapters[1]
	assert.Equal(t, "Overview line.", weekly.Content)
	require.Len(t, weekly.Sections, 2)
	assert.Equal(t, "chapter-2-section-2", weekly.Sections[1].ID)
	assert.Equal(t, "2.2", weekly.Sections[1].Number)
	assert.Equal(t, "Week 3-4: Core Concepts & Methodologies", weekly.Sections[1].Title)
	assert.Equal(t, "- Vulnerability assessment", weekly.Sections[1].Content)
	assert.Equal(t, "15 min", weekly.EstimatedTime)

	assert.Equal(t, "25 min", toc.TotalEstimatedTime)
}

func TestExtract_LongSection(t *testing.T) {
	md := "## Reading\n" + strings.Repeat("word ", 1000)
	toc := Extract(md, "expert")
	assert.Equal(t, "5 min", toc.Chapters[0].EstimatedTime)

	md = "## Reading\n" + strings.Repeat("word ", 1201)
	toc = Extract(md, "expert")
	assert.Equal(t, "7 min", toc.Chapters[0].EstimatedTime)
}

func TestExtract_Empty(t *testing.T) {
	toc := Extract("no headings here", "advanced")
	assert.Equal(t, 0, toc.TotalChapters)
	assert.NotNil(t, toc.Chapters)
	assert.Equal(t, "0 min", toc.TotalEstimatedTime)
}

func TestFind(t *testing.T) {
	toc := Extract(sample, "beginner")

	ch, ok := FindChapter(toc, "chapter-3")
	require.True(t, ok)
	assert.Equal(t, "🏆 CERTIFICATION PATHWAYS", ch.Title)

	_, ok = FindChapter(toc, "chapter-9")
	assert.False(t, ok)

	ch, sec, ok := FindSection(toc, "chapter-2-section-1")
	require.True(t, ok)
	assert.Equal(t, "chapter-2", ch.ID)
	assert.Equal(t, "Week 1-2: Foundation & Fundamentals", sec.Title)

	_, _, ok = FindSection(toc, "chapter-1-section-1")
	assert.False(t, ok)
}

func TestPhases(t *testing.T) {
	assert.Equal(t, []Phase{
		{"Week 1-2", "Foundation & Fundamentals"},
		{"Week 3-4", "Core Concepts & Methodologies"},
		{"Week 5-6", "Advanced Techniques & Applications"},
		{"Week 7-8", "Practical Implementation & Mastery"},
	}, Phases(8))

	p := Phases(10)
	assert.Equal(t, "Week 1-3", p[0].Weeks)
	assert.Equal(t, "Week 4-6", p[1].Weeks)
	assert.Equal(t, "Week 7-8", p[2].Weeks)
	assert.Equal(t, "Week 9-10", p[3].Weeks)

	p = Phases(2)
	require.Len(t, p, 2)
	assert.Equal(t, "Week 1", p[0].Weeks)
	assert.Equal(t, "Week 2", p[1].Weeks)

	assert.Len(t, Phases(0), 1)
}
