package curriculum

import (
	"cyberlearn_backend/internal/model"
	"fmt"
	"strings"
)

// wordsPerMinute is the reading pace used for time estimates.
const wordsPerMinute = 200

const minSectionMinutes = 5

// Extract builds a table of contents from markdown: "## " lines open a
// chapter, "### " lines open a section within it. Text before the first
// chapter heading is ignored.
func Extract(markdown, level string) model.TableOfContents {
	toc := model.TableOfContents{Chapters: []model.Chapter{}, DifficultyLevel: level}

	var (
		chapter *model.Chapter
		section *model.Section
		body    []string
	)

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		switch {
		case section != nil:
			section.Content = text
			section.EstimatedTime = formatMinutes(estimateMinutes(text))
			chapter.Sections = append(chapter.Sections, *section)
			section = nil
		case chapter != nil:
			chapter.Content = text
		}
	}

	closeChapter := func() {
		flush()
		if chapter != nil {
			chapter.EstimatedTime = formatMinutes(chapterMinutes(chapter))
			toc.Chapters = append(toc.Chapters, *chapter)
			chapter = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "### ") && chapter != nil:
			flush()
			n := len(chapter.Sections) + 1
			section = &model.Section{
				ID:     fmt.Sprintf("%s-section-%d", chapter.ID, n),
				Number: fmt.Sprintf("%d.%d", chapter.Number, n),
				Title:  headingTitle(trimmed),
			}
		case strings.HasPrefix(trimmed, "## "):
			closeChapter()
			n := len(toc.Chapters) + 1
			chapter = &model.Chapter{
				ID:       fmt.Sprintf("chapter-%d", n),
				Number:   n,
				Title:    headingTitle(trimmed),
				Sections: []model.Section{},
			}
		default:
			if chapter != nil {
				body = append(body, line)
			}
		}
	}
	closeChapter()

	total := 0
	for i := range toc.Chapters {
		total += chapterMinutes(&toc.Chapters[i])
	}
	toc.TotalChapters = len(toc.Chapters)
	toc.TotalEstimatedTime = formatMinutes(total)
	return toc
}

func headingTitle(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

func estimateMinutes(text string) int {
	words := len(strings.Fields(text))
	m := (words + wordsPerMinute - 1) / wordsPerMinute
	if m < minSectionMinutes {
		m = minSectionMinutes
	}
	return m
}

func chapterMinutes(ch *model.Chapter) int {
	m := estimateMinutes(ch.Content)
	for _, s := range ch.Sections {
		m += estimateMinutes(s.Content)
	}
	return m
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%d min", m)
}

// FindChapter looks up a chapter by id.
func FindChapter(toc model.TableOfContents, id string) (*model.Chapter, bool) {
	for i := range toc.Chapters {
		if toc.Chapters[i].ID == id {
			return &toc.Chapters[i], true
		}
	}
	return nil, false
}

// FindSection searches every chapter for the section id.
func FindSection(toc model.TableOfContents, id string) (*model.Chapter, *model.Section, bool) {
	for i := range toc.Chapters {
		ch := &toc.Chapters[i]
		for j := range ch.Sections {
			if ch.Sections[j].ID == id {
				return ch, &ch.Sections[j], true
			}
		}
	}
	return nil, nil, false
}
