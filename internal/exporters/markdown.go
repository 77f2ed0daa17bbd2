package exporters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/kobo-export/internal/kobo"
)

// Options controls how the markdown document is rendered.
type Options struct {
	// ColorLabels assigns a marker symbol to each color code: code N
	// renders with ColorLabels[N]. Codes outside the slice, or with an
	// empty label, render without a marker.
	ColorLabels []string
	// NoColors suppresses all markers regardless of ColorLabels.
	NoColors bool
	// Debug appends a metadata line to every rendered annotation.
	Debug bool
}

// MarkdownRenderer renders a book's annotations as a markdown document
// grouped by chapter.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer creates a renderer with the given options.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts}
}

type chapterGroup struct {
	title       string
	annotations []kobo.Annotation
}

// groupByChapter groups annotations by chapter label. Chapters appear in
// the order they are first encountered when annotations are traversed in
// position order (VolumeIndex, then StartOffset); within a chapter the
// sort is stable, so annotations sharing an offset keep their input order.
func groupByChapter(annotations []kobo.Annotation) []chapterGroup {
	ordered := make([]kobo.Annotation, len(annotations))
	copy(ordered, annotations)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].VolumeIndex != ordered[j].VolumeIndex {
			return ordered[i].VolumeIndex < ordered[j].VolumeIndex
		}
		return ordered[i].StartOffset < ordered[j].StartOffset
	})

	var groups []chapterGroup
	indexByTitle := make(map[string]int)
	for _, a := range ordered {
		idx, ok := indexByTitle[a.Chapter]
		if !ok {
			idx = len(groups)
			indexByTitle[a.Chapter] = idx
			groups = append(groups, chapterGroup{title: a.Chapter})
		}
		groups[idx].annotations = append(groups[idx].annotations, a)
	}

	return groups
}

// RenderDocument renders the complete markdown document for a book. A book
// without renderable annotations yields a header-only document.
func (r *MarkdownRenderer) RenderDocument(book kobo.Book, annotations []kobo.Annotation) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "---\ntitle: %s\nauthor: %s\n---\n", book.Title, book.Author)
	fmt.Fprintf(&sb, "# \"%s\" by %s\n", book.Title, book.Author)

	for _, group := range groupByChapter(annotations) {
		var rendered []string
		for _, a := range group.annotations {
			if block := r.RenderAnnotation(a); block != "" {
				rendered = append(rendered, block)
			}
		}
		if len(rendered) == 0 {
			continue
		}

		// An absent chapter label gets no heading, just its annotations.
		if group.title != "" {
			fmt.Fprintf(&sb, "\n### %s\n\n", group.title)
		} else {
			sb.WriteString("\n")
		}
		for _, block := range rendered {
			sb.WriteString(block)
		}
	}

	return sb.String()
}

// RenderAnnotation renders a single annotation block. Bookmarks carrying
// neither highlighted text nor a note render as nothing and are skipped.
func (r *MarkdownRenderer) RenderAnnotation(a kobo.Annotation) string {
	kind := a.Kind()

	switch kind {
	case kobo.KindBookmark:
		return ""
	case kobo.KindNote:
		return fmt.Sprintf("- %s\n\n", a.Note)
	}

	marker := ""
	if !r.opts.NoColors && a.Color >= 0 && a.Color < len(r.opts.ColorLabels) {
		if label := r.opts.ColorLabels[a.Color]; label != "" {
			marker = label + " "
		}
	}

	debugInfo := ""
	if r.opts.Debug {
		debugInfo = fmt.Sprintf(
			"\n>\n> **Debug:** kind=%s, volume_index=%d, start_offset=%d, chapter_progress=%g, datecreated=%s, color=%d",
			kind, a.VolumeIndex, a.StartOffset, a.ChapterProgress, a.DateCreated, a.Color,
		)
	}

	if kind == kobo.KindAnnotation {
		return fmt.Sprintf("> %s%s%s\n\n- %s\n\n", marker, a.Text, debugInfo, a.Note)
	}
	return fmt.Sprintf("> %s%s%s\n\n", marker, a.Text, debugInfo)
}
