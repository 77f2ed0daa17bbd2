package kobo

// Kind classifies a Bookmark row by which of its text fields are populated.
type Kind string

const (
	// KindAnnotation is a highlight with an attached free-text note.
	KindAnnotation Kind = "annotation"
	// KindHighlight is a highlighted passage without a note.
	KindHighlight Kind = "highlight"
	// KindNote is a note without highlighted text.
	KindNote Kind = "note"
	// KindBookmark carries neither highlighted text nor a note.
	KindBookmark Kind = "bookmark"
)

// Book represents an annotated book from the Kobo database.
// The ID is an ordinal assigned over books sorted by title; it is stable
// for an unchanged database and is what the export command accepts.
type Book struct {
	ID        int
	VolumeID  string // content identifier of the book volume
	Title     string
	Author    string
	ItemCount int // number of Bookmark rows for this volume
}

// Annotation represents a single highlight/note from the Kobo database,
// joined with the chapter metadata of the content it falls under.
// Timestamps are kept as the raw ISO strings Kobo stores.
type Annotation struct {
	BookmarkID      string
	VolumeID        string
	Text            string // highlighted text, may be empty
	Note            string // user annotation, may be empty
	Chapter         string // chapter title, may be empty
	DateCreated     string
	DateModified    string
	ChapterProgress float64
	StartOffset     int // position within the chapter
	VolumeIndex     int // chapter order within the book
	Color           int
}

// Kind returns the classification of this annotation.
func (a *Annotation) Kind() Kind {
	switch {
	case a.Text != "" && a.Note != "":
		return KindAnnotation
	case a.Text != "":
		return KindHighlight
	case a.Note != "":
		return KindNote
	default:
		return KindBookmark
	}
}
