package kobo

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const queryDBVersion = `SELECT version FROM DbVersion;`

const queryBooks = `
	SELECT DISTINCT b.VolumeID, c.Title, c.Attribution AS Author,
	       (SELECT COUNT(*) FROM Bookmark b2 WHERE b2.VolumeID = b.VolumeID) AS Items
	FROM Bookmark b INNER JOIN content c ON b.VolumeID = c.ContentID
	ORDER BY c.Title;
`

// Kobo database version 175 links every bookmark to a content row; older
// versions may have orphaned bookmarks, so the chapter join becomes LEFT.
const queryItemsV175 = `
	SELECT b.VolumeID, b.Text, b.Annotation, b.DateCreated, b.DateModified,
	       b.ChapterProgress, c.Title AS Chapter, b.BookmarkID, b.StartOffset,
	       c.VolumeIndex, b.Color
	FROM Bookmark b INNER JOIN content c ON b.ContentID = c.ContentID
	WHERE b.VolumeID = ?
	GROUP BY b.BookmarkID ORDER BY c.VolumeIndex ASC, b.StartOffset ASC;
`

const queryItemsV174 = `
	SELECT b.VolumeID, b.Text, b.Annotation, b.DateCreated, b.DateModified,
	       b.ChapterProgress, c.Title AS Chapter, b.BookmarkID, b.StartOffset,
	       c.VolumeIndex, b.Color
	FROM Bookmark b LEFT JOIN content c ON b.ContentID = c.ContentID
	WHERE b.VolumeID = ?
	GROUP BY b.BookmarkID ORDER BY c.VolumeIndex ASC, b.StartOffset ASC;
`

// Reader reads annotations from a KoboReader.sqlite database. The
// connection is read-only and is held for the lifetime of the Reader.
type Reader struct {
	db      *sql.DB
	version int
}

// NewReader opens the database read-only and verifies it looks like a
// Kobo annotation store by probing its DbVersion table.
func NewReader(dbPath string) (*Reader, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read %s", ErrStoreUnavailable, dbPath)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var version int
	if err := db.QueryRow(queryDBVersion).Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: not a Kobo database: %v", ErrStoreUnavailable, err)
	}

	return &Reader{db: db, version: version}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Version returns the DbVersion reported by the database.
func (r *Reader) Version() int {
	return r.version
}

// ListBooks returns all books that have at least one annotation, ordered
// by ID ascending. IDs are ordinals assigned over books sorted by title.
func (r *Reader) ListBooks() ([]Book, error) {
	rows, err := r.db.Query(queryBooks)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query books: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		book := Book{}
		var author sql.NullString

		if err := rows.Scan(&book.VolumeID, &book.Title, &author, &book.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}

		book.Author = author.String
		book.ID = len(books) + 1
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

// GetBook returns the annotated book with the given ID.
func (r *Reader) GetBook(bookID int) (Book, error) {
	books, err := r.ListBooks()
	if err != nil {
		return Book{}, err
	}
	if bookID < 1 || bookID > len(books) {
		return Book{}, fmt.Errorf("%w: bookid must be between 1 and %d", ErrBookNotFound, len(books))
	}
	return books[bookID-1], nil
}

// GetAnnotations returns the annotations for a book, joined with chapter
// metadata and ordered by chapter (VolumeIndex) and in-chapter position
// (StartOffset). A book with no annotations yields an empty slice.
func (r *Reader) GetAnnotations(bookID int) ([]Annotation, error) {
	book, err := r.GetBook(bookID)
	if err != nil {
		return nil, err
	}

	query := queryItemsV174
	if r.version == 175 {
		query = queryItemsV175
	}

	rows, err := r.db.Query(query, book.VolumeID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query annotations: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var annotations []Annotation
	for rows.Next() {
		a := Annotation{}
		var text, note, created, modified, chapter sql.NullString
		var progress sql.NullFloat64
		var offset, index, color sql.NullInt64

		err := rows.Scan(
			&a.VolumeID,
			&text,
			&note,
			&created,
			&modified,
			&progress,
			&chapter,
			&a.BookmarkID,
			&offset,
			&index,
			&color,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan annotation row: %w", err)
		}

		a.Text = strings.TrimSpace(text.String)
		a.Note = note.String
		a.Chapter = chapter.String
		a.DateCreated = created.String
		if a.DateCreated == "" {
			a.DateCreated = "1970-01-01T00:00:00.000"
		}
		a.DateModified = modified.String
		a.ChapterProgress = progress.Float64
		a.StartOffset = int(offset.Int64)
		a.VolumeIndex = int(index.Int64)
		a.Color = int(color.Int64)

		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annotation rows: %w", err)
	}

	return annotations, nil
}
