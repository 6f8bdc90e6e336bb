package relay

import (
	"context"
	"strings"
	"time"
)

// File identifies an uploaded file before extraction. Name is the
// user-facing label; Path is where the bytes live.
type File struct {
	Path string
	Name string
}

// Document is the extracted text of one uploaded file.
type Document struct {
	Name string
	Text string
}

// DocumentReader extracts text from uploaded files. Files whose type is
// unrecognized or that fail to parse are skipped, not errors: the returned
// slice holds only the documents that yielded text, in input order.
// Implementations must not block the caller's event loop; extraction runs
// on a background worker.
type DocumentReader interface {
	ReadAll(ctx context.Context, files []File) ([]Document, error)
}

// FoldDocuments concatenates extracted documents into a single system-role
// context message, each document's text labeled by its name. Callers must
// not fold an empty document set; the orchestrator skips the fold entirely
// when nothing was extracted, so no empty system message is ever appended.
func FoldDocuments(docs []Document, at time.Time) Message {
	var b strings.Builder
	b.WriteString("The user has uploaded the following files:")
	for _, d := range docs {
		b.WriteString("\n\nFile: ")
		b.WriteString(d.Name)
		b.WriteString("\n")
		b.WriteString(d.Text)
	}
	b.WriteString("\n\nAssist them in their queries if related to the uploaded files.")
	return SystemMessage(b.String(), at)
}
