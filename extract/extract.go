// Package extract converts uploaded documents to plain text.
//
// Extraction is dispatched by file extension: plain text, PDF, and Word
// (.docx) documents are supported. Files with an unrecognized extension are
// silently skipped, and a document that fails to parse is skipped too;
// extraction never aborts a turn.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sushilparjapat/relay"
)

// Extractor converts one file to text.
type Extractor interface {
	Extract(path string) (string, error)
}

// Interface compliance check.
var _ relay.DocumentReader = (*Reader)(nil)

// Reader implements [relay.DocumentReader]. Extraction runs on a background
// worker goroutine so long-running parsing cannot stall the caller's event
// loop; the caller awaits the result through the context.
type Reader struct {
	extractors map[string]Extractor
}

// NewReader creates a Reader with the default per-extension extractors.
func NewReader() *Reader {
	return &Reader{
		extractors: map[string]Extractor{
			".txt":  Text{},
			".md":   Text{},
			".pdf":  PDF{},
			".docx": Docx{},
		},
	}
}

// ReadAll extracts text from the given files in order. Unrecognized
// extensions and parse failures skip the file; the returned documents hold
// only what yielded text. The error return is reserved for cancellation.
func (r *Reader) ReadAll(ctx context.Context, files []relay.File) ([]relay.Document, error) {
	type result struct {
		docs []relay.Document
	}
	ch := make(chan result, 1)

	go func() {
		var docs []relay.Document
		for _, f := range files {
			ext := strings.ToLower(filepath.Ext(f.Path))
			ex, ok := r.extractors[ext]
			if !ok {
				continue
			}
			text, err := ex.Extract(f.Path)
			if err != nil || text == "" {
				continue
			}
			docs = append(docs, relay.Document{Name: f.Name, Text: text})
		}
		ch <- result{docs: docs}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.docs, nil
	}
}
