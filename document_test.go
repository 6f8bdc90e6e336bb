package relay_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushilparjapat/relay"
)

func TestFoldDocuments(t *testing.T) {
	t.Parallel()

	docs := []relay.Document{
		{Name: "a.txt", Text: "hello"},
		{Name: "b.pdf", Text: "world"},
	}

	msg := relay.FoldDocuments(docs, time.Now())

	assert.Equal(t, relay.RoleSystem, msg.Role)
	assert.Contains(t, msg.Content, "uploaded the following files")
	assert.Contains(t, msg.Content, "assist them in their queries")

	// Names and texts appear in input order.
	for _, want := range []string{"a.txt", "hello", "b.pdf", "world"} {
		assert.Contains(t, msg.Content, want)
	}
	assert.Less(t, strings.Index(msg.Content, "a.txt"), strings.Index(msg.Content, "b.pdf"))
	assert.Less(t, strings.Index(msg.Content, "hello"), strings.Index(msg.Content, "world"))
}
