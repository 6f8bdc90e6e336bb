package bubbletea

import "github.com/sushilparjapat/relay"

// Pending exports the staged attachments for testing.
func Pending(m Model) []relay.File {
	return m.pending
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}
