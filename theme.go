package relay

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg  int // User message accent
	Thinking int // Thinking block text
	Error    int // Error messages
	Muted    int // Status bar, placeholders
	Accent   int // Headings, model name
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:  4,
		Thinking: 8,
		Error:    1,
		Muted:    8,
		Accent:   5,
	}
}
