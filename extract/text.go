package extract

import "os"

// Text extracts plain-text files verbatim.
type Text struct{}

// Extract reads the file contents as text.
func (Text) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
