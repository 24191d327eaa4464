// Package wordlist loads and filters categorized word lists.
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path. An empty
// file yields no words and no error.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	return ParseWords(file)
}

// ParseWords splits newline-delimited content into trimmed, non-blank words.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
