// internal/words/words.go
//
// Provides the fixed secret-word vocabulary for the role assigner.
//
// Responsibilities:
//   - Load the word list from an environment-provided file or fall back
//     to the embedded default list.
//   - Supply List and Count accessors for wiring and diagnostics.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise, use the embedded defaults from `default_words.txt`.
//
// Constraints:
//   • Lines are trimmed; blank lines and '#' comments are skipped.
//   • Words keep their original casing and may contain any letters
//     (the defaults are Polish and include diacritics).
//   • The vocabulary must hold at least 2 entries, so the impostor can
//     never infer the word by elimination.
//   • Initialization runs once (sync.Once).

package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed default_words.txt
var embeddedWords string

var (
	initOnce   sync.Once
	vocabulary []string
	initialErr error
)

// Init loads the vocabulary exactly once.
// Returns an error if fewer than 2 words end up loaded.
func Init() error {
	initOnce.Do(func() {
		var list []string
		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			list = normalizeLines(embeddedWords)
		}
		if len(list) < 2 {
			initialErr = fmt.Errorf("words: vocabulary needs at least 2 entries, got %d", len(list))
			return
		}
		vocabulary = list
	})
	return initialErr
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := cleanLine(sc.Text()); w != "" {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a word list.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w := cleanLine(line); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// cleanLine trims a raw line and drops comments.
func cleanLine(line string) string {
	w := strings.TrimSpace(line)
	if strings.HasPrefix(w, "#") {
		return ""
	}
	return w
}

// List returns the loaded vocabulary. Callers must not mutate it.
func List() []string {
	return vocabulary
}

// Count returns the number of loaded words.
func Count() int {
	return len(vocabulary)
}
