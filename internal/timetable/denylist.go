package timetable

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// Denylist holds known instructor surnames stripped from cell text
// with case-insensitive whole-word matching.
type Denylist struct {
	patterns []*regexp.Regexp
}

// NewDenylist compiles a denylist from surnames.
func NewDenylist(names []string) *Denylist {
	dl := &Denylist{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		dl.patterns = append(dl.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(name)+`\b`))
	}
	return dl
}

// LoadDenylist reads one surname per line from the provided file path.
// A missing file yields an empty denylist.
func LoadDenylist(path string) (*Denylist, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDenylist(nil), nil
		}
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only denylist.
			_ = cerr
		}
	}()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewDenylist(names), nil
}

// Strip removes every denylisted surname from the text.
func (d *Denylist) Strip(text string) string {
	if d == nil {
		return text
	}
	for _, re := range d.patterns {
		text = re.ReplaceAllString(text, " ")
	}
	return text
}
