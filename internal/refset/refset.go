// Package refset loads newline-delimited identifier lists into membership
// sets, such as the Genizah collection list.
package refset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nlitools/almagraph/internal/ident"
)

// ErrSourceMissing reports that the file backing a reference set does not
// exist. Callers decide whether the set is mandatory (propagate) or optional
// (fall back to an empty set).
var ErrSourceMissing = errors.New("reference set source missing")

// Set is an immutable membership set of normalized identifiers. It is built
// once and shared read-only across requests.
type Set map[string]struct{}

// Contains reports membership of a normalized identifier.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int { return len(s) }

// Load reads a newline-delimited source into a Set. Each line is normalized
// independently; blank lines, comment lines (#-prefixed), and lines with no
// extractable identifier are skipped without error. Duplicates collapse.
func Load(r io.Reader) (Set, error) {
	set := make(Set)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if id, ok := ident.Normalize(line); ok {
			set[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reference list: %w", err)
	}

	return set, nil
}

// LoadFile loads a reference set from a file on disk. A missing file returns
// ErrSourceMissing wrapped with the path.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceMissing)
		}
		return nil, fmt.Errorf("open reference list %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}
