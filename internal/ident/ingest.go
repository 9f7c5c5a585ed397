package ident

import (
	"bufio"
	"io"
	"strings"
)

// commentPrefix marks a line in an uploaded list as a comment.
const commentPrefix = "#"

// ParseBatch parses a raw multi-line blob (an uploaded TXT list) into an
// ordered, deduplicated batch of identifiers.
//
// Blank lines and comment lines are skipped. Every remaining line is scanned
// for embedded identifiers via ExtractAll; duplicates collapse while
// first-seen order is preserved. Lines with no extractable identifier are
// silently dropped.
func ParseBatch(text string) []string {
	seen := make(map[string]struct{})
	var ordered []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		for _, id := range ExtractAll(line) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ordered = append(ordered, id)
		}
	}

	return ordered
}

// ParseBatchReader reads all input and parses it via ParseBatch.
func ParseBatchReader(r io.Reader) ([]string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseBatch(sb.String()), nil
}
