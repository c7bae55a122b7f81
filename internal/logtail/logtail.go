// Package logtail reads the end of LIVIA's log file for display in the
// terminal shell.
//
// Tail keeps a ring of the last n lines while scanning, so memory use is
// bounded by n and not by the file size. Filter narrows slog text output to
// records at or above a level.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const maxLineSize = 1024 * 1024

// Tail returns at most n lines from the end of the file at path, oldest
// first. A missing file yields no lines.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, n)
	next, count := 0, 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		count = min(count+1, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < n {
		return ring[:count], nil
	}
	return append(ring[next:], ring[:next]...), nil
}

// Level extracts the level of a slog text record. Lines without a level
// field report false.
func Level(line string) (slog.Level, bool) {
	for field := range strings.FieldsSeq(line) {
		value, ok := strings.CutPrefix(field, "level=")
		if !ok {
			continue
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return 0, false
		}
		return level, true
	}
	return 0, false
}

// Filter returns the lines whose level is at least threshold, in order.
func Filter(lines []string, threshold slog.Level) []string {
	var out []string
	for _, line := range lines {
		if level, ok := Level(line); ok && level >= threshold {
			out = append(out, line)
		}
	}
	return out
}

// Problems returns the last n warning or error records of the log at path.
func Problems(path string, n int) ([]string, error) {
	lines, err := Tail(path, n*8)
	if err != nil {
		return nil, err
	}
	problems := Filter(lines, slog.LevelWarn)
	if len(problems) > n {
		problems = problems[len(problems)-n:]
	}
	return problems, nil
}
