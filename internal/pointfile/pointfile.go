// Package pointfile reads point sets in the plain text format used by the
// command line tools: a point count on the first line, then one point per
// line with comma separated coordinates.
//
//	3
//	0, 0
//	10, 0
//	5.5, 4
package pointfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoCount is returned when the input does not start with a point count.
var ErrNoCount = errors.New("pointfile: missing point count")

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pointfile: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadFile reads the point file at path.
func ReadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a point count followed by that many points. Blank lines are
// skipped and anything after the last counted point is ignored. Every point
// must have the same number of coordinates.
func Read(r io.Reader) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			if s := strings.TrimSpace(sc.Text()); s != "" {
				return s, true
			}
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoCount
	}
	count, err := strconv.Atoi(header)
	if err != nil {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: %v", ErrNoCount, err)}
	}
	if count < 0 {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("invalid point count %d", count)}
	}

	points := make([][]float64, 0, count)
	for len(points) < count {
		s, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("pointfile: expected %d points, got %d", count, len(points))
		}
		p, err := ParsePoint(s)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if len(points) > 0 && len(p) != len(points[0]) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("point has %d coordinates, want %d", len(p), len(points[0]))}
		}
		points = append(points, p)
	}
	return points, nil
}

// ParsePoint parses comma separated coordinates such as "1.5, -2".
func ParsePoint(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	p := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		p[i] = v
	}
	return p, nil
}
