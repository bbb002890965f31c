package result

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	columnSep = "\t"
	fieldSep  = " "

	scanBufferSize = 64 * 1024
	maxLineSize    = 2 * 1024 * 1024

	columnCount    = 3
	pairFieldCount = 5
	tailFieldCount = 2
)

var (
	// ErrFile is returned when the result file can't be opened or read.
	ErrFile = errors.New("result file error")
	// ErrParse is returned when a row does not have the expected shape.
	ErrParse = errors.New("result parse error")
)

// Load reads the tab separated result file at path into a table.
// When hasHeader is set the first row is skipped without validation.
func Load(path string, hasHeader bool) (*Table, error) {
	if path == "" {
		return nil, errors.Wrap(ErrFile, "path required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrFile, "error opening %s: %v", path, err)
	}
	defer f.Close()

	t, err := Read(f, hasHeader)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading %s", path)
	}

	slog.Debug("results loaded", "path", path, "records", t.Len())
	return t, nil
}

// Read decodes all rows from r. Any malformed row fails the whole read,
// including blank lines. Only row 0 is skipped, and only when hasHeader is set.
func Read(r io.Reader, hasHeader bool) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanBufferSize), maxLineSize)

	t := NewTable()
	for line := 1; scanner.Scan(); line++ {
		if hasHeader && line == 1 {
			continue
		}

		rec, err := ParseRow(strings.Split(scanner.Text(), columnSep))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		t.Add(*rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrFile, "error reading rows: %v", err)
	}

	return t, nil
}

// ParseRow decodes the three columns of a result row:
//
//	"T R _ P node_pair" <tab> "confidence" <tab> "score orbit_pair"
func ParseRow(cols []string) (*Record, error) {
	if len(cols) != columnCount {
		return nil, errors.Wrapf(ErrParse, "expected %d columns, got %d", columnCount, len(cols))
	}

	pair := strings.Split(cols[0], fieldSep)
	if len(pair) != pairFieldCount {
		return nil, errors.Wrapf(ErrParse, "expected %d fields in %q, got %d", pairFieldCount, cols[0], len(pair))
	}

	tail := strings.Split(cols[2], fieldSep)
	if len(tail) != tailFieldCount {
		return nil, errors.Wrapf(ErrParse, "expected %d fields in %q, got %d", tailFieldCount, cols[2], len(tail))
	}

	var (
		rec Record
		err error
	)

	if rec.T, err = parseInt("T", pair[0]); err != nil {
		return nil, err
	}
	if rec.R, err = parseInt("R", pair[1]); err != nil {
		return nil, err
	}
	if rec.P, err = parseFloat("P", pair[3]); err != nil {
		return nil, err
	}
	rec.NodePair = pair[4]

	if rec.Confidence, err = parseFloat("confidence", cols[1]); err != nil {
		return nil, err
	}

	if rec.Score, err = parseFloat("score", tail[0]); err != nil {
		return nil, err
	}
	rec.OrbitPair = tail[1]

	return &rec, nil
}

func parseInt(name, val string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, errors.Wrapf(ErrParse, "invalid %s %q", name, val)
	}
	return v, nil
}

func parseFloat(name, val string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrParse, "invalid %s %q", name, val)
	}
	return v, nil
}
