// Package parse reads distance-matrix instances from text.
//
// Three formats are supported and auto-detected:
//
//   - labeled: the first significant line lists city labels, followed by
//     one matrix row per line
//   - bare: just the matrix rows; labels are autogenerated
//   - tsplib: TSPLIB files with EDGE_WEIGHT_TYPE EXPLICIT
//
// In the labeled and bare formats, blank lines and lines starting with '#'
// are skipped, and labels containing spaces can be double-quoted:
//
//	# three stops
//	Depot "New York" Boston
//	0 10 15
//	10 0 35
//	15 35 0
//
// The parser only shapes text into rows; all matrix invariants (symmetry,
// zero diagonal, value ranges) are enforced by [tsp.NewMatrix], so a
// successfully parsed instance is always solvable.
package parse

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Format identifies an instance text layout.
type Format string

const (
	// FormatLabeled is a label line followed by matrix rows.
	FormatLabeled Format = "labeled"
	// FormatBare is matrix rows only.
	FormatBare Format = "bare"
	// FormatTSPLIB is a TSPLIB file with an explicit weight matrix.
	FormatTSPLIB Format = "tsplib"
)

// line is a significant input line with its 1-based position for error context.
type line struct {
	num  int
	text string
}

// ReadFile parses the instance file at path.
// The instance name defaults to the file's base name without extension.
func ReadFile(path string) (*tsp.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(f, name)
}

// ReadText parses instance text held in a string, typically from an HTTP
// request body or a test.
func ReadText(text, name string) (*tsp.Instance, error) {
	return Read(strings.NewReader(text), name)
}

// Read parses an instance from r, auto-detecting the format.
// name becomes the instance name unless a TSPLIB NAME field overrides it.
func Read(r io.Reader, name string) (*tsp.Instance, error) {
	raw, err := readLines(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read instance")
	}

	if isTSPLIB(raw) {
		return readTSPLIB(raw, name)
	}

	sig := significant(raw)
	if len(sig) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "instance is empty")
	}

	if allNumeric(sig[0].text) {
		return readBare(sig, name)
	}
	return readLabeled(sig, name)
}

// DetectFormat reports which layout the text would be parsed as.
func DetectFormat(text string) Format {
	raw, err := readLines(strings.NewReader(text))
	if err != nil {
		return FormatBare
	}
	if isTSPLIB(raw) {
		return FormatTSPLIB
	}
	sig := significant(raw)
	if len(sig) > 0 && !allNumeric(sig[0].text) {
		return FormatLabeled
	}
	return FormatBare
}

func readLines(r io.Reader) ([]line, error) {
	var lines []line
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		lines = append(lines, line{num: num, text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// significant drops blank lines and '#' comments, keeping line numbers.
func significant(raw []line) []line {
	var out []line
	for _, l := range raw {
		t := strings.TrimSpace(l.text)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		out = append(out, line{num: l.num, text: t})
	}
	return out
}

func allNumeric(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

// readLabeled parses a label line plus n matrix rows.
func readLabeled(sig []line, name string) (*tsp.Instance, error) {
	labels, err := splitLabels(sig[0])
	if err != nil {
		return nil, err
	}
	n := len(labels)
	for _, l := range labels {
		if err := apperrors.ValidateLabel(l); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "line %d", sig[0].num)
		}
	}

	rows, err := readRows(sig[1:], n)
	if err != nil {
		return nil, err
	}
	return newInstance(name, rows, labels)
}

// readBare parses matrix rows only; the first row fixes the dimension.
func readBare(sig []line, name string) (*tsp.Instance, error) {
	n := len(strings.Fields(sig[0].text))
	rows, err := readRows(sig, n)
	if err != nil {
		return nil, err
	}
	return newInstance(name, rows, nil)
}

// readRows parses exactly n rows of n numbers each.
func readRows(sig []line, n int) ([][]float64, error) {
	if len(sig) != n {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"expected %d matrix rows, got %d", n, len(sig))
	}

	rows := make([][]float64, n)
	for i, l := range sig {
		fields := strings.Fields(l.text)
		if len(fields) != n {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
				"line %d: expected %d values, got %d", l.num, n, len(fields))
		}
		row := make([]float64, n)
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
					"line %d: %q is not a number", l.num, f)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return rows, nil
}

// splitLabels tokenizes a label line, honoring double-quoted labels so
// "New York" stays one label.
func splitLabels(l line) ([]string, error) {
	var labels []string
	text := l.text
	for i := 0; i < len(text); {
		switch {
		case text[i] == ' ' || text[i] == '\t':
			i++
		case text[i] == '"':
			end := strings.IndexByte(text[i+1:], '"')
			if end < 0 {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
					"line %d: unterminated quote", l.num)
			}
			labels = append(labels, text[i+1:i+1+end])
			i += end + 2
		default:
			end := strings.IndexAny(text[i:], " \t")
			if end < 0 {
				end = len(text) - i
			}
			labels = append(labels, text[i:i+end])
			i += end
		}
	}
	if len(labels) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "line %d: no labels", l.num)
	}
	return labels, nil
}

// newInstance builds the validated instance, translating matrix errors
// into the coded taxonomy while preserving the sentinel chain.
func newInstance(name string, rows [][]float64, labels []string) (*tsp.Instance, error) {
	m, err := tsp.NewMatrix(rows)
	if err != nil {
		return nil, wrapMatrixErr(err)
	}
	inst, err := tsp.NewInstance(name, m, labels)
	if err != nil {
		return nil, wrapMatrixErr(err)
	}
	return inst, nil
}

func wrapMatrixErr(err error) error {
	code := apperrors.ErrCodeInvalidMatrix
	if errors.Is(err, tsp.ErrResourceExhausted) {
		code = apperrors.ErrCodeResourceExhausted
	}
	return apperrors.Wrap(code, err, "invalid instance")
}
