package parse

import (
	"strconv"
	"strings"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// tsplibKeywords are the header fields that identify a TSPLIB file.
// Detection checks the first significant lines only, so a labeled
// instance whose city happens to be called "NAME" is not misread.
var tsplibKeywords = []string{
	"NAME", "TYPE", "COMMENT", "DIMENSION",
	"EDGE_WEIGHT_TYPE", "EDGE_WEIGHT_FORMAT", "EDGE_WEIGHT_SECTION",
}

func isTSPLIB(raw []line) bool {
	for i, l := range raw {
		if i >= 3 {
			break
		}
		t := strings.TrimSpace(l.text)
		for _, kw := range tsplibKeywords {
			if t == kw || strings.HasPrefix(t, kw+":") || strings.HasPrefix(t, kw+" :") {
				return true
			}
		}
	}
	return false
}

// readTSPLIB parses the explicit-matrix subset of TSPLIB: header fields,
// then EDGE_WEIGHT_SECTION with n*n weights in row-major order, possibly
// wrapped across lines, terminated by EOF or end of input. Coordinate-based
// files (EDGE_WEIGHT_TYPE EUC_2D and friends) are rejected; this reader
// only consumes distance matrices.
func readTSPLIB(raw []line, name string) (*tsp.Instance, error) {
	n := 0
	weightType := "EXPLICIT"
	var weights []float64
	inSection := false

	for _, l := range raw {
		t := strings.TrimSpace(l.text)
		if t == "" {
			continue
		}

		if !inSection {
			key, value := splitHeaderField(t)
			switch key {
			case "NAME":
				if value != "" {
					name = value
				}
			case "DIMENSION":
				v, err := strconv.Atoi(value)
				if err != nil {
					return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
						"line %d: bad DIMENSION %q", l.num, value)
				}
				n = v
			case "EDGE_WEIGHT_TYPE":
				weightType = value
			case "EDGE_WEIGHT_SECTION":
				if weightType != "EXPLICIT" {
					return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
						"unsupported EDGE_WEIGHT_TYPE %q, only EXPLICIT matrices are readable", weightType)
				}
				if n <= 0 {
					return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
						"EDGE_WEIGHT_SECTION before DIMENSION")
				}
				inSection = true
				weights = make([]float64, 0, n*n)
			}
			continue
		}

		if t == "EOF" {
			break
		}
		for _, f := range strings.Fields(t) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
					"line %d: %q is not a number", l.num, f)
			}
			weights = append(weights, v)
		}
	}

	if !inSection {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "missing EDGE_WEIGHT_SECTION")
	}
	if len(weights) != n*n {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"EDGE_WEIGHT_SECTION has %d weights, want %d for dimension %d", len(weights), n*n, n)
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = weights[i*n : (i+1)*n]
	}
	return newInstance(name, rows, nil)
}

// splitHeaderField splits "DIMENSION: 4" or "DIMENSION : 4" into key and value.
// Bare section markers like "EDGE_WEIGHT_SECTION" return an empty value.
func splitHeaderField(t string) (key, value string) {
	if i := strings.IndexByte(t, ':'); i >= 0 {
		return strings.TrimSpace(t[:i]), strings.TrimSpace(t[i+1:])
	}
	return strings.TrimSpace(t), ""
}
