package nrml

import (
	"strconv"
	"strings"
)

// FormatFloat renders a float in the canonical NRML text form: the shortest
// decimal representation, with ".0" forced onto integral values so that a
// whole-number longitude still reads "1.0" rather than "1". This matches the
// rendering the format's existing consumers were built against and is part
// of the wire contract.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.IndexFunc(s, isNonIntegralMark) < 0 {
		s += ".0"
	}
	return s
}

func isNonIntegralMark(r rune) bool {
	switch r {
	case '.', 'e', 'E', 'I', 'N': // decimal point, exponent, Inf, NaN
		return true
	}
	return false
}

// FormatFloats renders a sequence of floats joined by sep, in input order.
func FormatFloats(vs []float64, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatFloat(v)
	}
	return strings.Join(parts, sep)
}

// FormatInts renders a sequence of ints joined by sep.
func FormatInts(vs []int, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
