package dataprep

import (
	"math"
	"strconv"
	"strings"
)

// IsMissing reports whether a raw cell holds no value.
func IsMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

// ParseNumeric parses a column of raw cells. Missing cells become NaN; any
// other unparsable or infinite cell is a *DataFormatError.
func ParseNumeric(column string, col []string) ([]float64, error) {
	parse := strconv.ParseFloat
	if column == Owner {
		parse = parseOwner
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if IsMissing(v) {
			out[i] = math.NaN()
			continue
		}
		f, err := parse(strings.TrimSpace(v), 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, &DataFormatError{Column: column, Row: i + 1, Value: v}
		}
		out[i] = f
	}
	return out, nil
}

// ownerPhrases covers datasets that spell the prior-owner count out.
var ownerPhrases = map[string]float64{
	"firstowner":          0,
	"secondowner":         1,
	"thirdowner":          2,
	"fourthaboveowner":    3,
	"fourthandaboveowner": 3,
	"testdrivecar":        0,
}

func parseOwner(v string, bitSize int) (float64, error) {
	if f, err := strconv.ParseFloat(v, bitSize); err == nil {
		return f, nil
	}
	if f, ok := ownerPhrases[canonicalKey(v)]; ok {
		return f, nil
	}
	return 0, strconv.ErrSyntax
}

// DropMissing returns the row indices whose value in col is not NaN.
func DropMissing(col []float64) []int {
	keep := make([]int, 0, len(col))
	for i, v := range col {
		if !math.IsNaN(v) {
			keep = append(keep, i)
		}
	}
	return keep
}
