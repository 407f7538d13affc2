package dataprep

import "sort"

// DummyName is the column name emitted for one category of a field.
func DummyName(field, value string) string {
	return field + "_" + value
}

// Categories returns the distinct non-missing values of col, sorted.
// The first one is the baseline under drop-first encoding.
func Categories(col []string) []string {
	unique := map[string]struct{}{}
	for _, v := range col {
		if IsMissing(v) {
			continue
		}
		unique[v] = struct{}{}
	}
	out := make([]string, 0, len(unique))
	for v := range unique {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// OneHotDropFirst encodes a categorical column with drop-first semantics.
// It returns one column name and one 0/1 vector per non-baseline category.
// A field with a single observed value produces no columns; missing cells
// encode as all zero.
func OneHotDropFirst(field string, col []string) ([]string, [][]float64) {
	cats := Categories(col)
	if len(cats) < 2 {
		return nil, nil
	}
	index := make(map[string]int, len(cats)-1)
	names := make([]string, 0, len(cats)-1)
	for i, c := range cats[1:] {
		index[c] = i
		names = append(names, DummyName(field, c))
	}
	out := make([][]float64, len(names))
	for j := range out {
		out[j] = make([]float64, len(col))
	}
	for i, v := range col {
		if j, ok := index[v]; ok {
			out[j][i] = 1
		}
	}
	return names, out
}
