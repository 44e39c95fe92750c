package util

import "strings"

// IndentExpand repeats the indent growth times
func IndentExpand(indent string, growth int) string {
	if growth <= 0 {
		return ""
	}
	return strings.Repeat(indent, growth)
}

// SliceMap applies lambda to every element in place and returns the same slice
func SliceMap(arr []float64, lambda func(float64) float64) []float64 {
	for i, v := range arr {
		arr[i] = lambda(v)
	}
	return arr
}
