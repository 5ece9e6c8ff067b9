package estimate

import "regexp"

// A weight needs a decimal separator; "5 kg" is not picked up.
var weightPattern = regexp.MustCompile(`(?i)(\d+[.,]\d+)` + unitGap + `?kg`)

// ExtractWeight returns the first explicit weight annotation in kilograms.
func ExtractWeight(doc Document) (float64, bool) {
	m := weightPattern.FindStringSubmatch(doc.Raw())
	if m == nil {
		return 0, false
	}
	value, err := parseDecimal(m[1])
	if err != nil {
		return 0, false
	}
	return value, true
}
