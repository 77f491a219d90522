package pkg

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var abbreviations = []struct {
	suffix   string
	exponent int
}{
	{"T", 12},
	{"B", 9},
	{"M", 6},
	{"K", 3},
}

// AbbreviateNumber renders n with one decimal and the largest fitting suffix, e.g. 1234567 -> "1.2 M".
// Numbers that round to 0.0 K are rejected.
func AbbreviateNumber(n int64) (string, error) {
	if n < 0 {
		return "", errors.Errorf("cannot abbreviate negative number %d", n)
	}
	for _, a := range abbreviations {
		divisor := math.Pow(10, float64(a.exponent-1))
		abbrev := strconv.FormatFloat(math.Round(float64(n)/divisor)/10, 'f', -1, 64)
		if abbrev != "0" {
			if !strings.Contains(abbrev, ".") {
				abbrev += ".0"
			}
			return abbrev + " " + a.suffix, nil
		}
	}
	return "", errors.Errorf("number %d is too small to abbreviate", n)
}
