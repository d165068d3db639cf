package command

import (
	"regexp"
	"strconv"
	"strings"
)

// Spoken numbers arrive either as English words or digits. Words are checked
// first, in a fixed order, and the first hit wins; no aggregation of multiple
// numbers in one utterance.
var numberWords = []struct {
	word  string
	value int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	{"eleven", 11}, {"twelve", 12}, {"fifteen", 15}, {"twenty", 20},
}

var digitRe = regexp.MustCompile(`\b(\d+)\b`)

func numberFrom(text string) (int, bool) {
	for _, nw := range numberWords {
		if strings.Contains(text, nw.word) {
			return nw.value, true
		}
	}
	if m := digitRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	return 0, false
}
