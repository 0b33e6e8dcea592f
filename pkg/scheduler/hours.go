package scheduler

import (
	"regexp"
	"strconv"
)

var rangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)

// ParseRange converts the first "HH:MM-HH:MM" found in text into a duration in hours.
// Surrounding text is ignored. An end at or before the start is taken to be on the
// next day. Input without a range yields 0.
func ParseRange(text string) float64 {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	start := minutes(m[1], m[2])
	end := minutes(m[3], m[4])
	if end <= start {
		end += 24 * 60
	}
	return float64(end-start) / 60
}

func minutes(h, m string) int {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	return hh*60 + mm
}
