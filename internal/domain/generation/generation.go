// Package generation maps a birth year to its generational cohort label.
package generation

import (
	"strconv"
	"strings"
)

// Cohort labels, most recent first.
const (
	Alpha      = "Generation Alpha"
	Z          = "Generation Z"
	Millennial = "Millennials"
	X          = "Generation X"
	Boomers    = "Baby Boomers"
	Silent     = "Silent Generation"
	Greatest   = "Greatest Generation"
	Lost       = "Lost Generation"
)

// MillennialAlias is the alternate name some screens use for the 1981 cohort.
const MillennialAlias = "Generation Y"

type cohort struct {
	from  int
	label string
}

// cohorts is ordered by inclusive lower bound, most recent first.
var cohorts = []cohort{
	{from: 2013, label: Alpha},
	{from: 1997, label: Z},
	{from: 1981, label: Millennial},
	{from: 1965, label: X},
	{from: 1946, label: Boomers},
	{from: 1928, label: Silent},
	{from: 1901, label: Greatest},
}

var descriptions = map[string]string{
	Alpha:      "Digital natives growing up with AI and smart devices",
	Z:          "True digital natives, socially conscious and entrepreneurial",
	Millennial: "Tech-savvy, collaborative, and purpose-driven",
	X:          "Independent, adaptable, and skeptical of institutions",
	Boomers:    "Optimistic, competitive, and work-centric",
	Silent:     "Traditional, loyal, and disciplined",
	Greatest:   "Resilient, civic-minded, and shaped by hardship",
	Lost:       "Came of age during the First World War",
}

// Resolve returns the cohort label for birthYear. Zero or negative years yield "".
// Years before 1901 resolve to the Lost Generation.
func Resolve(birthYear int) string {
	if birthYear <= 0 {
		return ""
	}

	for _, c := range cohorts {
		if birthYear >= c.from {
			return c.label
		}
	}

	return Lost
}

// ResolveString accepts form input. Blank or non-numeric input yields "".
func ResolveString(birthYear string) string {
	year, err := strconv.Atoi(strings.TrimSpace(birthYear))
	if err != nil {
		return ""
	}

	return Resolve(year)
}

// Describe returns a one-line description for a label, accepting MillennialAlias too.
func Describe(label string) string {
	if label == MillennialAlias {
		label = Millennial
	}

	return descriptions[label]
}

// DisplayName renders the Millennial cohort with its alias, "Millennials (Generation Y)".
func DisplayName(label string) string {
	if label == Millennial {
		return Millennial + " (" + MillennialAlias + ")"
	}

	return label
}
