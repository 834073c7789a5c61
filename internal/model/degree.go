package model

// Degree is a stance on the fixed agreement scale.
type Degree string

const (
	StronglyDisagree Degree = "Strongly Disagree"
	Disagree         Degree = "Disagree"
	SlightlyDisagree Degree = "Slightly Disagree"
	Neutral          Degree = "Neutral"
	SlightlyAgree    Degree = "Slightly Agree"
	Agree            Degree = "Agree"
	StronglyAgree    Degree = "Strongly Agree"
	Undecided        Degree = "Undecided"
)

// Degrees lists the scale in display order.
var Degrees = []Degree{
	StronglyDisagree,
	Disagree,
	SlightlyDisagree,
	Neutral,
	SlightlyAgree,
	Agree,
	StronglyAgree,
	Undecided,
}

// ParseDegree returns the degree named s. Matching is exact.
func ParseDegree(s string) (Degree, bool) {
	for _, d := range Degrees {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}
