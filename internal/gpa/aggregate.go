package gpa

import "math"

// Aggregate computes the term average (SGPA) and the combined average (CGPA).
//
// Only subjects with positive credits and a grade on the scale count; others
// are skipped silently. CGPA is a plain two-way mean of the unrounded SGPA and
// previous, or SGPA alone when previous is 0. Both values are rounded to two
// decimals.
//
// Credits are divided by the largest counted credit before summing, so huge
// inputs cannot overflow the sums; the ratio is unchanged.
func Aggregate(subjects []Subject, previous float64) (sgpa, cgpa float64) {
	var largest float64
	for _, s := range subjects {
		if _, ok := counted(s); ok && s.Credits > largest {
			largest = s.Credits
		}
	}

	var weighted, credits float64
	if largest > 0 {
		for _, s := range subjects {
			p, ok := counted(s)
			if !ok {
				continue
			}
			c := s.Credits / largest
			weighted += c * p
			credits += c
		}
	}

	term := 0.0
	if credits > 0 {
		term = weighted / credits
	}
	combined := term
	if previous > 0 && !math.IsInf(previous, 0) {
		combined = (term + previous) / 2
	}
	return Round2(term), Round2(combined)
}

// CountedCredits sums the credits of the subjects Aggregate would include,
// saturating at math.MaxFloat64.
func CountedCredits(subjects []Subject) float64 {
	var total float64
	for _, s := range subjects {
		if _, ok := counted(s); ok {
			total += s.Credits
		}
	}
	if total > math.MaxFloat64 {
		return math.MaxFloat64
	}
	return total
}

// counted reports whether s takes part in the average and, if so, its points.
func counted(s Subject) (float64, bool) {
	p, ok := Points(s.Grade)
	if !ok || !(s.Credits > 0) || math.IsInf(s.Credits, 0) {
		return 0, false
	}
	return p, true
}

// Round2 rounds half away from zero to two decimal places. Values too large
// to carry a fractional part are returned as they are.
func Round2(v float64) float64 {
	if math.Abs(v) >= 1<<52 || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
