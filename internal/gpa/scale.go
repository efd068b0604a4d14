package gpa

var codes = [...]string{"O", "A+", "A", "B+", "B", "C", "RE"}

// Codes returns the grade codes in display order (best first). The slice is
// a fresh copy on every call.
func Codes() []string {
	out := make([]string, len(codes))
	copy(out, codes[:])
	return out
}

var scale = map[string]float64{
	"O":  10,
	"A+": 9,
	"A":  8,
	"B+": 7,
	"B":  6,
	"C":  5,
	"RE": 0,
}

// Points returns the point value of a grade code; ok is false for codes
// outside the scale (including the empty, unselected grade).
func Points(code string) (float64, bool) {
	p, ok := scale[code]
	return p, ok
}

// GradePoint is one row of the scale, used by the grades API.
type GradePoint struct {
	Code   string  `json:"code"`
	Points float64 `json:"points"`
}

// Scale returns the grade scale in display order.
func Scale() []GradePoint {
	out := make([]GradePoint, 0, len(codes))
	for _, c := range codes {
		out = append(out, GradePoint{Code: c, Points: scale[c]})
	}
	return out
}
