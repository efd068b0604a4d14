package gpa

// Subject is one row of the form. Name is a label only.
type Subject struct {
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Grade   string  `json:"grade"`
}

// Result holds the outputs of the last calculate. Computed is false until
// the first calculate, so a zero SGPA is never mistaken for "no result".
type Result struct {
	Computed bool
	SGPA     float64
	CGPA     float64
}

// State is the whole form. Treat it as a value: reducer transitions return a
// new State and never touch the subject slice of the one passed in.
type State struct {
	Subjects []Subject
	Previous float64
	Result   Result
}

// NewState returns a form with a single empty subject and no result.
func NewState() State {
	return State{Subjects: []Subject{{}}}
}

// CanRemove reports whether a row may be deleted.
func (s State) CanRemove() bool { return len(s.Subjects) > 1 }

func (s State) withSubjects(subjects []Subject) State {
	s.Subjects = subjects
	return s
}

func (s State) copySubjects() []Subject {
	out := make([]Subject, len(s.Subjects))
	copy(out, s.Subjects)
	return out
}
