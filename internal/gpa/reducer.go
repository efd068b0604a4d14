package gpa

// Field names a mutable column of a subject row.
type Field string

const (
	FieldName    Field = "name"
	FieldCredits Field = "credits"
	FieldGrade   Field = "grade"
)

// Action is a user event on the form.
type Action interface{ apply(State) State }

type (
	AddSubject    struct{}
	RemoveSubject struct{ Index int }
	UpdateSubject struct {
		Index int
		Field Field
		Value string
	}
	SetPrevious struct{ Value string }
	Calculate   struct{}
)

func (AddSubject) apply(s State) State      { return Add(s) }
func (a RemoveSubject) apply(s State) State { return Remove(s, a.Index) }
func (a UpdateSubject) apply(s State) State {
	return Update(s, a.Index, a.Field, a.Value)
}
func (a SetPrevious) apply(s State) State { return SetPreviousAverage(s, a.Value) }
func (Calculate) apply(s State) State     { return Recalculate(s) }

// Reduce applies actions in order. A nil action is skipped.
func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		if a == nil {
			continue
		}
		s = a.apply(s)
	}
	return s
}

// Add appends an empty subject.
func Add(s State) State {
	return s.withSubjects(append(s.copySubjects(), Subject{}))
}

// Remove deletes the subject at index. The last remaining row and
// out-of-range indexes are left alone.
func Remove(s State, index int) State {
	if !s.CanRemove() || index < 0 || index >= len(s.Subjects) {
		return s
	}
	out := make([]Subject, 0, len(s.Subjects)-1)
	out = append(out, s.Subjects[:index]...)
	out = append(out, s.Subjects[index+1:]...)
	return s.withSubjects(out)
}

// Update replaces one field of the subject at index. Credits are coerced
// with ParseNonNegative; grades are stored as given.
func Update(s State, index int, field Field, value string) State {
	if index < 0 || index >= len(s.Subjects) {
		return s
	}
	out := s.copySubjects()
	switch field {
	case FieldName:
		out[index].Name = value
	case FieldCredits:
		out[index].Credits = ParseNonNegative(value)
	case FieldGrade:
		out[index].Grade = value
	default:
		return s
	}
	return s.withSubjects(out)
}

// SetPreviousAverage stores the prior cumulative average; 0 means none.
func SetPreviousAverage(s State, raw string) State {
	s.Previous = ParseNonNegative(raw)
	s.Subjects = s.copySubjects()
	return s
}

// Recalculate runs Aggregate over the current inputs and records the result.
func Recalculate(s State) State {
	sgpa, cgpa := Aggregate(s.Subjects, s.Previous)
	s.Subjects = s.copySubjects()
	s.Result = Result{Computed: true, SGPA: sgpa, CGPA: cgpa}
	return s
}
