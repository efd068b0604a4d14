package http

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mind-engage/gpa-form/internal/gpa"
	"github.com/mind-engage/gpa-form/internal/view"
)

// GET /
func FormPageHandler(sessions Sessions, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, st, err := sessions.open(w, r)
		if err != nil {
			http.Error(w, "session: "+err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := renderer.Form(&buf, st); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("render form")
			http.Error(w, "render: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}

// POST /
//
// The browser posts every row plus the pressed button's "action" value.
// Field edits are applied first so an add, remove or calculate sees what the
// user typed.
func SubmitFormHandler(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
			return
		}
		id, st, err := sessions.open(w, r)
		if err != nil {
			http.Error(w, "session: "+err.Error(), http.StatusInternalServerError)
			return
		}

		actions := formActions(r.PostForm, len(st.Subjects))
		st = sessions.Store.Apply(id, actions...)
		if st.Result.Computed && r.PostForm.Get("action") == "calculate" {
			zerolog.Ctx(r.Context()).Debug().
				Float64("sgpa", st.Result.SGPA).
				Float64("cgpa", st.Result.CGPA).
				Int("subjects", len(st.Subjects)).
				Msg("calculated")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

var rowFields = []gpa.Field{gpa.FieldName, gpa.FieldCredits, gpa.FieldGrade}

// formActions turns a posted form into reducer actions for a form that
// currently has rows subjects. Fields of rows the session does not have are
// ignored.
func formActions(form url.Values, rows int) []gpa.Action {
	var actions []gpa.Action
	for i := 0; i < rows; i++ {
		for _, f := range rowFields {
			key := string(f) + "-" + strconv.Itoa(i)
			if vs, ok := form[key]; ok && len(vs) > 0 {
				actions = append(actions, gpa.UpdateSubject{Index: i, Field: f, Value: vs[0]})
			}
		}
	}
	if vs, ok := form["previous"]; ok && len(vs) > 0 {
		actions = append(actions, gpa.SetPrevious{Value: vs[0]})
	}
	if a := parseAction(form.Get("action")); a != nil {
		actions = append(actions, a)
	}
	return actions
}

func parseAction(v string) gpa.Action {
	switch {
	case v == "add":
		return gpa.AddSubject{}
	case v == "calculate":
		return gpa.Calculate{}
	case strings.HasPrefix(v, "remove:"):
		i, err := strconv.Atoi(strings.TrimPrefix(v, "remove:"))
		if err != nil {
			return nil
		}
		return gpa.RemoveSubject{Index: i}
	default:
		return nil
	}
}
