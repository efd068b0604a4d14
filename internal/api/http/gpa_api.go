package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mind-engage/gpa-form/internal/gpa"
)

const maxAPIBody = 1 << 20

type calculateReq struct {
	Subjects     []gpa.Subject `json:"subjects"`
	PreviousCGPA float64       `json:"previous_cgpa"`
}

type calculateResp struct {
	SGPA           float64 `json:"sgpa"`
	CGPA           float64 `json:"cgpa"`
	CountedCredits float64 `json:"counted_credits"`
}

// MountAPI registers the stateless JSON endpoints under r.
func MountAPI(r chi.Router) {
	// POST /api/gpa
	r.Post("/gpa", CalculateHandler())
	// GET /api/grades
	r.Get("/grades", GradeScaleHandler())
}

func CalculateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calculateReq
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBody))
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		sgpa, cgpa := gpa.Aggregate(req.Subjects, req.PreviousCGPA)
		writeJSON(w, r, calculateResp{
			SGPA:           sgpa,
			CGPA:           cgpa,
			CountedCredits: gpa.CountedCredits(req.Subjects),
		})
	}
}

func GradeScaleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, gpa.Scale())
	}
}

// writeJSON encodes v before touching the response so an encoding failure
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
		http.Error(w, "encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}
