package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/mind-engage/gpa-form/internal/gpa"
)

//go:embed templates/*.html
var templateFS embed.FS

// Brand is the title link shown above the form.
type Brand struct {
	Name string
	URL  string
}

type Renderer struct {
	tmpl  *template.Template
	brand Brand
}

func New(brand Brand) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, brand: brand}, nil
}

type row struct {
	Index   int
	Name    string
	Credits string
	Grade   string
}

type result struct {
	SGPA string
	CGPA string
}

type page struct {
	BrandName string
	BrandURL  string
	Rows      []row
	Codes     []string
	CanRemove bool
	Previous  string
	Result    *result
}

// Form writes the full page for st.
func (r *Renderer) Form(w io.Writer, st gpa.State) error {
	p := page{
		BrandName: r.brand.Name,
		BrandURL:  r.brand.URL,
		Rows:      make([]row, 0, len(st.Subjects)),
		Codes:     gpa.Codes(),
		CanRemove: st.CanRemove(),
		Previous:  blankZero(st.Previous),
	}
	for i, s := range st.Subjects {
		p.Rows = append(p.Rows, row{Index: i, Name: s.Name, Credits: blankZero(s.Credits), Grade: s.Grade})
	}
	if st.Result.Computed {
		p.Result = &result{SGPA: FormatNumber(st.Result.SGPA), CGPA: FormatNumber(st.Result.CGPA)}
	}
	if err := r.tmpl.ExecuteTemplate(w, "form.html", p); err != nil {
		return fmt.Errorf("render form: %w", err)
	}
	return nil
}

// FormatNumber prints the shortest decimal that round-trips (9.14, 8, 0).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Numeric inputs show an empty box rather than 0.
func blankZero(v float64) string {
	if v == 0 {
		return ""
	}
	return FormatNumber(v)
}
