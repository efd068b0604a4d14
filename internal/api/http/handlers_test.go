package http

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/gpa-form/internal/gpa"
	"github.com/mind-engage/gpa-form/internal/session"
	"github.com/mind-engage/gpa-form/internal/view"
)

type harness struct {
	srv    *httptest.Server
	client *http.Client
	store  *session.Store
}

func newHarness(t *testing.T, secret string) *harness {
	t.Helper()
	renderer, err := view.New(view.Brand{Name: "Celestius", URL: "https://cit-celestius.vercel.app/"})
	require.NoError(t, err)

	store := session.NewStore(time.Hour)
	router := NewRouter(RouterOptions{
		Logger:      zerolog.Nop(),
		Sessions:    Sessions{Store: store, Tokens: session.NewTokens(secret, time.Hour)},
		Renderer:    renderer,
		EnableAPI:   true,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{srv: srv, client: &http.Client{Jar: jar}, store: store}
}

func (h *harness) page(t *testing.T) *goquery.Document {
	t.Helper()
	resp, err := h.client.Get(h.srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func (h *harness) submit(t *testing.T, form url.Values) *goquery.Document {
	t.Helper()
	resp, err := h.client.PostForm(h.srv.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/", resp.Request.URL.Path)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestFormFirstVisit(t *testing.T) {
	h := newHarness(t, "secret")
	doc := h.page(t)

	assert.Equal(t, 1, doc.Find("div.row").Length())
	assert.Equal(t, 0, doc.Find("#results").Length())

	u, _ := url.Parse(h.srv.URL)
	cookies := h.client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, 1, h.store.Len())

	// same browser, same session
	h.page(t)
	assert.Equal(t, 1, h.store.Len())
}

func TestFormCalculateFlow(t *testing.T) {
	h := newHarness(t, "secret")
	h.page(t)

	doc := h.submit(t, url.Values{
		"name-0": {"Maths"}, "credits-0": {"4"}, "grade-0": {"O"},
		"previous": {""},
		"action":   {"add"},
	})
	require.Equal(t, 2, doc.Find("div.row").Length())
	name, _ := doc.Find(`input[name="name-0"]`).Attr("value")
	assert.Equal(t, "Maths", name)
	assert.Equal(t, 0, doc.Find("#results").Length())

	doc = h.submit(t, url.Values{
		"name-0": {"Maths"}, "credits-0": {"4"}, "grade-0": {"O"},
		"name-1": {"Chemistry"}, "credits-1": {"3"}, "grade-1": {"A"},
		"previous": {"8.5"},
		"action":   {"calculate"},
	})
	assert.Equal(t, "9.14", doc.Find("#results .sgpa").Text())
	assert.Equal(t, "8.82", doc.Find("#results .cgpa").Text())

	// results stay until the next calculate
	doc = h.submit(t, url.Values{"previous": {""}})
	assert.Equal(t, "8.82", doc.Find("#results .cgpa").Text())

	doc = h.submit(t, url.Values{"previous": {""}, "action": {"calculate"}})
	assert.Equal(t, "9.14", doc.Find("#results .cgpa").Text())
}

func TestFormRemove(t *testing.T) {
	h := newHarness(t, "secret")
	h.page(t)

	doc := h.submit(t, url.Values{"action": {"remove:0"}})
	assert.Equal(t, 1, doc.Find("div.row").Length())

	h.submit(t, url.Values{"name-0": {"first"}, "action": {"add"}})
	doc = h.submit(t, url.Values{"name-0": {"first"}, "name-1": {"second"}, "action": {"remove:0"}})
	require.Equal(t, 1, doc.Find("div.row").Length())
	name, _ := doc.Find(`input[name="name-0"]`).Attr("value")
	assert.Equal(t, "second", name)
	_, disabled := doc.Find("button.remove").Attr("disabled")
	assert.True(t, disabled)
}

func TestFormEnterKeyDoesNotRemove(t *testing.T) {
	h := newHarness(t, "secret")
	h.page(t)
	doc := h.submit(t, url.Values{"name-0": {"first"}, "action": {"add"}})
	require.Equal(t, 2, doc.Find("div.row").Length())

	// browsers submit with the first submit button when Enter is pressed
	first := doc.Find(`form button[type="submit"]`).First()
	assert.False(t, first.HasClass("remove"))
	value, _ := first.Attr("value")
	assert.Empty(t, value)
	_, disabled := first.Attr("disabled")
	assert.False(t, disabled)

	doc = h.submit(t, url.Values{"name-0": {"first"}, "name-1": {"second"}, "action": {value}})
	require.Equal(t, 2, doc.Find("div.row").Length())
	name, _ := doc.Find(`input[name="name-1"]`).Attr("value")
	assert.Equal(t, "second", name)
}

func TestFormIgnoresRowsTheSessionDoesNotHave(t *testing.T) {
	h := newHarness(t, "secret")
	h.page(t)

	doc := h.submit(t, url.Values{"name-7": {"ghost"}, "credits-7": {"3"}, "action": {"calculate"}})
	assert.Equal(t, 1, doc.Find("div.row").Length())
	assert.Equal(t, "0", doc.Find("#results .sgpa").Text())
}

func TestForgedCookieStartsFreshSession(t *testing.T) {
	h := newHarness(t, "secret")
	h.page(t)
	h.submit(t, url.Values{"action": {"add"}})

	forged, err := session.NewTokens("other", time.Hour).Issue("whatever")
	require.NoError(t, err)
	u, _ := url.Parse(h.srv.URL)
	h.client.Jar.SetCookies(u, []*http.Cookie{{Name: sessionCookie, Value: forged, Path: "/"}})

	doc := h.page(t)
	assert.Equal(t, 1, doc.Find("div.row").Length())
	assert.Equal(t, 2, h.store.Len())
}

func TestFormActions(t *testing.T) {
	form := url.Values{
		"name-0":    {"a"},
		"credits-1": {"2"},
		"grade-5":   {"O"},
		"previous":  {"7"},
		"action":    {"remove:1"},
	}
	got := formActions(form, 2)
	assert.Equal(t, []gpa.Action{
		gpa.UpdateSubject{Index: 0, Field: gpa.FieldName, Value: "a"},
		gpa.UpdateSubject{Index: 1, Field: gpa.FieldCredits, Value: "2"},
		gpa.SetPrevious{Value: "7"},
		gpa.RemoveSubject{Index: 1},
	}, got)

	assert.Nil(t, parseAction("remove:x"))
	assert.Nil(t, parseAction("explode"))
	assert.Equal(t, gpa.AddSubject{}, parseAction("add"))
	assert.Equal(t, gpa.Calculate{}, parseAction("calculate"))
}

func postJSON(t *testing.T, h *harness, body string) (*http.Response, calculateResp) {
	t.Helper()
	resp, err := h.client.Post(h.srv.URL+"/api/gpa", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out calculateResp
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestCalculateAPI(t *testing.T) {
	h := newHarness(t, "secret")

	tests := []struct {
		name string
		body string
		want calculateResp
	}{
		{"no previous", `{"subjects":[{"credits":4,"grade":"O"},{"credits":3,"grade":"A"}],"previous_cgpa":0}`,
			calculateResp{SGPA: 9.14, CGPA: 9.14, CountedCredits: 7}},
		{"with previous", `{"subjects":[{"credits":4,"grade":"O"},{"credits":3,"grade":"A"}],"previous_cgpa":8.5}`,
			calculateResp{SGPA: 9.14, CGPA: 8.82, CountedCredits: 7}},
		{"zero credits", `{"subjects":[{"credits":0,"grade":"O"}]}`, calculateResp{}},
		{"unknown grade", `{"subjects":[{"name":"x","credits":5,"grade":"XYZ"}]}`, calculateResp{}},
		{"huge credits", `{"subjects":[{"credits":1e308,"grade":"O"}]}`,
			calculateResp{SGPA: 10, CGPA: 10, CountedCredits: 1e308}},
		{"two huge rows", `{"subjects":[{"credits":1e308,"grade":"O"},{"credits":1e308,"grade":"O"}]}`,
			calculateResp{SGPA: 10, CGPA: 10, CountedCredits: math.MaxFloat64}},
		{"negative credits", `{"subjects":[{"credits":-4,"grade":"O"},{"credits":2,"grade":"A"}]}`,
			calculateResp{SGPA: 8, CGPA: 8, CountedCredits: 2}},
		{"negative previous", `{"subjects":[{"credits":2,"grade":"B"}],"previous_cgpa":-4}`,
			calculateResp{SGPA: 6, CGPA: 6, CountedCredits: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, got := postJSON(t, h, tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), calculateResp{SGPA: math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "encode")
}

func TestCalculateAPIBadJSON(t *testing.T) {
	h := newHarness(t, "secret")
	resp, _ := postJSON(t, h, `{"subjects":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGradeScaleAPI(t *testing.T) {
	h := newHarness(t, "secret")
	resp, err := h.client.Get(h.srv.URL + "/api/grades")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []gpa.GradePoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, gpa.Scale(), got)
}

func TestHealth(t *testing.T) {
	h := newHarness(t, "secret")
	for _, p := range []string{"/healthz", "/readyz"} {
		resp, err := h.client.Get(h.srv.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}
}
