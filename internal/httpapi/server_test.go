package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"proxyfaqs.dev/faqforge/internal/db"
)

type fakeQuestionReader struct {
	searchErr error
	detail    *db.QuestionDetail
	results   []db.QuestionSearchResult
	lastLimit int
}

func (f *fakeQuestionReader) SearchQuestions(_ context.Context, _ string, limit int) ([]db.QuestionSearchResult, error) {
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeQuestionReader) GetQuestionBySlug(_ context.Context, slug string) (*db.QuestionDetail, error) {
	if f.detail != nil && f.detail.Slug == slug {
		return f.detail, nil
	}
	return nil, db.ErrNoRows
}

func (f *fakeQuestionReader) CountQuestions(_ context.Context) (int64, error) {
	return int64(len(f.results)), nil
}

func doRequest(t *testing.T, store QuestionReader, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	server := NewServer(store, zerolog.Nop(), Options{})
	e := server.buildEcho()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, &fakeQuestionReader{}, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "success" {
		t.Fatalf("expected jsend success, got %v", body)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, &fakeQuestionReader{}, "/v1/search")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["status"] != "fail" {
		t.Fatalf("expected jsend fail, got %v", body)
	}
}

func TestSearch_ReturnsRankedResults(t *testing.T) {
	t.Parallel()

	store := &fakeQuestionReader{
		results: []db.QuestionSearchResult{
			{QuestionID: 1, Slug: "residential-proxy", Question: "What is a residential proxy?", Rank: 0.9},
		},
	}

	rec, body := doRequest(t, store, "/v1/search?q=residential+proxy")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %v", body)
	}
	if data["count"] != float64(1) {
		t.Fatalf("expected count=1, got %v", data["count"])
	}
	if store.lastLimit != defaultSearchLimit {
		t.Fatalf("expected default limit %d, got %d", defaultSearchLimit, store.lastLimit)
	}
}

func TestSearch_LimitValidationAndClamp(t *testing.T) {
	t.Parallel()

	rec, _ := doRequest(t, &fakeQuestionReader{}, "/v1/search?q=proxy&limit=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}

	rec, _ = doRequest(t, &fakeQuestionReader{}, "/v1/search?q=proxy&limit=0")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero limit, got %d", rec.Code)
	}

	store := &fakeQuestionReader{}
	rec, _ = doRequest(t, store, "/v1/search?q=proxy&limit=9999")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.lastLimit != maxSearchLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxSearchLimit, store.lastLimit)
	}
}

func TestSearch_StoreErrorIsInternal(t *testing.T) {
	t.Parallel()

	store := &fakeQuestionReader{searchErr: fmt.Errorf("connection refused")}
	rec, body := doRequest(t, store, "/v1/search?q=proxy")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["status"] != "error" {
		t.Fatalf("expected jsend error, got %v", body)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("internal error details must not leak to clients")
	}
}

func TestQuestion_FoundAndNotFound(t *testing.T) {
	t.Parallel()

	store := &fakeQuestionReader{
		detail: &db.QuestionDetail{Slug: "residential-proxy", Question: "What is a residential proxy?"},
	}

	rec, body := doRequest(t, store, "/v1/questions/residential-proxy")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["slug"] != "residential-proxy" {
		t.Fatalf("unexpected detail payload: %v", body)
	}

	rec, body = doRequest(t, store, "/v1/questions/unknown-slug")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["status"] != "fail" {
		t.Fatalf("expected jsend fail, got %v", body)
	}
}
