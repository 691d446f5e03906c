package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/clearcut-app/content-api/internal/content"
	"github.com/clearcut-app/content-api/internal/model"
	"github.com/clearcut-app/content-api/internal/translate"
)

// fakeContent wraps the fallback dataset behind the real delivery service so
// handler tests exercise realistic payloads without a database.
func fakeContent() *content.Service {
	fallback := content.NewFallbackSource()
	return content.NewService(fallback, fallback, fakeCatalog{}, nil)
}

type fakeCatalog struct{}

func (fakeCatalog) Active(context.Context) ([]model.Language, error) {
	return []model.Language{
		{Code: "en", Name: "English", IsDefault: true, IsActive: true},
		{Code: "es", Name: "Spanish", IsActive: true},
	}, nil
}

type fakeTranslator struct {
	result *translate.Result
	err    error
	gotID  int64
	gotTar []string
}

func (f *fakeTranslator) Run(_ context.Context, postID int64, targets []string) (*translate.Result, error) {
	f.gotID = postID
	f.gotTar = targets
	return f.result, f.err
}

type fakeTags struct {
	tags []model.TagWithCount
	err  error
}

func (f fakeTags) ListTagsWithCount(context.Context) ([]model.TagWithCount, error) {
	return f.tags, f.err
}

func testRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/blog", h.ListPosts)
	r.Get("/blog/{slug}", h.GetPost)
	r.Get("/tags", h.ListTags)
	r.Post("/posts/{id}/auto-translate", h.AutoTranslate)
	return r
}

func newTestHandler(tr translator, tags tagLister) *Handler {
	if tags == nil {
		tags = fakeTags{}
	}
	return NewHandler(fakeContent(), tr, tags, Options{DefaultPageSize: 10, MaxPageSize: 50})
}

func TestListPostsEndpoint(t *testing.T) {
	h := newTestHandler(&fakeTranslator{}, nil)
	r := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/blog?language=en&page=2&limit=3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Posts      []map[string]any `json:"posts"`
		TotalPages int              `json:"total_pages"`
		Pagination struct {
			Total   int64 `json:"total"`
			Page    int   `json:"page"`
			PerPage int   `json:"per_page"`
			Pages   int   `json:"pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(resp.Posts) != 3 {
		t.Errorf("len(posts) = %d, want 3", len(resp.Posts))
	}
	if resp.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", resp.TotalPages)
	}
	if resp.Pagination.Total != 7 || resp.Pagination.Page != 2 ||
		resp.Pagination.PerPage != 3 || resp.Pagination.Pages != 3 {
		t.Errorf("pagination = %+v, want {7 2 3 3}", resp.Pagination)
	}
	// Listings carry excerpts, not full bodies
	if _, ok := resp.Posts[0]["content"]; ok {
		t.Error("list items should omit content")
	}
	if resp.Posts[0]["excerpt"] == "" {
		t.Error("list items should carry an excerpt")
	}
}

func TestListPostsEndpointDefaults(t *testing.T) {
	h := newTestHandler(&fakeTranslator{}, nil)
	r := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/blog?page=bogus&limit=-3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (bad params fall back to defaults)", rec.Code)
	}

	var resp struct {
		Pagination struct {
			Page    int `json:"page"`
			PerPage int `json:"per_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.PerPage != 10 {
		t.Errorf("pagination = %+v, want page 1, per_page 10", resp.Pagination)
	}
}

func TestGetPostEndpoint(t *testing.T) {
	h := newTestHandler(&fakeTranslator{}, nil)
	r := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/blog/remove-background-from-product-photos?language=en", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Post struct {
			Slug    string `json:"slug"`
			Content string `json:"content"`
		} `json:"post"`
		RelatedPosts       []map[string]any    `json:"related_posts"`
		AvailableLanguages []model.LanguageRef `json:"available_languages"`
		CurrentLanguage    string              `json:"current_language"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.Post.Slug != "remove-background-from-product-photos" {
		t.Errorf("slug = %q", resp.Post.Slug)
	}
	if resp.Post.Content == "" {
		t.Error("detail view should carry the full content")
	}
	if len(resp.RelatedPosts) != 2 {
		t.Errorf("len(related_posts) = %d, want 2", len(resp.RelatedPosts))
	}
	if resp.CurrentLanguage != "en" {
		t.Errorf("current_language = %q, want en", resp.CurrentLanguage)
	}
	if len(resp.AvailableLanguages) != 2 {
		t.Errorf("len(available_languages) = %d, want 2", len(resp.AvailableLanguages))
	}
}

func TestGetPostEndpointNotFound(t *testing.T) {
	h := newTestHandler(&fakeTranslator{}, nil)
	r := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/blog/no-such-post", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "Blog post not found" {
		t.Errorf("error = %q, want %q", resp["error"], "Blog post not found")
	}
}

func TestListTagsEndpoint(t *testing.T) {
	tags := fakeTags{tags: []model.TagWithCount{
		{Tag: model.Tag{ID: 1, Name: "tutorials", Slug: "tutorials"}, Count: 3},
		{Tag: model.Tag{ID: 2, Name: "design", Slug: "design"}, Count: 1},
	}}
	h := newTestHandler(&fakeTranslator{}, tags)
	r := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Tags []struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Slug  string `json:"slug"`
			Count int64  `json:"count"`
		} `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Tags) != 2 {
		t.Fatalf("len(tags) = %d, want 2", len(resp.Tags))
	}
	if resp.Tags[0].Count != 3 {
		t.Errorf("tags[0].count = %d, want 3", resp.Tags[0].Count)
	}
}

func TestListTagsEndpointDegrades(t *testing.T) {
	h := newTestHandler(&fakeTranslator{}, fakeTags{err: context.DeadlineExceeded})
	r := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (tag failures degrade to empty)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tags":[]`) {
		t.Errorf("body = %s, want empty tags array", rec.Body.String())
	}
}

func TestAutoTranslateEndpoint(t *testing.T) {
	tr := &fakeTranslator{result: &translate.Result{
		Status:     translate.StatusCompleted,
		Successful: []string{"es", "fr"},
		Failed:     []string{},
		Skipped:    []string{"de"},
		Languages:  []string{"de", "en", "es", "fr"},
	}}
	h := newTestHandler(tr, nil)
	r := testRouter(h)

	body := strings.NewReader(`{"target_languages": ["es", "fr", "de"]}`)
	req := httptest.NewRequest(http.MethodPost, "/posts/42/auto-translate", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if tr.gotID != 42 {
		t.Errorf("postID = %d, want 42", tr.gotID)
	}
	if len(tr.gotTar) != 3 {
		t.Errorf("targets = %v, want 3 languages", tr.gotTar)
	}

	var resp struct {
		Translations struct {
			Successful []string `json:"successful"`
			Failed     []string `json:"failed"`
			Skipped    []string `json:"skipped"`
		} `json:"translations"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Translations.Successful) != 2 {
		t.Errorf("successful = %v, want 2", resp.Translations.Successful)
	}
	if len(resp.Translations.Skipped) != 1 {
		t.Errorf("skipped = %v, want 1", resp.Translations.Skipped)
	}
	if resp.Status != translate.StatusCompleted {
		t.Errorf("status = %q, want completed", resp.Status)
	}
}

func TestAutoTranslateEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		runErr     error
		wantStatus int
	}{
		{
			name:       "invalid post id",
			path:       "/posts/abc/auto-translate",
			body:       `{"target_languages": ["es"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			path:       "/posts/1/auto-translate",
			body:       `{"target_languages": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			path:       "/posts/1/auto-translate",
			body:       `{"target_languages": []}`,
			runErr:     translate.ValidationError("target_languages must not be empty"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "run in progress",
			path:       "/posts/1/auto-translate",
			body:       `{"target_languages": ["es"]}`,
			runErr:     translate.ErrRunInProgress,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown post",
			path:       "/posts/999/auto-translate",
			body:       `{"target_languages": ["es"]}`,
			runErr:     content.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeTranslator{err: tt.runErr}, nil)
			r := testRouter(h)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
