package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
)

type fakeCatalogStore struct {
	langs []model.Language
	calls int
	err   error
}

func (s *fakeCatalogStore) ListActiveLanguages(context.Context) ([]model.Language, error) {
	s.calls++
	return s.langs, s.err
}

func (s *fakeCatalogStore) GetDefaultLanguage(context.Context) (model.Language, error) {
	s.calls++
	if s.err != nil {
		return model.Language{}, s.err
	}
	for _, l := range s.langs {
		if l.IsDefault {
			return l, nil
		}
	}
	return model.Language{}, errors.New("no default language")
}

func catalogLangs() []model.Language {
	return []model.Language{
		{ID: 1, Code: "en", Name: "English", IsDefault: true, IsActive: true},
		{ID: 2, Code: "es", Name: "Spanish", IsActive: true},
	}
}

func TestLanguageCacheActiveHitsStoreOnce(t *testing.T) {
	mem := NewMemoryCache(time.Minute)
	defer mem.Close()
	store := &fakeCatalogStore{langs: catalogLangs()}
	lc := NewLanguageCache(mem, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		langs, err := lc.Active(ctx)
		if err != nil {
			t.Fatalf("Active (call %d): %v", i, err)
		}
		if len(langs) != 2 || langs[0].Code != "en" {
			t.Fatalf("Active (call %d) = %+v", i, langs)
		}
	}

	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1 (later reads served from cache)", store.calls)
	}
}

func TestLanguageCacheDefault(t *testing.T) {
	mem := NewMemoryCache(time.Minute)
	defer mem.Close()
	store := &fakeCatalogStore{langs: catalogLangs()}
	lc := NewLanguageCache(mem, store)
	ctx := context.Background()

	lang, err := lc.Default(ctx)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if lang.Code != "en" || !lang.IsDefault {
		t.Errorf("Default = %+v, want en default", lang)
	}

	if _, err := lc.Default(ctx); err != nil {
		t.Fatalf("Default (cached): %v", err)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}
}

func TestLanguageCachePropagatesStoreError(t *testing.T) {
	mem := NewMemoryCache(time.Minute)
	defer mem.Close()
	store := &fakeCatalogStore{err: errors.New("database locked")}
	lc := NewLanguageCache(mem, store)

	if _, err := lc.Active(context.Background()); err == nil {
		t.Error("Active: expected store error, got nil")
	}
	if _, err := lc.Default(context.Background()); err == nil {
		t.Error("Default: expected store error, got nil")
	}
}

func TestLanguageCacheReloadsAfterExpiry(t *testing.T) {
	mem := NewMemoryCache(time.Minute)
	defer mem.Close()
	store := &fakeCatalogStore{langs: catalogLangs()}
	lc := NewLanguageCache(mem, store)
	ctx := context.Background()

	if _, err := lc.Active(ctx); err != nil {
		t.Fatalf("Active: %v", err)
	}
	// Simulate TTL expiry by dropping the entry from the backend.
	if err := mem.Delete(ctx, "languages:active"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := lc.Active(ctx); err != nil {
		t.Fatalf("Active after expiry: %v", err)
	}

	if store.calls != 2 {
		t.Errorf("store calls = %d, want 2 (reload after expiry)", store.calls)
	}
}

func TestLanguageCacheRecoversFromCorruptEntry(t *testing.T) {
	mem := NewMemoryCache(time.Minute)
	defer mem.Close()
	store := &fakeCatalogStore{langs: catalogLangs()}
	lc := NewLanguageCache(mem, store)
	ctx := context.Background()

	if err := mem.Set(ctx, "languages:active", []byte("{not json"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	langs, err := lc.Active(ctx)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(langs) != 2 {
		t.Errorf("Active = %+v, want catalog from store", langs)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}
}
