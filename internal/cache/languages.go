package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
)

const (
	languagesKey    = "languages:active"
	defaultLangKey  = "languages:default"
	languageCatalog = time.Hour
)

// catalogStore is the slice of the query layer the language cache needs.
type catalogStore interface {
	ListActiveLanguages(ctx context.Context) ([]model.Language, error)
	GetDefaultLanguage(ctx context.Context) (model.Language, error)
}

// LanguageCache provides cached access to the language catalog. The catalog
// is closed — mutated only by seeding — so entries simply live out their
// hour-long TTL.
type LanguageCache struct {
	cache Cache
	store catalogStore
}

// NewLanguageCache creates a language catalog cache over the given backend.
func NewLanguageCache(cache Cache, store catalogStore) *LanguageCache {
	return &LanguageCache{cache: cache, store: store}
}

// Active returns the active language catalog, default language first.
func (c *LanguageCache) Active(ctx context.Context) ([]model.Language, error) {
	if data, err := c.cache.Get(ctx, languagesKey); err == nil {
		var langs []model.Language
		if err := json.Unmarshal(data, &langs); err == nil {
			return langs, nil
		}
		// Corrupt entry; drop it and reload from the store.
		_ = c.cache.Delete(ctx, languagesKey)
	}

	langs, err := c.store.ListActiveLanguages(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(langs); err == nil {
		_ = c.cache.Set(ctx, languagesKey, data, languageCatalog)
	}
	return langs, nil
}

// Default returns the catalog's default language.
func (c *LanguageCache) Default(ctx context.Context) (model.Language, error) {
	if data, err := c.cache.Get(ctx, defaultLangKey); err == nil {
		var lang model.Language
		if err := json.Unmarshal(data, &lang); err == nil {
			return lang, nil
		}
		_ = c.cache.Delete(ctx, defaultLangKey)
	}

	lang, err := c.store.GetDefaultLanguage(ctx)
	if err != nil {
		return model.Language{}, err
	}
	if data, err := json.Marshal(lang); err == nil {
		_ = c.cache.Set(ctx, defaultLangKey, data, languageCatalog)
	}
	return lang, nil
}
