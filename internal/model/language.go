// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Language represents a content language in the catalog. The catalog is
// closed: it is consumed by the delivery and translation layers but only
// mutated through seeding/admin tooling.
type Language struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"` // ISO 639-1: en, es, de, fr
	Name      string    `json:"name"` // English, Spanish, German, French
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LanguageRef is the compact language view embedded in blog responses.
type LanguageRef struct {
	Code      string `json:"code"`
	Name      string `json:"name,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// SeedLanguages is the default language catalog installed on first run.
var SeedLanguages = []struct {
	Code      string
	Name      string
	IsDefault bool
}{
	{"en", "English", true},
	{"es", "Spanish", false},
	{"fr", "French", false},
	{"de", "German", false},
	{"pt", "Portuguese", false},
	{"it", "Italian", false},
	{"nl", "Dutch", false},
	{"pl", "Polish", false},
	{"ja", "Japanese", false},
	{"ko", "Korean", false},
	{"zh", "Chinese", false},
	{"tr", "Turkish", false},
}
