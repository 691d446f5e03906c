// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/clearcut-app/content-api/internal/model"
)

// PostRow is a post joined with its translation in a single language,
// plus author display fields. It is the unit the delivery layer works with.
type PostRow struct {
	ID              int64
	Slug            string
	FeaturedImage   sql.NullString
	AuthorID        int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PublishedAt     sql.NullTime
	LanguageCode    string
	Title           string
	Content         string
	Format          string
	MetaTitle       string
	MetaDescription string
	AuthorName      string
	AuthorAvatar    string
}

const postRowColumns = `
	p.id, p.slug, p.featured_image, p.author_id, p.status,
	p.created_at, p.updated_at, p.published_at,
	t.language_code, t.title, t.content, t.format, t.meta_title, t.meta_description,
	a.name, a.avatar
`

func scanPostRow(s interface{ Scan(...any) error }) (PostRow, error) {
	var r PostRow
	err := s.Scan(
		&r.ID, &r.Slug, &r.FeaturedImage, &r.AuthorID, &r.Status,
		&r.CreatedAt, &r.UpdatedAt, &r.PublishedAt,
		&r.LanguageCode, &r.Title, &r.Content, &r.Format, &r.MetaTitle, &r.MetaDescription,
		&r.AuthorName, &r.AuthorAvatar,
	)
	return r, err
}

// ListPublishedPostsParams filters the published post listing.
// LanguageCode is required; TagSlug and Search are optional.
type ListPublishedPostsParams struct {
	LanguageCode string
	TagSlug      string
	Search       string
	Limit        int64
	Offset       int64
}

// listFilter builds the shared WHERE clause and args for list/count queries.
func listFilter(p ListPublishedPostsParams) (string, []any) {
	var sb strings.Builder
	args := []any{p.LanguageCode}

	sb.WriteString(` FROM posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language_code = ?
		JOIN authors a ON a.id = p.author_id
		WHERE p.status = 'published'`)

	if p.TagSlug != "" {
		sb.WriteString(` AND p.id IN (
			SELECT pt.post_id FROM post_tags pt
			JOIN tags tg ON tg.id = pt.tag_id
			WHERE tg.slug = ?)`)
		args = append(args, p.TagSlug)
	}
	if p.Search != "" {
		sb.WriteString(` AND (LOWER(t.title) LIKE '%' || LOWER(?) || '%'
			OR LOWER(t.content) LIKE '%' || LOWER(?) || '%')`)
		args = append(args, p.Search, p.Search)
	}

	return sb.String(), args
}

// ListPublishedPosts returns one page of published posts in the given
// language, ordered by published_at DESC, id DESC.
func (q *Queries) ListPublishedPosts(ctx context.Context, p ListPublishedPostsParams) ([]PostRow, error) {
	where, args := listFilter(p)
	query := "SELECT " + postRowColumns + where +
		" ORDER BY p.published_at DESC, p.id DESC LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PostRow
	for rows.Next() {
		r, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// CountPublishedPosts returns the total number of posts matching the filter,
// before pagination is applied.
func (q *Queries) CountPublishedPosts(ctx context.Context, p ListPublishedPostsParams) (int64, error) {
	where, args := listFilter(p)
	var total int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*)"+where, args...).Scan(&total)
	return total, err
}

// GetPublishedPostBySlug returns a published post with its translation in
// the given language. Returns sql.ErrNoRows when either is absent.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug, languageCode string) (PostRow, error) {
	query := "SELECT " + postRowColumns + ` FROM posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language_code = ?
		JOIN authors a ON a.id = p.author_id
		WHERE p.status = 'published' AND p.slug = ?`
	return scanPostRow(q.db.QueryRowContext(ctx, query, languageCode, slug))
}

// GetPostByID returns a post regardless of status.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	var p model.Post
	err := q.db.QueryRowContext(ctx, `SELECT id, slug, featured_image, author_id, status,
		created_at, updated_at, published_at FROM posts WHERE id = ?`, id).
		Scan(&p.ID, &p.Slug, &p.FeaturedImage, &p.AuthorID, &p.Status,
			&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt)
	return p, err
}

// GetTagsForPost returns the tags attached to a post.
func (q *Queries) GetTagsForPost(ctx context.Context, postID int64) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT tg.id, tg.name, tg.slug
		FROM tags tg JOIN post_tags pt ON pt.tag_id = tg.id
		WHERE pt.post_id = ? ORDER BY tg.name`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetRelatedPostsParams selects related posts for a target post.
type GetRelatedPostsParams struct {
	PostID       int64
	LanguageCode string
	Limit        int64
}

// GetRelatedPosts returns published posts sharing at least one tag with the
// target, in the same language, excluding the target itself.
func (q *Queries) GetRelatedPosts(ctx context.Context, p GetRelatedPostsParams) ([]PostRow, error) {
	query := "SELECT DISTINCT " + postRowColumns + ` FROM posts p
		JOIN post_translations t ON t.post_id = p.id AND t.language_code = ?
		JOIN authors a ON a.id = p.author_id
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'published' AND p.id != ?
		AND pt.tag_id IN (SELECT tag_id FROM post_tags WHERE post_id = ?)
		ORDER BY p.published_at DESC, p.id DESC LIMIT ?`

	rows, err := q.db.QueryContext(ctx, query, p.LanguageCode, p.PostID, p.PostID, p.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PostRow
	for rows.Next() {
		r, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ListTagsWithCount returns all tags with their published post counts.
func (q *Queries) ListTagsWithCount(ctx context.Context) ([]model.TagWithCount, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT tg.id, tg.name, tg.slug,
		COUNT(CASE WHEN p.status = 'published' THEN pt.post_id END)
		FROM tags tg
		LEFT JOIN post_tags pt ON pt.tag_id = tg.id
		LEFT JOIN posts p ON p.id = pt.post_id
		GROUP BY tg.id, tg.name, tg.slug
		ORDER BY tg.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.TagWithCount
	for rows.Next() {
		var t model.TagWithCount
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Count); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func scanLanguage(s interface{ Scan(...any) error }) (model.Language, error) {
	var l model.Language
	err := s.Scan(&l.ID, &l.Code, &l.Name, &l.IsDefault, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// ListActiveLanguages returns the active language catalog, default first.
func (q *Queries) ListActiveLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, code, name, is_default, is_active,
		created_at, updated_at FROM languages WHERE is_active = 1
		ORDER BY is_default DESC, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []model.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// GetDefaultLanguage returns the catalog's default language.
func (q *Queries) GetDefaultLanguage(ctx context.Context) (model.Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx, `SELECT id, code, name, is_default,
		is_active, created_at, updated_at FROM languages WHERE is_default = 1`))
}

// GetTranslation returns the translation of a post in a single language.
func (q *Queries) GetTranslation(ctx context.Context, postID int64, languageCode string) (model.Translation, error) {
	var t model.Translation
	err := q.db.QueryRowContext(ctx, `SELECT post_id, language_code, title, content, format,
		meta_title, meta_description, created_at, updated_at
		FROM post_translations WHERE post_id = ? AND language_code = ?`, postID, languageCode).
		Scan(&t.PostID, &t.LanguageCode, &t.Title, &t.Content, &t.Format,
			&t.MetaTitle, &t.MetaDescription, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTranslationLanguages returns the language codes for which a
// translation of the post exists.
func (q *Queries) ListTranslationLanguages(ctx context.Context, postID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT language_code FROM post_translations WHERE post_id = ? ORDER BY language_code`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// UpsertTranslationParams creates or replaces a post translation. The write
// is atomic: a translation is either fully present or fully absent.
type UpsertTranslationParams struct {
	PostID          int64
	LanguageCode    string
	Title           string
	Content         string
	Format          string
	MetaTitle       string
	MetaDescription string
	UpdatedAt       time.Time
}

// UpsertTranslation inserts or fully replaces a translation row.
func (q *Queries) UpsertTranslation(ctx context.Context, p UpsertTranslationParams) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO post_translations
		(post_id, language_code, title, content, format, meta_title, meta_description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(post_id, language_code) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			format = excluded.format,
			meta_title = excluded.meta_title,
			meta_description = excluded.meta_description,
			updated_at = excluded.updated_at`,
		p.PostID, p.LanguageCode, p.Title, p.Content, p.Format,
		p.MetaTitle, p.MetaDescription, p.UpdatedAt, p.UpdatedAt)
	return err
}

// CreateEventParams records an audit event.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts an audit event row.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.Level, p.Category, p.Message, p.Metadata, p.CreatedAt)
	return err
}

// CountPosts returns the total number of posts of any status.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}
