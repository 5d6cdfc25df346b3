package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/lib/pq"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/oops"
)

const postColumns = `id, title, excerpt, content, content_markdown, status, publish_date,
	author_name, author_email, category, tags, featured_image, created_at, updated_at`

// Postgres implements Repository on a PostgreSQL posts table
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with lib/pq and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, oops.With("context", "failed to open postgres").Wrap(err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, oops.With("context", "failed to ping postgres").Wrap(err)
	}
	return db, nil
}

// NewPostgres creates a post repository backed by db
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Ensure creates the posts table when it does not exist.
func (r *Postgres) Ensure(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    content_markdown TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'draft',
    publish_date TIMESTAMPTZ,
    author_name TEXT NOT NULL DEFAULT '',
    author_email TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    tags TEXT[] NOT NULL DEFAULT '{}',
    featured_image TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS posts_status_publish_date_idx ON posts (status, publish_date DESC);
`)
	if err != nil {
		return oops.With("context", "failed to create posts table").Wrap(err)
	}
	return nil
}

func (r *Postgres) SavePost(ctx context.Context, post *domain.Post) error {
	if err := prepare(post, time.Now()); err != nil {
		return err
	}

	var authorName, authorEmail string
	if post.Author != nil {
		authorName, authorEmail = post.Author.Name, post.Author.Email
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (`+postColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    excerpt = EXCLUDED.excerpt,
    content = EXCLUDED.content,
    content_markdown = EXCLUDED.content_markdown,
    status = EXCLUDED.status,
    publish_date = EXCLUDED.publish_date,
    author_name = EXCLUDED.author_name,
    author_email = EXCLUDED.author_email,
    category = EXCLUDED.category,
    tags = EXCLUDED.tags,
    featured_image = EXCLUDED.featured_image,
    updated_at = EXCLUDED.updated_at`,
		post.ID, post.Title, post.Excerpt, post.Content, post.ContentMarkdown, string(post.Status),
		nullTime(post.PublishDate), authorName, authorEmail, post.Category, pq.Array(post.Tags),
		post.FeaturedImage, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return oops.With("post_id", post.ID, "context", "failed to upsert post").Wrap(err)
	}
	return nil
}

func (r *Postgres) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, postID)
	post, err := scanPost(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, oops.With("post_id", postID).Wrap(errors.ErrPostNotFound)
		}
		return nil, oops.With("post_id", postID, "context", "failed to read post").Wrap(err)
	}
	return post, nil
}

func (r *Postgres) GetAllPosts(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY publish_date DESC NULLS LAST, created_at DESC`)
	if err != nil {
		return nil, oops.With("context", "failed to query posts").Wrap(err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, oops.With("context", "failed to scan post").Wrap(err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("context", "failed to iterate posts").Wrap(err)
	}
	return posts, nil
}

func (r *Postgres) DeletePost(ctx context.Context, postID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return oops.With("post_id", postID, "context", "failed to delete post").Wrap(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return oops.With("post_id", postID, "context", "failed to read affected rows").Wrap(err)
	}
	if affected == 0 {
		return oops.With("post_id", postID).Wrap(errors.ErrPostNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*domain.Post, error) {
	var (
		post        domain.Post
		status      string
		publishDate sql.NullTime
		authorName  string
		authorEmail string
	)
	if err := s.Scan(
		&post.ID, &post.Title, &post.Excerpt, &post.Content, &post.ContentMarkdown, &status,
		&publishDate, &authorName, &authorEmail, &post.Category, pq.Array(&post.Tags),
		&post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	post.Status = domain.PostStatus(status)
	if publishDate.Valid {
		post.PublishDate = publishDate.Time
	}
	if authorName != "" || authorEmail != "" {
		post.Author = &domain.Author{Name: authorName, Email: authorEmail}
	}
	return &post, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// Close releases the connection pool
func (r *Postgres) Close() error {
	return r.db.Close()
}
