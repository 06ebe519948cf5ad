package repository

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/brookfield-academy/site-server-go/internal/model"
)

type ContentRepository interface {
	FindAll(ctx context.Context) ([]model.SiteContent, error)
	FindBySection(ctx context.Context, section model.ContentSection) (*model.SiteContent, error)
	Upsert(ctx context.Context, section model.ContentSection, content json.RawMessage) (*model.SiteContent, error)
}

type contentRepo struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepo{db: db}
}

func (r *contentRepo) FindAll(ctx context.Context) ([]model.SiteContent, error) {
	contents := []model.SiteContent{}
	err := r.db.SelectContext(ctx, &contents, `SELECT * FROM site_content ORDER BY section`)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepo) FindBySection(ctx context.Context, section model.ContentSection) (*model.SiteContent, error) {
	var content model.SiteContent
	err := r.db.GetContext(ctx, &content, `SELECT * FROM site_content WHERE section = $1`, section)
	return HandleNotFound(&content, err)
}

func (r *contentRepo) Upsert(ctx context.Context, section model.ContentSection, content json.RawMessage) (*model.SiteContent, error) {
	var result model.SiteContent
	err := r.db.GetContext(ctx, &result, `
		INSERT INTO site_content (section, content, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (section) DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`, section, string(content))
	if err != nil {
		return nil, err
	}
	return &result, nil
}
