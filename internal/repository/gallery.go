package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/brookfield-academy/site-server-go/internal/model"
)

type GalleryRepository interface {
	FindAll(ctx context.Context) ([]model.GalleryItem, error)
	Create(ctx context.Context, params model.CreateGalleryItemParams) (*model.GalleryItem, error)
	// Update returns nil when no item has the given id.
	Update(ctx context.Context, id string, params model.UpdateGalleryItemParams) (*model.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type galleryRepo struct {
	db *sqlx.DB
}

func NewGalleryRepository(db *sqlx.DB) GalleryRepository {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) FindAll(ctx context.Context) ([]model.GalleryItem, error) {
	items := []model.GalleryItem{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM gallery_items
		ORDER BY sort_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *galleryRepo) Create(ctx context.Context, params model.CreateGalleryItemParams) (*model.GalleryItem, error) {
	var item model.GalleryItem
	err := r.db.GetContext(ctx, &item, `
		INSERT INTO gallery_items (title, description, image_url, category, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Title, params.Description, params.ImageURL, params.Category, params.SortOrder)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepo) Update(ctx context.Context, id string, params model.UpdateGalleryItemParams) (*model.GalleryItem, error) {
	var item model.GalleryItem
	err := r.db.GetContext(ctx, &item, `
		UPDATE gallery_items SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			image_url = COALESCE($4, image_url),
			category = COALESCE($5, category),
			sort_order = COALESCE($6, sort_order),
			updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Description, params.ImageURL, params.Category, params.SortOrder)
	return HandleNotFound(&item, err)
}

func (r *galleryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	return err
}
