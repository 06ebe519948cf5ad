package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/brookfield-academy/site-server-go/internal/model"
)

type InquiryRepository interface {
	FindAll(ctx context.Context) ([]model.Inquiry, error)
	FindByID(ctx context.Context, id string) (*model.Inquiry, error)
	Create(ctx context.Context, params model.CreateInquiryParams) (*model.Inquiry, error)
	// UpdateStatus reports false when no inquiry has the given id.
	UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

type inquiryRepo struct {
	db *sqlx.DB
}

func NewInquiryRepository(db *sqlx.DB) InquiryRepository {
	return &inquiryRepo{db: db}
}

func (r *inquiryRepo) FindAll(ctx context.Context) ([]model.Inquiry, error) {
	inquiries := []model.Inquiry{}
	err := r.db.SelectContext(ctx, &inquiries, `
		SELECT * FROM admission_inquiries
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepo) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := r.db.GetContext(ctx, &inquiry, `SELECT * FROM admission_inquiries WHERE id = $1`, id)
	return HandleNotFound(&inquiry, err)
}

func (r *inquiryRepo) Create(ctx context.Context, params model.CreateInquiryParams) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := r.db.GetContext(ctx, &inquiry, `
		INSERT INTO admission_inquiries (parent_name, student_name, email, phone, grade, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.ParentName, params.StudentName, params.Email, params.Phone, params.Grade, params.Message)
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepo) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admission_inquiries SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1
	`, id, status)
	return rowsChanged(result, err)
}

func (r *inquiryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admission_inquiries WHERE id = $1`, id)
	return err
}
