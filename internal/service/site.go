package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/redis"
	"github.com/brookfield-academy/site-server-go/internal/repository"
)

type ReadCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type SubmitInquiryInput struct {
	ParentName  string  `json:"parentName" validate:"required,max=200"`
	StudentName string  `json:"studentName" validate:"required,max=200"`
	Email       string  `json:"email" validate:"required,email,max=320"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Grade       string  `json:"grade" validate:"required,max=50"`
	Message     *string `json:"message" validate:"omitempty,max=5000"`
}

// SiteService serves the public website. Reads go through the cache when
// one is configured; a cache failure falls back to the database.
type SiteService struct {
	inquiryRepo repository.InquiryRepository
	galleryRepo repository.GalleryRepository
	contentRepo repository.ContentRepository
	cache       ReadCache
}

func NewSiteService(
	inquiryRepo repository.InquiryRepository,
	galleryRepo repository.GalleryRepository,
	contentRepo repository.ContentRepository,
	cache ReadCache,
) *SiteService {
	return &SiteService{
		inquiryRepo: inquiryRepo,
		galleryRepo: galleryRepo,
		contentRepo: contentRepo,
		cache:       cache,
	}
}

func (s *SiteService) ListGallery(ctx context.Context) ([]model.GalleryItem, error) {
	var items []model.GalleryItem
	if s.cacheGet(ctx, redis.GalleryKey(), &items) {
		return items, nil
	}

	items, err := s.galleryRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.cacheSet(ctx, redis.GalleryKey(), items)
	return items, nil
}

func (s *SiteService) GetContent(ctx context.Context, section string) (*model.SiteContent, error) {
	sec := model.ContentSection(section)
	if !sec.IsValid() {
		return nil, apperrors.NotFound("Section")
	}

	var content model.SiteContent
	if s.cacheGet(ctx, redis.ContentKey(section), &content) {
		return &content, nil
	}

	found, err := s.contentRepo.FindBySection(ctx, sec)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if found == nil {
		return nil, apperrors.NotFound("Section")
	}

	s.cacheSet(ctx, redis.ContentKey(section), found)
	return found, nil
}

// SubmitInquiry stores a new admission inquiry in the pending state.
func (s *SiteService) SubmitInquiry(ctx context.Context, in SubmitInquiryInput) (*model.Inquiry, error) {
	in.ParentName = strings.TrimSpace(in.ParentName)
	in.StudentName = strings.TrimSpace(in.StudentName)
	in.Email = strings.TrimSpace(in.Email)
	in.Grade = strings.TrimSpace(in.Grade)

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	inquiry, err := s.inquiryRepo.Create(ctx, model.CreateInquiryParams{
		ParentName:  in.ParentName,
		StudentName: in.StudentName,
		Email:       in.Email,
		Phone:       in.Phone,
		Grade:       in.Grade,
		Message:     in.Message,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Ctx(ctx).Info().Str("inquiry_id", inquiry.ID).Msg("admission inquiry submitted")
	return inquiry, nil
}

func (s *SiteService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("content cache read failed")
		return false
	}
	return hit
}

func (s *SiteService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("content cache write failed")
	}
}
