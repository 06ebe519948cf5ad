package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/brookfield-academy/site-server-go/internal/audit"
	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/redis"
	"github.com/brookfield-academy/site-server-go/internal/repository"
	"github.com/brookfield-academy/site-server-go/internal/storage"
	"github.com/brookfield-academy/site-server-go/internal/util"
)

// Data actions accepted by the admin data endpoint.
const (
	ActionGetInquiries        = "get-inquiries"
	ActionUpdateInquiryStatus = "update-inquiry-status"
	ActionDeleteInquiry       = "delete-inquiry"
	ActionCreateGalleryItem   = "create-gallery-item"
	ActionUpdateGalleryItem   = "update-gallery-item"
	ActionDeleteGalleryItem   = "delete-gallery-item"
	ActionUpdateContent       = "update-content"
	ActionCreateUploadURL     = "create-upload-url"
)

type UploadURLSigner interface {
	SignUpload(ctx context.Context, contentType string) (*model.UploadHandle, error)
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// DataRequest is one privileged call. Data holds the action's payload and is
// only decoded after the session has been validated.
type DataRequest struct {
	Action       string
	SessionToken string
	Data         json.RawMessage
	Client       model.ClientInfo
}

type UpdateInquiryStatusInput struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

type IDInput struct {
	ID string `json:"id" validate:"required"`
}

type CreateGalleryItemInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    string  `json:"imageUrl" validate:"required,url,max=2048"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,min=0"`
}

type UpdateGalleryItemInput struct {
	ID          string  `json:"id" validate:"required"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url,max=2048"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,min=0"`
}

type UpdateContentInput struct {
	Section string          `json:"section" validate:"required"`
	Content json.RawMessage `json:"content" validate:"required"`
}

type CreateUploadURLInput struct {
	FileName    string `json:"fileName" validate:"omitempty,max=200"`
	ContentType string `json:"contentType" validate:"required"`
}

type dataOp func(ctx context.Context, p *Principal, req DataRequest) (any, error)

// AdminDataService executes the closed set of privileged record operations.
// Every call passes the session gate before its payload is even decoded.
type AdminDataService struct {
	gate        SessionValidator
	inquiryRepo repository.InquiryRepository
	galleryRepo repository.GalleryRepository
	contentRepo repository.ContentRepository
	uploads     UploadURLSigner
	cache       CacheInvalidator
	ops         map[string]dataOp
}

// NewAdminDataService wires the data operations. uploads and cache may be nil:
// without a signer create-upload-url reports the service as unavailable.
func NewAdminDataService(
	gate SessionValidator,
	inquiryRepo repository.InquiryRepository,
	galleryRepo repository.GalleryRepository,
	contentRepo repository.ContentRepository,
	uploads UploadURLSigner,
	cache CacheInvalidator,
) *AdminDataService {
	s := &AdminDataService{
		gate:        gate,
		inquiryRepo: inquiryRepo,
		galleryRepo: galleryRepo,
		contentRepo: contentRepo,
		uploads:     uploads,
		cache:       cache,
	}
	s.ops = map[string]dataOp{
		ActionGetInquiries:        s.getInquiries,
		ActionUpdateInquiryStatus: s.updateInquiryStatus,
		ActionDeleteInquiry:       s.deleteInquiry,
		ActionCreateGalleryItem:   s.createGalleryItem,
		ActionUpdateGalleryItem:   s.updateGalleryItem,
		ActionDeleteGalleryItem:   s.deleteGalleryItem,
		ActionUpdateContent:       s.updateContent,
		ActionCreateUploadURL:     s.createUploadURL,
	}
	return s
}

// Authorize requires a token and validates it with the gate.
func (s *AdminDataService) Authorize(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.AuthRequired()
	}
	return s.gate.Validate(ctx, token)
}

// Execute authorizes req and runs its action. A nil result with a nil error
// means the action succeeded without returning data.
func (s *AdminDataService) Execute(ctx context.Context, req DataRequest) (result any, err error) {
	principal, err := s.Authorize(ctx, req.SessionToken)
	if err != nil {
		if !apperrors.IsInternal(err) {
			audit.Log(ctx, audit.Event{
				Type:      audit.EventAuthFailure,
				IP:        req.Client.IP,
				UserAgent: req.Client.UserAgent,
				Details:   map[string]interface{}{"action": req.Action},
			})
		}
		return nil, err
	}

	op, ok := s.ops[req.Action]
	if !ok {
		return nil, apperrors.InvalidAction()
	}

	defer func() { dataOperations.WithLabelValues(req.Action, outcome(err)).Inc() }()

	return op(ctx, principal, req)
}

func (s *AdminDataService) getInquiries(ctx context.Context, _ *Principal, _ DataRequest) (any, error) {
	inquiries, err := s.inquiryRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return inquiries, nil
}

func (s *AdminDataService) updateInquiryStatus(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	var in UpdateInquiryStatusInput
	if err := decodePayload(req.Data, &in); err != nil {
		return nil, err
	}

	status := model.InquiryStatus(in.Status)
	if !status.IsValid() {
		return nil, apperrors.InvalidStatus()
	}
	if !util.IsValidUUID(in.ID) {
		return nil, apperrors.InvalidInput("id", "must be a UUID")
	}

	ok, err := s.inquiryRepo.UpdateStatus(ctx, in.ID, status)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if !ok {
		return nil, apperrors.NotFound("Inquiry")
	}

	s.audit(ctx, audit.EventInquiryUpdate, p, req, in.ID, map[string]interface{}{"status": in.Status})
	return nil, nil
}

func (s *AdminDataService) deleteInquiry(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	id, err := decodeID(req.Data)
	if err != nil {
		return nil, err
	}

	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return nil, apperrors.Database(err)
	}

	s.audit(ctx, audit.EventInquiryDelete, p, req, id, nil)
	return nil, nil
}

func (s *AdminDataService) createGalleryItem(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	var in CreateGalleryItemInput
	if err := decodePayload(req.Data, &in); err != nil {
		return nil, err
	}

	params := model.CreateGalleryItemParams{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
	}
	if in.SortOrder != nil {
		params.SortOrder = *in.SortOrder
	}

	item, err := s.galleryRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.invalidate(ctx, redis.GalleryKey())
	s.audit(ctx, audit.EventGalleryCreate, p, req, item.ID, nil)
	return item, nil
}

func (s *AdminDataService) updateGalleryItem(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	var in UpdateGalleryItemInput
	if err := decodePayload(req.Data, &in); err != nil {
		return nil, err
	}
	if !util.IsValidUUID(in.ID) {
		return nil, apperrors.InvalidInput("id", "must be a UUID")
	}

	params := model.UpdateGalleryItemParams{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		SortOrder:   in.SortOrder,
	}
	if params.IsEmpty() {
		return nil, apperrors.ValidationError("No fields to update")
	}

	item, err := s.galleryRepo.Update(ctx, in.ID, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Gallery item")
	}

	s.invalidate(ctx, redis.GalleryKey())
	s.audit(ctx, audit.EventGalleryUpdate, p, req, item.ID, nil)
	return item, nil
}

func (s *AdminDataService) deleteGalleryItem(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	id, err := decodeID(req.Data)
	if err != nil {
		return nil, err
	}

	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return nil, apperrors.Database(err)
	}

	s.invalidate(ctx, redis.GalleryKey())
	s.audit(ctx, audit.EventGalleryDelete, p, req, id, nil)
	return nil, nil
}

func (s *AdminDataService) updateContent(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	var in UpdateContentInput
	if err := decodePayload(req.Data, &in); err != nil {
		return nil, err
	}

	section := model.ContentSection(in.Section)
	if !section.IsValid() {
		return nil, apperrors.InvalidInput("section", "unknown section")
	}
	if !isJSONObject(in.Content) {
		return nil, apperrors.InvalidInput("content", "must be a JSON object")
	}

	content, err := s.contentRepo.Upsert(ctx, section, in.Content)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.invalidate(ctx, redis.ContentKey(in.Section))
	s.audit(ctx, audit.EventContentUpdate, p, req, in.Section, nil)
	return content, nil
}

func (s *AdminDataService) createUploadURL(ctx context.Context, p *Principal, req DataRequest) (any, error) {
	var in CreateUploadURLInput
	if err := decodePayload(req.Data, &in); err != nil {
		return nil, err
	}
	if _, ok := storage.ExtensionForContentType(in.ContentType); !ok {
		return nil, apperrors.InvalidInput("contentType", "must be a JPEG, PNG, WebP or GIF image")
	}
	if s.uploads == nil {
		return nil, apperrors.Unavailable("Image uploads are not configured")
	}

	handle, err := s.uploads.SignUpload(ctx, in.ContentType)
	if err != nil {
		return nil, apperrors.Internal("failed to sign upload").WithCause(err)
	}

	s.audit(ctx, audit.EventUploadIssued, p, req, handle.ObjectKey, map[string]interface{}{
		"file_name":    in.FileName,
		"content_type": in.ContentType,
	})
	return handle, nil
}

func decodeID(data json.RawMessage) (string, error) {
	var in IDInput
	if err := decodePayload(data, &in); err != nil {
		return "", err
	}
	if !util.IsValidUUID(in.ID) {
		return "", apperrors.InvalidInput("id", "must be a UUID")
	}
	return in.ID, nil
}

// invalidate drops cached public reads. Failures only leave stale data
// behind until the TTL runs out.
func (s *AdminDataService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		log.Ctx(ctx).Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate content cache")
	}
}

func (s *AdminDataService) audit(ctx context.Context, t audit.EventType, p *Principal, req DataRequest, targetID string, details map[string]interface{}) {
	audit.Log(ctx, audit.Event{
		Type:      t,
		AdminID:   p.AdminID,
		TargetID:  targetID,
		IP:        req.Client.IP,
		UserAgent: req.Client.UserAgent,
		Details:   details,
	})
}
