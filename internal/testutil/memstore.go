// Package testutil provides in-memory stand-ins for the Postgres
// repositories so services and handlers can be exercised without a database.
package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brookfield-academy/site-server-go/internal/database"
	"github.com/brookfield-academy/site-server-go/internal/model"
	"github.com/brookfield-academy/site-server-go/internal/repository"
)

type Store struct {
	mu          sync.Mutex
	credentials map[string]*model.AdminCredential
	sessions    map[string]*model.AdminSession
	inquiries   map[string]*model.Inquiry
	gallery     map[string]*model.GalleryItem
	content     map[model.ContentSection]*model.SiteContent

	// Now is the clock used for created_at and the expired-session sweep.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		credentials: make(map[string]*model.AdminCredential),
		sessions:    make(map[string]*model.AdminSession),
		inquiries:   make(map[string]*model.Inquiry),
		gallery:     make(map[string]*model.GalleryItem),
		content:     make(map[model.ContentSection]*model.SiteContent),
		Now:         time.Now,
	}
}

// WithTx runs fn without a real transaction; repositories ignore the tx.
func (s *Store) WithTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

func (s *Store) SeedAdmin(username, passwordHash string) model.AdminCredential {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	cred := &model.AdminCredential{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.credentials[cred.ID] = cred
	return *cred
}

func (s *Store) SeedSession(session model.AdminSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	s.sessions[session.TokenHash] = &session
}

func (s *Store) SeedInquiry(params model.CreateInquiryParams) model.Inquiry {
	inquiry, _ := s.Inquiries().Create(context.Background(), params)
	return *inquiry
}

func (s *Store) Credential(id string) (model.AdminCredential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.credentials[id]
	if !ok {
		return model.AdminCredential{}, false
	}
	return *cred, true
}

func (s *Store) Inquiry(id string) (model.Inquiry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inquiry, ok := s.inquiries[id]
	if !ok {
		return model.Inquiry{}, false
	}
	return *inquiry, true
}

func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) Credentials() repository.AdminCredentialRepository { return credentialRepo{s} }
func (s *Store) Sessions() repository.AdminSessionRepository       { return sessionRepo{s} }
func (s *Store) Inquiries() repository.InquiryRepository           { return inquiryRepo{s} }
func (s *Store) Gallery() repository.GalleryRepository             { return galleryRepo{s} }
func (s *Store) Content() repository.ContentRepository             { return contentRepo{s} }

type credentialRepo struct{ s *Store }

func (r credentialRepo) WithTx(*sqlx.Tx) repository.AdminCredentialRepository { return r }

func (r credentialRepo) FindPrimary(ctx context.Context) (*model.AdminCredential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var first *model.AdminCredential
	for _, c := range r.s.credentials {
		if first == nil || c.CreatedAt.Before(first.CreatedAt) {
			first = c
		}
	}
	if first == nil {
		return nil, nil
	}
	cp := *first
	return &cp, nil
}

func (r credentialRepo) FindByID(ctx context.Context, id string) (*model.AdminCredential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.credentials[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r credentialRepo) FindByUsername(ctx context.Context, username string) (*model.AdminCredential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.credentials {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r credentialRepo) InitializePasswordHash(ctx context.Context, id string, passwordHash string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.credentials[id]
	if !ok || !model.IsPlaceholderHash(c.PasswordHash) {
		return false, nil
	}
	c.PasswordHash = passwordHash
	c.UpdatedAt = r.s.Now()
	return true, nil
}

func (r credentialRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.credentials[id]; ok {
		c.PasswordHash = passwordHash
		c.UpdatedAt = r.s.Now()
	}
	return nil
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) WithTx(*sqlx.Tx) repository.AdminSessionRepository { return r }

func (r sessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[tokenHash]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r sessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session := &model.AdminSession{
		ID:        uuid.NewString(),
		TokenHash: params.TokenHash,
		AdminID:   params.AdminID,
		ClientIP:  params.ClientIP,
		UserAgent: params.UserAgent,
		ExpiresAt: params.ExpiresAt,
		CreatedAt: r.s.Now(),
	}
	r.s.sessions[session.TokenHash] = session
	cp := *session
	return &cp, nil
}

func (r sessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, tokenHash)
	return nil
}

func (r sessionRepo) DeleteOthersForAdmin(ctx context.Context, adminID string, keepSessionID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for hash, session := range r.s.sessions {
		if session.AdminID == adminID && session.ID != keepSessionID {
			delete(r.s.sessions, hash)
			n++
		}
	}
	return n, nil
}

func (r sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	var n int64
	for hash, session := range r.s.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.s.sessions, hash)
			n++
		}
	}
	return n, nil
}

type inquiryRepo struct{ s *Store }

func (r inquiryRepo) FindAll(ctx context.Context) ([]model.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Inquiry, 0, len(r.s.inquiries))
	for _, i := range r.s.inquiries {
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r inquiryRepo) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r inquiryRepo) Create(ctx context.Context, params model.CreateInquiryParams) (*model.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	i := &model.Inquiry{
		ID:          uuid.NewString(),
		ParentName:  params.ParentName,
		StudentName: params.StudentName,
		Email:       params.Email,
		Phone:       params.Phone,
		Grade:       params.Grade,
		Message:     params.Message,
		Status:      model.InquiryStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.inquiries[i.ID] = i
	cp := *i
	return &cp, nil
}

func (r inquiryRepo) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok {
		return false, nil
	}
	i.Status = status
	i.UpdatedAt = r.s.Now()
	return true, nil
}

func (r inquiryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.inquiries, id)
	return nil
}

type galleryRepo struct{ s *Store }

func (r galleryRepo) FindAll(ctx context.Context) ([]model.GalleryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.GalleryItem, 0, len(r.s.gallery))
	for _, g := range r.s.gallery {
		out = append(out, *g)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].SortOrder != out[b].SortOrder {
			return out[a].SortOrder < out[b].SortOrder
		}
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (r galleryRepo) Create(ctx context.Context, params model.CreateGalleryItemParams) (*model.GalleryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	g := &model.GalleryItem{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		Category:    params.Category,
		SortOrder:   params.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.gallery[g.ID] = g
	cp := *g
	return &cp, nil
}

func (r galleryRepo) Update(ctx context.Context, id string, params model.UpdateGalleryItemParams) (*model.GalleryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.gallery[id]
	if !ok {
		return nil, nil
	}
	if params.Title != nil {
		g.Title = *params.Title
	}
	if params.Description != nil {
		g.Description = params.Description
	}
	if params.ImageURL != nil {
		g.ImageURL = *params.ImageURL
	}
	if params.Category != nil {
		g.Category = params.Category
	}
	if params.SortOrder != nil {
		g.SortOrder = *params.SortOrder
	}
	g.UpdatedAt = r.s.Now()
	cp := *g
	return &cp, nil
}

func (r galleryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.gallery, id)
	return nil
}

type contentRepo struct{ s *Store }

func (r contentRepo) FindAll(ctx context.Context) ([]model.SiteContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.SiteContent, 0, len(r.s.content))
	for _, c := range r.s.content {
		out = append(out, *c)
	}
	sort.Slice(out, func(a, b int) bool { return strings.Compare(string(out[a].Section), string(out[b].Section)) < 0 })
	return out, nil
}

func (r contentRepo) FindBySection(ctx context.Context, section model.ContentSection) (*model.SiteContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.content[section]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r contentRepo) Upsert(ctx context.Context, section model.ContentSection, content json.RawMessage) (*model.SiteContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := &model.SiteContent{
		Section:   section,
		Content:   append(json.RawMessage(nil), content...),
		UpdatedAt: r.s.Now(),
	}
	r.s.content[section] = c
	cp := *c
	return &cp, nil
}
