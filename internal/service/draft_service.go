package service

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/repository"
)

var ErrDraftNotFound = errors.New("草稿不存在")

type DraftService struct {
	drafts repository.DraftStore
}

func NewDraftService(drafts repository.DraftStore) *DraftService {
	return &DraftService{drafts: drafts}
}

// Create 创建草稿
func (s *DraftService) Create(ctx context.Context, req *dto.CreateDraftRequest) (*model.ContentDraft, error) {
	draft := &model.ContentDraft{
		UserID:           req.UserID,
		Topic:            req.Topic,
		ContentType:      req.ContentType,
		Tone:             req.Tone,
		GeneratedContent: req.GeneratedContent,
		SelectedImage:    selectedImage(req.SelectedImage),
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DraftService) Get(ctx context.Context, id string) (*model.ContentDraft, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return draft, nil
}

// ListByUser 用户草稿，最新的在前
func (s *DraftService) ListByUser(ctx context.Context, userID string) ([]model.ContentDraft, error) {
	return s.drafts.ListByUser(ctx, userID)
}

// Update 只更新传入的字段
func (s *DraftService) Update(ctx context.Context, id string, req *dto.UpdateDraftRequest) (*model.ContentDraft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Topic != nil {
		draft.Topic = *req.Topic
	}
	if req.ContentType != nil {
		draft.ContentType = *req.ContentType
	}
	if req.Tone != nil {
		draft.Tone = *req.Tone
	}
	if req.GeneratedContent != nil {
		draft.GeneratedContent = req.GeneratedContent
	}
	if req.SelectedImage != nil {
		draft.SelectedImage = selectedImage(req.SelectedImage)
	}
	if req.IsPublished != nil {
		draft.IsPublished = *req.IsPublished
	}
	if req.FarcasterCastHash != nil {
		draft.FarcasterCastHash = req.FarcasterCastHash
	}

	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ResetPublished 清除发布标记与 cast hash
func (s *DraftService) ResetPublished(ctx context.Context, draft *model.ContentDraft) error {
	draft.IsPublished = false
	draft.FarcasterCastHash = nil
	return s.drafts.Update(ctx, draft)
}

func (s *DraftService) Delete(ctx context.Context, id string) error {
	if err := s.drafts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDraftNotFound
		}
		return err
	}
	return nil
}

func selectedImage(img *model.SelectedImage) *datatypes.JSONType[model.SelectedImage] {
	if img == nil {
		return nil
	}
	v := datatypes.NewJSONType(*img)
	return &v
}
