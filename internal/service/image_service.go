package service

import (
	"context"
	"errors"
	"strings"

	"github.com/qs3c/castquest_server/internal/pkg/pexels"
)

const defaultPhotosPerPage = 12

var ErrEmptyQuery = errors.New("搜索词不能为空")

// PhotoSource 图库搜索
type PhotoSource interface {
	Search(ctx context.Context, query string, perPage int) ([]pexels.Photo, error)
	Featured(ctx context.Context, limit int) ([]pexels.Photo, error)
}

type ImageService struct {
	photos PhotoSource
}

func NewImageService(photos PhotoSource) *ImageService {
	return &ImageService{photos: photos}
}

func (s *ImageService) Search(ctx context.Context, query string, perPage int) ([]pexels.Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if perPage <= 0 {
		perPage = defaultPhotosPerPage
	}
	return s.photos.Search(ctx, query, perPage)
}

func (s *ImageService) Featured(ctx context.Context, limit int) ([]pexels.Photo, error) {
	return s.photos.Featured(ctx, limit)
}
