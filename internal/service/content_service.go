package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model/dto"
)

const defaultSearchTerm = "technology"

var (
	ErrEmptyContent         = errors.New("内容不能为空")
	ErrEmptyPrompt          = errors.New("prompt 不能为空")
	ErrGeneratorUnavailable = errors.New("AI 生成服务未配置")
)

// ContentGenerator AI 文案生成
type ContentGenerator interface {
	GenerateContent(ctx context.Context, topic, contentType, tone string) (string, error)
	SuggestSearchTerm(ctx context.Context, content string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

type ContentService struct {
	generator ContentGenerator
	logger    *zap.Logger
}

func NewContentService(generator ContentGenerator, logger *zap.Logger) *ContentService {
	return &ContentService{
		generator: generator,
		logger:    logger.Named("content"),
	}
}

func (s *ContentService) Generate(ctx context.Context, topic, contentType, tone string) (string, error) {
	if s.generator == nil {
		return "", ErrGeneratorUnavailable
	}
	return s.generator.GenerateContent(ctx, topic, contentType, tone)
}

// GenerateFromPrompt 自由提示生成短文，lang 为空时自动识别语言
func (s *ContentService) GenerateFromPrompt(ctx context.Context, prompt, lang string) (*dto.PromptContentResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	lang = resolveLang(prompt, lang)
	raw, err := s.generator.GenerateText(ctx, buildPrompt(prompt, lang))
	if err != nil {
		s.logger.Error("Prompt generation failed", zap.String("lang", lang), zap.Error(err))
		return nil, fmt.Errorf("generate from prompt: %w", err)
	}

	text := enforceShortOutput(raw)
	return &dto.PromptContentResponse{
		OK:       true,
		Provider: promptProvider,
		Model:    s.generator.ModelName(),
		Lang:     lang,
		Text:     text,
		Content:  text,
		Result:   text,
		Message:  text,
	}, nil
}

// SuggestSearchTerm 为内容推荐图片搜索词，失败时返回默认词
func (s *ContentService) SuggestSearchTerm(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	if s.generator == nil {
		return defaultSearchTerm, nil
	}

	term, err := s.generator.SuggestSearchTerm(ctx, content)
	if err != nil {
		s.logger.Warn("Failed to suggest search term", zap.Error(err))
		return defaultSearchTerm, nil
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return defaultSearchTerm, nil
	}
	return term, nil
}
