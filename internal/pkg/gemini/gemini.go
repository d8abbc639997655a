package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	contentSystemPrompt = "You are a creative human content creator sharing genuine thoughts on Farcaster. " +
		"Write naturally, like a real person would post. Use conversational language and include emojis only where they fit."

	searchTermSystemPrompt = "You create search queries for stock photos. " +
		"Given a post, reply with one concise search term that would find a relevant, professional image. Reply with the term only."

	// FallbackSearchTerm 无法生成搜索词时使用
	FallbackSearchTerm = "technology"

	maxSearchInput = 500
)

var (
	ErrMissingAPIKey = errors.New("gemini api key not configured")
	ErrEmptyResponse = errors.New("empty response from gemini")
)

type Client struct {
	genAI           *genai.Client
	modelName       string
	contentModel    *genai.GenerativeModel
	searchTermModel *genai.GenerativeModel
	promptModel     *genai.GenerativeModel
	timeout         time.Duration
	logger          *zap.Logger
}

func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	genAI, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	contentModel := genAI.GenerativeModel(modelName)
	contentModel.SystemInstruction = genai.NewUserContent(genai.Text(contentSystemPrompt))
	contentModel.SetTemperature(0.9)
	contentModel.SetMaxOutputTokens(1024)

	searchTermModel := genAI.GenerativeModel(modelName)
	searchTermModel.SystemInstruction = genai.NewUserContent(genai.Text(searchTermSystemPrompt))
	searchTermModel.SetTemperature(0.2)
	searchTermModel.SetMaxOutputTokens(32)

	// 自由提示词，规则由调用方拼在提示里
	promptModel := genAI.GenerativeModel(modelName)
	promptModel.SetMaxOutputTokens(512)

	return &Client{
		genAI:           genAI,
		modelName:       modelName,
		contentModel:    contentModel,
		searchTermModel: searchTermModel,
		promptModel:     promptModel,
		timeout:         timeout,
		logger:          logger.Named("gemini"),
	}, nil
}

func (c *Client) Close() error {
	return c.genAI.Close()
}

// ModelName 当前使用的模型
func (c *Client) ModelName() string {
	return c.modelName
}

// GenerateText 直接用完整提示生成文本
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.promptModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	return extractText(resp)
}

// GenerateContent 按主题、类型和语气生成一条 cast
func (c *Client) GenerateContent(ctx context.Context, topic, contentType, tone string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.contentModel.GenerateContent(ctx, genai.Text(BuildContentPrompt(topic, contentType, tone)))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// SuggestSearchTerm 根据内容生成图片搜索词，失败时返回 FallbackSearchTerm
func (c *Client) SuggestSearchTerm(ctx context.Context, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if len(content) > maxSearchInput {
		content = content[:maxSearchInput]
	}
	prompt := fmt.Sprintf("Generate a search term for finding relevant images for this content: %q", content)

	resp, err := c.searchTermModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Warn("Failed to suggest search term", zap.Error(err))
		return FallbackSearchTerm, nil
	}

	term, err := extractText(resp)
	if err != nil || term == "" {
		return FallbackSearchTerm, nil
	}
	return term, nil
}

// BuildContentPrompt 生成内容的用户提示
func BuildContentPrompt(topic, contentType, tone string) string {
	return fmt.Sprintf("Create a %s about %q in a %s tone for Farcaster. Keep it under 320 characters.",
		strings.ToLower(contentType), topic, strings.ToLower(tone))
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", ErrEmptyResponse
	}
	return result, nil
}
