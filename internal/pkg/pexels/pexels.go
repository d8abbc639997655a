package pexels

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/pkg/httpx"
)

var ErrMissingAPIKey = errors.New("pexels api key not configured")

type PhotoSource struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

type Photo struct {
	ID              int64       `json:"id"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	URL             string      `json:"url"`
	Photographer    string      `json:"photographer"`
	PhotographerURL string      `json:"photographer_url"`
	PhotographerID  int64       `json:"photographer_id"`
	AvgColor        string      `json:"avg_color"`
	Src             PhotoSource `json:"src"`
	Alt             string      `json:"alt"`
	Category        string      `json:"category,omitempty"`
}

type searchResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	Photos       []Photo `json:"photos"`
	TotalResults int     `json:"total_results"`
}

// featuredCategories 精选图片的分类及候选搜索词
var featuredCategories = []struct {
	name  string
	terms []string
}{
	{"crypto", []string{"cryptocurrency bitcoin", "blockchain technology", "ethereum digital currency"}},
	{"landscape", []string{"mountain landscape", "ocean sunset", "forest nature scenery"}},
	{"ai", []string{"artificial intelligence technology", "robot futuristic", "machine learning data"}},
	{"meme", []string{"funny crypto meme", "doge cryptocurrency", "internet meme culture"}},
}

const (
	featuredPerCategory = 2
	featuredMin         = 4
	fallbackQuery       = "cryptocurrency"
)

type Client struct {
	http    *httpx.Client
	apiKey  string
	baseURL string
	logger  *zap.Logger
}

func NewClient(http *httpx.Client, apiKey, baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    http,
		apiKey:  apiKey,
		baseURL: baseURL,
		logger:  logger.Named("pexels"),
	}
}

// Search 横图搜索
func (c *Client) Search(ctx context.Context, query string, perPage int) ([]Photo, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "landscape")

	var resp searchResponse
	err := c.http.GetJSON(ctx, c.baseURL+"/search?"+params.Encode(), map[string]string{
		"Authorization": c.apiKey,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}
	return resp.Photos, nil
}

// Featured 每个分类随机取一个搜索词各取两张，不足时用加密货币图片补齐
func (c *Client) Featured(ctx context.Context, limit int) ([]Photo, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	photos := make([]Photo, 0, len(featuredCategories)*featuredPerCategory)
	for _, category := range featuredCategories {
		term := category.terms[rand.Intn(len(category.terms))]
		found, err := c.Search(ctx, term, featuredPerCategory)
		if err != nil {
			c.logger.Warn("Failed to fetch featured category",
				zap.String("category", category.name),
				zap.String("term", term),
				zap.Error(err))
			continue
		}
		for _, p := range found {
			p.Category = category.name
			photos = append(photos, p)
		}
	}

	total := len(featuredCategories) * featuredPerCategory
	if len(photos) < featuredMin {
		fallback, err := c.Search(ctx, fallbackQuery, total-len(photos))
		if err != nil {
			c.logger.Warn("Failed to fetch fallback photos", zap.Error(err))
		} else {
			photos = append(photos, fallback...)
		}
	}

	if limit <= 0 || limit > total {
		limit = total
	}
	if len(photos) > limit {
		photos = photos[:limit]
	}
	return photos, nil
}
