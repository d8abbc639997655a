package farcaster

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/pkg/httpx"
)

// lookupTTL 钱包查询缓存有效期，过期后重新拉取以刷新 Neynar 分数
const lookupTTL = 10 * time.Minute

// Profile 钱包对应的 Farcaster 用户
type Profile struct {
	Fid               string   `json:"fid"`
	Username          string   `json:"username"`
	DisplayName       string   `json:"displayName"`
	PfpURL            string   `json:"pfpUrl"`
	Bio               string   `json:"bio,omitempty"`
	FollowerCount     int      `json:"followerCount"`
	FollowingCount    int      `json:"followingCount"`
	VerifiedAddresses []string `json:"verifiedAddresses,omitempty"`
	NeynarScore       *int     `json:"neynarScore"`
}

// CastPreparation 待用户手动发布的 cast
type CastPreparation struct {
	CastContent  string `json:"castContent"`
	FarcasterURL string `json:"farcasterUrl"`
	Ready        bool   `json:"ready"`
}

type Options struct {
	NeynarAPIKey    string
	NeynarBaseURL   string
	HubBaseURL      string
	WarpcastBaseURL string
	ComposeURL      string
	CacheSize       int
}

type cacheEntry struct {
	profile   *Profile
	fetchedAt time.Time
}

type Client struct {
	http   *httpx.Client
	opts   Options
	cache  *lru.Cache
	now    func() time.Time
	logger *zap.Logger
}

func NewClient(http *httpx.Client, opts Options, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := opts.CacheSize
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create lookup cache: %w", err)
	}
	return &Client{
		http:   http,
		opts:   opts,
		cache:  cache,
		now:    time.Now,
		logger: logger.Named("farcaster"),
	}, nil
}

// LookupByWallet 按钱包地址查询 Farcaster 用户，找不到返回 nil, nil
// 配置了 Neynar key 时优先 Neynar，失败再回退到 Warpcast
func (c *Client) LookupByWallet(ctx context.Context, walletAddress string) (*Profile, error) {
	address := strings.ToLower(walletAddress)

	if v, ok := c.cache.Get(address); ok {
		entry := v.(cacheEntry)
		if c.now().Sub(entry.fetchedAt) < lookupTTL {
			return entry.profile, nil
		}
		c.cache.Remove(address)
	}

	profile, err := c.lookup(ctx, address)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		c.cache.Add(address, cacheEntry{profile: profile, fetchedAt: c.now()})
	}
	return profile, nil
}

func (c *Client) lookup(ctx context.Context, address string) (*Profile, error) {
	if c.opts.NeynarAPIKey != "" {
		profile, err := c.lookupNeynar(ctx, address)
		if err == nil {
			return profile, nil
		}
		c.logger.Warn("Neynar lookup failed, falling back to Warpcast",
			zap.String("address", address),
			zap.Error(err))
	}
	return c.lookupWarpcast(ctx, address)
}

type neynarUser struct {
	Fid            int64  `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	PfpURL         string `json:"pfp_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	Profile        struct {
		Bio struct {
			Text string `json:"text"`
		} `json:"bio"`
	} `json:"profile"`
	VerifiedAddresses struct {
		EthAddresses []string `json:"eth_addresses"`
	} `json:"verified_addresses"`
	Experimental *struct {
		NeynarUserScore *float64 `json:"neynar_user_score"`
	} `json:"experimental"`
}

func (c *Client) lookupNeynar(ctx context.Context, address string) (*Profile, error) {
	endpoint := c.opts.NeynarBaseURL + "/farcaster/user/bulk-by-address?addresses=" + url.QueryEscape(address)

	var resp map[string][]neynarUser
	err := c.http.GetJSON(ctx, endpoint, map[string]string{"x-api-key": c.opts.NeynarAPIKey}, &resp)
	if err != nil {
		if httpx.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	users := resp[address]
	if len(users) == 0 {
		return nil, nil
	}

	user := users[0]
	profile := &Profile{
		Fid:               strconv.FormatInt(user.Fid, 10),
		Username:          user.Username,
		DisplayName:       user.DisplayName,
		PfpURL:            user.PfpURL,
		Bio:               user.Profile.Bio.Text,
		FollowerCount:     user.FollowerCount,
		FollowingCount:    user.FollowingCount,
		VerifiedAddresses: user.VerifiedAddresses.EthAddresses,
	}
	// 分数范围 0-1，按百分制保存
	if user.Experimental != nil && user.Experimental.NeynarUserScore != nil {
		score := int(math.Round(*user.Experimental.NeynarUserScore * 100))
		profile.NeynarScore = &score
	}
	return profile, nil
}

type warpcastResponse struct {
	Result struct {
		User *struct {
			Fid         int64  `json:"fid"`
			Username    string `json:"username"`
			DisplayName string `json:"displayName"`
			Pfp         struct {
				URL string `json:"url"`
			} `json:"pfp"`
		} `json:"user"`
	} `json:"result"`
}

func (c *Client) lookupWarpcast(ctx context.Context, address string) (*Profile, error) {
	endpoint := c.opts.WarpcastBaseURL + "/v2/user-by-verification?address=" + url.QueryEscape(address)

	var resp warpcastResponse
	if err := c.http.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		if httpx.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("warpcast lookup: %w", err)
	}

	user := resp.Result.User
	if user == nil {
		return nil, nil
	}
	return &Profile{
		Fid:         strconv.FormatInt(user.Fid, 10),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		PfpURL:      user.Pfp.URL,
	}, nil
}

// HubProfile 从 Farcaster Hub 读取原始用户数据
func (c *Client) HubProfile(ctx context.Context, fid string) (map[string]interface{}, error) {
	endpoint := c.opts.HubBaseURL + "/v1/userDataByFid?fid=" + url.QueryEscape(fid)

	var resp map[string]interface{}
	if err := c.http.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("hub profile: %w", err)
	}
	return resp, nil
}

// PrepareCast 生成 Warpcast 发布链接，由用户在客户端确认发布
func (c *Client) PrepareCast(fid, text, imageURL string) *CastPreparation {
	composeURL := c.opts.ComposeURL + "?text=" + encodeComponent(text)
	if imageURL != "" {
		composeURL += "&embeds[]=" + encodeComponent(imageURL)
	}

	c.logger.Debug("Prepared cast",
		zap.String("fid", fid),
		zap.Bool("hasImage", imageURL != ""))

	return &CastPreparation{
		CastContent:  text,
		FarcasterURL: composeURL,
		Ready:        true,
	}
}

// encodeComponent 空格编码为 %20 而不是 +
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
