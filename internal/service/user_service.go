package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
	"github.com/qs3c/castquest_server/internal/pkg/jwt"
	"github.com/qs3c/castquest_server/internal/repository"
)

var (
	ErrUserNotFound = errors.New("用户不存在")
	ErrWalletEmpty  = errors.New("钱包地址不能为空")
)

// ProfileLookup 按钱包地址查询 Farcaster 资料
type ProfileLookup interface {
	LookupByWallet(ctx context.Context, walletAddress string) (*farcaster.Profile, error)
}

type UserService struct {
	users  repository.UserStore
	lookup ProfileLookup
	cfg    *config.Config
	logger *zap.Logger
}

func NewUserService(users repository.UserStore, lookup ProfileLookup, cfg *config.Config, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		lookup: lookup,
		cfg:    cfg,
		logger: logger.Named("user"),
	}
}

// Connect 连接钱包，已存在的用户直接返回，并签发会话令牌
func (s *UserService) Connect(ctx context.Context, req *dto.ConnectWalletRequest) (*dto.ConnectWalletResponse, error) {
	wallet := strings.TrimSpace(req.WalletAddress)
	if wallet == "" {
		return nil, ErrWalletEmpty
	}

	user, err := s.users.GetByWallet(ctx, wallet)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		user = &model.User{
			WalletAddress:        wallet,
			FarcasterFid:         req.FarcasterFid,
			FarcasterUsername:    req.FarcasterUsername,
			FarcasterDisplayName: req.FarcasterDisplayName,
			FarcasterAvatar:      req.FarcasterAvatar,
			BaseUsername:         req.BaseUsername,
			EnsUsername:          req.EnsUsername,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.logger.Info("User created", zap.String("userID", user.ID), zap.String("wallet", wallet))
	default:
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.WalletAddress, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.ConnectWalletResponse{User: user, Token: token}, nil
}

// GetByID 按 ID 获取用户
func (s *UserService) GetByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByWallet 按钱包获取用户，并用 Farcaster 资料补全空字段
func (s *UserService) GetByWallet(ctx context.Context, walletAddress string) (*model.User, error) {
	user, err := s.users.GetByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.lookup == nil {
		return user, nil
	}

	profile, err := s.lookup.LookupByWallet(ctx, walletAddress)
	if err != nil {
		s.logger.Warn("Failed to enrich user from Farcaster",
			zap.String("wallet", walletAddress),
			zap.Error(err))
		return user, nil
	}
	if profile == nil {
		return user, nil
	}

	if !enrichUser(user, profile) {
		return user, nil
	}
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("Failed to save enriched user", zap.String("userID", user.ID), zap.Error(err))
	}
	return user, nil
}

// enrichUser 只填充空字段，Neynar 分数总是刷新，返回是否有变化
func enrichUser(user *model.User, profile *farcaster.Profile) bool {
	changed := false
	fill := func(dst **string, value string) {
		if value == "" || (*dst != nil && **dst != "") {
			return
		}
		v := value
		*dst = &v
		changed = true
	}

	fill(&user.FarcasterFid, profile.Fid)
	fill(&user.FarcasterUsername, profile.Username)
	fill(&user.FarcasterDisplayName, profile.DisplayName)
	fill(&user.FarcasterAvatar, profile.PfpURL)
	fill(&user.FarcasterBio, profile.Bio)

	if user.FollowerCount == 0 && profile.FollowerCount > 0 {
		user.FollowerCount = profile.FollowerCount
		changed = true
	}
	if user.FollowingCount == 0 && profile.FollowingCount > 0 {
		user.FollowingCount = profile.FollowingCount
		changed = true
	}
	if profile.NeynarScore != nil {
		score := *profile.NeynarScore
		user.NeynarScore = &score
		changed = true
	}
	return changed
}

// Update 更新用户资料
func (s *UserService) Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	assign := func(dst **string, src *string) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	assign(&user.FarcasterFid, req.FarcasterFid)
	assign(&user.FarcasterUsername, req.FarcasterUsername)
	assign(&user.FarcasterDisplayName, req.FarcasterDisplayName)
	assign(&user.FarcasterAvatar, req.FarcasterAvatar)
	assign(&user.FarcasterBio, req.FarcasterBio)
	assign(&user.BaseUsername, req.BaseUsername)
	assign(&user.EnsUsername, req.EnsUsername)
	assign(&user.XURL, req.XURL)
	assign(&user.GithubURL, req.GithubURL)
	assign(&user.FarcasterURL, req.FarcasterURL)
	if req.FollowerCount != nil {
		user.FollowerCount = *req.FollowerCount
	}
	if req.FollowingCount != nil {
		user.FollowingCount = *req.FollowingCount
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
