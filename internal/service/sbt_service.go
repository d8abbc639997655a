package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
	"github.com/qs3c/castquest_server/internal/repository"
)

// SbtMintPrice 每次铸造的固定费用
var SbtMintPrice = decimal.RequireFromString("0.00125")

type SbtService struct {
	badges repository.BadgeStore
	users  repository.UserStore
	quests *QuestService
	hooks  LedgerHooks
	now    func() time.Time
	logger *zap.Logger
}

func NewSbtService(badges repository.BadgeStore, users repository.UserStore, quests *QuestService, hooks LedgerHooks, logger *zap.Logger) *SbtService {
	return &SbtService{
		badges: badges,
		users:  users,
		quests: quests,
		hooks:  hooks,
		now:    time.Now,
		logger: logger.Named("sbt"),
	}
}

// GetBadge 用户的徽章，未铸造返回 nil
func (s *SbtService) GetBadge(ctx context.Context, userID string) (*model.SbtBadge, error) {
	badge, err := s.badges.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return badge, nil
}

// Mint 记录一次铸造并奖励积分，不受冷却限制
func (s *SbtService) Mint(ctx context.Context, userID, txHash string) (*dto.MintSbtResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now()
	badge, err := s.GetBadge(ctx, userID)
	if err != nil {
		return nil, err
	}

	if badge == nil {
		badge = &model.SbtBadge{
			UserID:        userID,
			MintCount:     1,
			TotalPaid:     SbtMintPrice,
			BadgeMetadata: newBadgeMetadata(),
			LastMintedAt:  &now,
		}
		if err := s.badges.Create(ctx, badge); err != nil {
			return nil, fmt.Errorf("create badge: %w", err)
		}
	} else {
		badge.MintCount++
		badge.TotalPaid = badge.TotalPaid.Add(SbtMintPrice)
		badge.LastMintedAt = &now
		if err := s.badges.Update(ctx, badge); err != nil {
			return nil, fmt.Errorf("update badge: %w", err)
		}
	}

	s.logger.Info("SBT minted",
		zap.String("userID", userID),
		zap.String("txHash", txHash),
		zap.Int("mintCount", badge.MintCount))

	// 铸造积分只发一条 sbt_minted 事件
	points := model.QuestPoints[model.QuestMintSBT]
	if _, err := s.quests.writeCompletion(ctx, userID, model.QuestMintSBT, points, now); err != nil {
		return nil, fmt.Errorf("award mint points: %w", err)
	}

	s.hooks.afterWrite(ctx, s.logger, &pubsub.LedgerEvent{
		Type:         pubsub.EventSbtMinted,
		UserID:       userID,
		QuestType:    model.QuestMintSBT,
		PointsEarned: points.String(),
		OccurredAt:   now,
	}, true)

	return &dto.MintSbtResponse{
		Success:         true,
		Badge:           badge,
		PointsEarned:    points,
		TransactionHash: txHash,
	}, nil
}

func newBadgeMetadata() *datatypes.JSONType[model.BadgeMetadata] {
	meta := datatypes.NewJSONType(model.BadgeMetadata{
		ImageURL:    "/icon.png",
		Name:        "ContentCastAI Profile SBT",
		Description: "Official ContentCastAI Soulbound Token - Proof of Contribution",
		Attributes: []model.BadgeAttribute{
			{TraitType: "Type", Value: "Profile SBT"},
			{TraitType: "Mint Count", Value: 1},
			{TraitType: "Total Contribution", Value: SbtMintPrice.String() + " DEGEN"},
		},
	})
	return &meta
}
