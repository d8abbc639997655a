package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
	"github.com/qs3c/castquest_server/internal/repository"
)

var (
	ErrQuestCooldown    = errors.New("任务冷却中")
	ErrUnknownQuestType = errors.New("未知的任务类型")
)

type QuestService struct {
	quests repository.QuestStore
	users  repository.UserStore
	hooks  LedgerHooks
	now    func() time.Time
	logger *zap.Logger
}

func NewQuestService(quests repository.QuestStore, users repository.UserStore, hooks LedgerHooks, logger *zap.Logger) *QuestService {
	return &QuestService{
		quests: quests,
		users:  users,
		hooks:  hooks,
		now:    time.Now,
		logger: logger.Named("quest"),
	}
}

// CanComplete 检查任务是否可以完成
func (s *QuestService) CanComplete(ctx context.Context, userID, questType string) (bool, error) {
	quest, err := s.getQuest(ctx, userID, questType)
	if err != nil {
		return false, err
	}
	return canComplete(quest, s.now()), nil
}

func canComplete(quest *model.UserQuest, now time.Time) bool {
	if quest == nil || quest.LastCompletedAt == nil {
		return true
	}
	if quest.IsOneTime && quest.IsCompleted {
		return false
	}
	return now.Sub(*quest.LastCompletedAt) >= model.QuestCooldown
}

// timeUntilNext 距离冷却结束的毫秒数
func timeUntilNext(quest *model.UserQuest, now time.Time) int64 {
	if quest == nil || quest.LastCompletedAt == nil {
		return 0
	}
	remaining := model.QuestCooldown - now.Sub(*quest.LastCompletedAt)
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}

// RecordCompletion 记录一次完成并累加积分，不做冷却检查
func (s *QuestService) RecordCompletion(ctx context.Context, userID, questType string, points decimal.Decimal) (*model.UserQuest, error) {
	now := s.now()

	quest, err := s.writeCompletion(ctx, userID, questType, points, now)
	if err != nil {
		return nil, err
	}

	s.hooks.afterWrite(ctx, s.logger, &pubsub.LedgerEvent{
		Type:         pubsub.EventQuestCompleted,
		UserID:       userID,
		QuestType:    questType,
		PointsEarned: points.String(),
		OccurredAt:   now,
	}, !points.IsZero())

	return quest, nil
}

// writeCompletion 只写记录，调用方负责发事件
func (s *QuestService) writeCompletion(ctx context.Context, userID, questType string, points decimal.Decimal, now time.Time) (*model.UserQuest, error) {
	quest, err := s.getQuest(ctx, userID, questType)
	if err != nil {
		return nil, err
	}

	if quest == nil {
		quest = &model.UserQuest{
			UserID:          userID,
			QuestType:       questType,
			LastCompletedAt: &now,
			TotalPoints:     points,
			CompletionCount: 1,
			IsOneTime:       model.IsOneTimeQuest(questType),
		}
		if err := s.quests.Create(ctx, quest); err != nil {
			return nil, fmt.Errorf("create quest record: %w", err)
		}
	} else {
		quest.LastCompletedAt = &now
		quest.TotalPoints = quest.TotalPoints.Add(points)
		quest.CompletionCount++
		if err := s.quests.Update(ctx, quest); err != nil {
			return nil, fmt.Errorf("update quest record: %w", err)
		}
	}
	return quest, nil
}

// MarkOneTimeCompleted 标记一次性任务已完成
func (s *QuestService) MarkOneTimeCompleted(ctx context.Context, userID, questType string) error {
	return s.quests.MarkCompleted(ctx, userID, questType)
}

// TotalPoints 用户全部任务积分之和
func (s *QuestService) TotalPoints(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.quests.SumPoints(ctx, userID)
}

// Complete 用户主动完成任务：校验类型与冷却后记分
func (s *QuestService) Complete(ctx context.Context, userID, questType string) (*dto.CompleteQuestResponse, error) {
	points, ok := model.QuestPoints[questType]
	if !ok || questType == model.QuestMintSBT {
		return nil, ErrUnknownQuestType
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	allowed, err := s.CanComplete(ctx, userID, questType)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrQuestCooldown
	}

	quest, err := s.RecordCompletion(ctx, userID, questType, points)
	if err != nil {
		return nil, err
	}

	if model.IsOneTimeQuest(questType) {
		if err := s.MarkOneTimeCompleted(ctx, userID, questType); err != nil {
			return nil, fmt.Errorf("mark quest completed: %w", err)
		}
		quest.IsCompleted = true
	}

	return &dto.CompleteQuestResponse{
		Success:      true,
		Quest:        quest,
		PointsEarned: points,
	}, nil
}

// CurrentStreak 每日签到与 GM 的连续天数
func (s *QuestService) CurrentStreak(ctx context.Context, userID string) (int, error) {
	quests, err := s.quests.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return streakFromQuests(quests, s.now()), nil
}

func streakFromQuests(quests []model.UserQuest, now time.Time) int {
	completions := make([]time.Time, 0, len(model.DailyStreakQuests))
	for _, q := range quests {
		if q.LastCompletedAt == nil || !isStreakQuest(q.QuestType) {
			continue
		}
		completions = append(completions, *q.LastCompletedAt)
	}
	return CalculateStreak(completions, now)
}

func isStreakQuest(questType string) bool {
	for _, t := range model.DailyStreakQuests {
		if t == questType {
			return true
		}
	}
	return false
}

// Status 用户任务总览
func (s *QuestService) Status(ctx context.Context, userID string) (*dto.QuestStatusResponse, error) {
	now := s.now()

	quests, err := s.quests.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*model.UserQuest, len(quests))
	total := decimal.Zero
	for i := range quests {
		byType[quests[i].QuestType] = &quests[i]
		total = total.Add(quests[i].TotalPoints)
	}

	resp := &dto.QuestStatusResponse{
		TotalPoints:   total,
		CurrentStreak: streakFromQuests(quests, now),
		Quests:        make(map[string]dto.QuestState, len(model.DailyQuests)),
		BonusQuests:   make(map[string]dto.BonusQuestState, len(model.BonusQuests)),
	}

	for _, questType := range model.DailyQuests {
		quest := byType[questType]
		state := dto.QuestState{
			UserQuest:     quest,
			CanComplete:   canComplete(quest, now),
			TimeUntilNext: timeUntilNext(quest, now),
		}
		// 发布计数有每日上限，不展示冷却
		if questType == model.QuestDailyCast {
			state.TimeUntilNext = 0
			if quest != nil {
				resp.DailyCastCount = quest.CompletionCount
			}
		}
		resp.Quests[questType] = state
	}

	for _, questType := range model.BonusQuests {
		quest := byType[questType]
		resp.BonusQuests[questType] = dto.BonusQuestState{
			UserQuest:   quest,
			CanComplete: canComplete(quest, now),
			IsCompleted: quest != nil && quest.IsCompleted,
		}
	}

	return resp, nil
}

func (s *QuestService) getQuest(ctx context.Context, userID, questType string) (*model.UserQuest, error) {
	quest, err := s.quests.Get(ctx, userID, questType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return quest, nil
}
