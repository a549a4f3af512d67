package service

import (
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/repository"
	"course_companion_backend/internal/util"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Feature 受订阅档位控制的功能点
type Feature string

const (
	FeatureQuizSubmission    Feature = "quiz_submission"
	FeatureEssayFeedback     Feature = "essay_feedback"
	FeatureProgressAnalytics Feature = "progress_analytics"
	FeatureContentDownload   Feature = "content_download"
)

const usageUnlimited = -1

// featureRule 单个功能的访问规则：各档位的每日限额，
// 缺席的档位表示完全不可用
type featureRule struct {
	dailyLimits map[model.SubscriptionTier]int
}

// AccessPolicy 订阅档位与功能的显式对照表。
// 纯内存查表，不触库，可单独测试。
type AccessPolicy struct {
	rules map[Feature]featureRule
}

func DefaultAccessPolicy() *AccessPolicy {
	return &AccessPolicy{
		rules: map[Feature]featureRule{
			FeatureQuizSubmission: {
				dailyLimits: map[model.SubscriptionTier]int{
					model.TierFree:    10,
					model.TierPremium: 50,
					model.TierPro:     usageUnlimited,
				},
			},
			FeatureEssayFeedback: {
				dailyLimits: map[model.SubscriptionTier]int{
					model.TierPremium: 20,
					model.TierPro:     usageUnlimited,
				},
			},
			FeatureProgressAnalytics: {
				dailyLimits: map[model.SubscriptionTier]int{
					model.TierPremium: usageUnlimited,
					model.TierPro:     usageUnlimited,
				},
			},
			FeatureContentDownload: {
				dailyLimits: map[model.SubscriptionTier]int{
					model.TierFree:    3,
					model.TierPremium: usageUnlimited,
					model.TierPro:     usageUnlimited,
				},
			},
		},
	}
}

// CanAccess 判断档位是否可以使用某功能（不考虑用量）
func (p *AccessPolicy) CanAccess(tier model.SubscriptionTier, feature Feature) bool {
	rule, ok := p.rules[feature]
	if !ok {
		return false
	}
	_, ok = rule.dailyLimits[tier]
	return ok
}

// DailyLimit 返回档位在某功能上的每日限额；unlimited 为 true 表示不限量
func (p *AccessPolicy) DailyLimit(tier model.SubscriptionTier, feature Feature) (limit int, unlimited, allowed bool) {
	rule, ok := p.rules[feature]
	if !ok {
		return 0, false, false
	}
	limit, ok = rule.dailyLimits[tier]
	if !ok {
		return 0, false, false
	}
	return limit, limit == usageUnlimited, true
}

type PremiumService struct {
	Policy    *AccessPolicy
	SubRepo   *repository.SubscriptionRepository
	UsageRepo *repository.UsageRepository
	UserRepo  *repository.UserRepository
	Redis     *redis.Client
	Log       *zap.Logger
}

func NewPremiumService(
	policy *AccessPolicy,
	subRepo *repository.SubscriptionRepository,
	usageRepo *repository.UsageRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	log *zap.Logger,
) *PremiumService {
	if policy == nil {
		policy = DefaultAccessPolicy()
	}
	return &PremiumService{
		Policy:    policy,
		SubRepo:   subRepo,
		UsageRepo: usageRepo,
		UserRepo:  userRepo,
		Redis:     rdb,
		Log:       log,
	}
}

// CheckAccess 功能访问校验：档位允许且当日用量未超限
func (s *PremiumService) CheckAccess(ctx context.Context, userID string, tier model.SubscriptionTier, feature Feature) error {
	limit, unlimited, allowed := s.Policy.DailyLimit(tier, feature)
	if !allowed {
		return util.ErrFeatureNotAvailable
	}
	if unlimited {
		return nil
	}

	used, err := s.usageToday(ctx, userID, feature)
	if err != nil {
		return err
	}
	if used >= int64(limit) {
		return util.ErrUsageLimitReached
	}
	return nil
}

// TrackUsage 记录一次功能调用：redis 计数 + mysql 流水
func (s *PremiumService) TrackUsage(ctx context.Context, userID string, feature Feature) {
	key := usageKey(userID, feature)
	pipe := s.Redis.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		s.Log.Warn("failed to track usage in redis",
			zap.String("userId", userID),
			zap.String("feature", string(feature)),
			zap.Error(err))
	}

	record := &model.UsageRecord{
		UserID:  userID,
		Feature: string(feature),
		UsedAt:  time.Now().UTC(),
	}
	if err := s.UsageRepo.Create(record); err != nil {
		s.Log.Warn("failed to persist usage record",
			zap.String("userId", userID),
			zap.String("feature", string(feature)),
			zap.Error(err))
	}
}

// usageToday 优先读 redis 计数，miss 或出错时回落到数据库统计
func (s *PremiumService) usageToday(ctx context.Context, userID string, feature Feature) (int64, error) {
	count, err := s.Redis.Get(ctx, usageKey(userID, feature)).Int64()
	if err == nil {
		return count, nil
	}
	if err != redis.Nil {
		s.Log.Warn("redis usage lookup failed, falling back to database",
			zap.String("userId", userID),
			zap.Error(err))
	}
	return s.UsageRepo.CountToday(userID, string(feature))
}

// UpgradeTier 变更订阅档位：停用旧订阅、写入新订阅并同步到用户
func (s *PremiumService) UpgradeTier(userID string, tier model.SubscriptionTier, expiresAt *time.Time) (*model.Subscription, error) {
	if err := s.SubRepo.DeactivateByUser(userID); err != nil {
		return nil, err
	}

	sub := &model.Subscription{
		UserID:    userID,
		Tier:      tier,
		StartedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	if err := s.SubRepo.Create(sub); err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateSubscriptionTier(userID, tier); err != nil {
		return nil, err
	}

	s.Log.Info("subscription tier changed",
		zap.String("userId", userID),
		zap.String("tier", string(tier)))
	return sub, nil
}

// CurrentTier 用户当前档位：活跃订阅优先，否则回落到用户表字段
func (s *PremiumService) CurrentTier(userID string) model.SubscriptionTier {
	sub, err := s.SubRepo.FindActiveByUser(userID)
	if err == nil {
		return sub.Tier
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return model.TierFree
	}
	return user.SubscriptionTier
}

// 计数 key 按 UTC 自然日切分
func usageKey(userID string, feature Feature) string {
	return fmt.Sprintf("usage:%s:%s:%s", userID, feature, time.Now().UTC().Format("2006-01-02"))
}
