package service

import (
	"course_companion_backend/internal/model"
	"testing"
)

func TestAccessPolicyCanAccess(t *testing.T) {
	policy := DefaultAccessPolicy()

	tests := []struct {
		name    string
		tier    model.SubscriptionTier
		feature Feature
		want    bool
	}{
		{"免费档可以提交测验", model.TierFree, FeatureQuizSubmission, true},
		{"免费档不能使用论述反馈", model.TierFree, FeatureEssayFeedback, false},
		{"免费档不能查看进度分析", model.TierFree, FeatureProgressAnalytics, false},
		{"免费档可以下载内容", model.TierFree, FeatureContentDownload, true},
		{"高级档可以使用论述反馈", model.TierPremium, FeatureEssayFeedback, true},
		{"高级档可以查看进度分析", model.TierPremium, FeatureProgressAnalytics, true},
		{"专业档全部功能可用", model.TierPro, FeatureEssayFeedback, true},
		{"未知功能一律拒绝", model.TierPro, Feature("unknown_feature"), false},
		{"未知档位一律拒绝", model.SubscriptionTier("trial"), FeatureQuizSubmission, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.CanAccess(tt.tier, tt.feature); got != tt.want {
				t.Errorf("CanAccess(%q, %q) = %v, want %v", tt.tier, tt.feature, got, tt.want)
			}
		})
	}
}

func TestAccessPolicyDailyLimit(t *testing.T) {
	policy := DefaultAccessPolicy()

	tests := []struct {
		name          string
		tier          model.SubscriptionTier
		feature       Feature
		wantLimit     int
		wantUnlimited bool
		wantAllowed   bool
	}{
		{"免费档每日 10 次测验", model.TierFree, FeatureQuizSubmission, 10, false, true},
		{"高级档每日 50 次测验", model.TierPremium, FeatureQuizSubmission, 50, false, true},
		{"专业档测验不限量", model.TierPro, FeatureQuizSubmission, usageUnlimited, true, true},
		{"高级档每日 20 次论述反馈", model.TierPremium, FeatureEssayFeedback, 20, false, true},
		{"免费档每日 3 次下载", model.TierFree, FeatureContentDownload, 3, false, true},
		{"免费档论述反馈不可用", model.TierFree, FeatureEssayFeedback, 0, false, false},
		{"未知功能不可用", model.TierPro, Feature("nope"), 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, unlimited, allowed := policy.DailyLimit(tt.tier, tt.feature)
			if limit != tt.wantLimit || unlimited != tt.wantUnlimited || allowed != tt.wantAllowed {
				t.Errorf("DailyLimit(%q, %q) = (%d, %v, %v), want (%d, %v, %v)",
					tt.tier, tt.feature, limit, unlimited, allowed,
					tt.wantLimit, tt.wantUnlimited, tt.wantAllowed)
			}
		})
	}
}

func TestPerformanceBand(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89.99, "good"},
		{75, "good"},
		{74.99, "satisfactory"},
		{60, "satisfactory"},
		{59.99, "needs_improvement"},
		{0, "needs_improvement"},
	}

	for _, tt := range tests {
		if got := performanceBand(tt.avg); got != tt.want {
			t.Errorf("performanceBand(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestNewPremiumServiceDefaultsPolicy(t *testing.T) {
	svc := NewPremiumService(nil, nil, nil, nil, nil, nil)
	if svc.Policy == nil {
		t.Fatal("expected nil policy to fall back to the default policy")
	}
	if !svc.Policy.CanAccess(model.TierFree, FeatureQuizSubmission) {
		t.Error("default policy should allow free tier quiz submissions")
	}
}
