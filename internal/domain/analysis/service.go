package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/leetlens/pkg/errors"
	"github.com/yanqian/leetlens/pkg/metrics"
	"github.com/yanqian/leetlens/pkg/util"
)

// Service produces competency assessments. Neither method fails: LLM
// problems surface as a degraded Result.
type Service interface {
	Assess(ctx context.Context, p profile.UserProfile) Result
	Analyze(ctx context.Context, p profile.UserProfile, weaknesses []WeaknessCandidate) Result
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatClients is the ordered credential list; index 0 is the primary.
type ChatClients []ChatClient

// TokenCounter estimates prompt size before a call.
type TokenCounter interface {
	Count(text string) int
}

type service struct {
	cfg     Config
	clients ChatClients
	tokens  TokenCounter
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the analysis engine. tokens may be nil.
func NewService(cfg Config, clients ChatClients, tokens TokenCounter, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		clients: clients,
		tokens:  tokens,
		metrics: recorder,
		logger:  logger.With("component", "analysis.service"),
		now:     util.NowUTC,
	}
}

// Assess runs the classifier and the engine. Blank profiles get the
// onboarding result without an LLM call.
func (s *service) Assess(ctx context.Context, p profile.UserProfile) Result {
	if p.TotalSolved == 0 {
		s.metrics.Analysis("onboarding")
		return OnboardingResult(p.Username)
	}
	level := ExperienceLevelFor(p.TotalSolved)
	return s.Analyze(ctx, p, Classify(p.Skills, level))
}

func (s *service) Analyze(ctx context.Context, p profile.UserProfile, weaknesses []WeaknessCandidate) Result {
	level := ExperienceLevelFor(p.TotalSolved)
	prompt := buildPrompt(p, level, weaknesses, s.now())
	estimate := 0
	if s.tokens != nil {
		estimate = s.tokens.Count(prompt)
	}
	s.logger.Debug("analysis prompt built", "username", p.Username, "level", level, "seeds", len(weaknesses), "prompt_tokens_estimate", estimate)

	req := chatgpt.ChatCompletionRequest{
		Model:          s.cfg.Model,
		Messages:       []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature:    s.cfg.Temperature,
		ResponseFormat: chatgpt.JSONObject,
	}

	var usage metrics.TokenUsage
	for i, client := range s.clients {
		if client == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			s.logger.Warn("analysis cancelled", "username", p.Username, "error", err)
			break
		}
		reply, attemptUsage, err := s.attempt(ctx, client, req)
		usage = usage.Add(attemptUsage)
		if err != nil {
			outcome := apperrors.CodeOf(err)
			if outcome == "" {
				outcome = "error"
			}
			s.metrics.LLMAttempt(i, outcome)
			s.logger.Warn("llm attempt failed", "username", p.Username, "credential", i, "error", err)
			continue
		}
		s.metrics.LLMAttempt(i, "ok")
		if usage.PromptTokens == 0 {
			usage = usage.Add(metrics.TokenUsage{PromptTokens: estimate})
		}
		s.metrics.Tokens(usage)
		s.metrics.Analysis("ok")

		result := sanitize(p.Username, reply)
		result.ExperienceLevel = level
		result.Usage = usage
		return result
	}

	err := apperrors.Wrap(CodeAnalysisUnavailable, "all llm credentials failed", nil)
	s.logger.Error("analysis degraded", "username", p.Username, "credentials", len(s.clients), "error", err)
	s.metrics.Tokens(usage)
	s.metrics.Analysis("degraded")
	result := DegradedResult(p.Username)
	result.ExperienceLevel = level
	return result
}

func (s *service) attempt(ctx context.Context, client ChatClient, req chatgpt.ChatCompletionRequest) (map[string]any, metrics.TokenUsage, error) {
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, metrics.TokenUsage{}, err
	}
	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	content := resp.Content()
	if content == "" {
		return nil, usage, apperrors.Wrap("empty_reply", "model returned no content", nil)
	}
	reply, err := decodeReply(content)
	if err != nil {
		return nil, usage, err
	}
	return reply, usage, nil
}

// DegradedResult is returned when no credential produced a usable reply.
func DegradedResult(username string) Result {
	if username == "" {
		username = "unknown user"
	}
	return Result{
		Summary:     "Technical analysis unavailable for " + username,
		Weaknesses:  []string{"System error"},
		Suggestions: []string{},
	}
}

// OnboardingResult is the fixed assessment for a profile with nothing solved.
func OnboardingResult(username string) Result {
	return Result{
		Summary: "Welcome to LeetCode, " + username + "! No problems are solved yet, so start with easy array, " +
			"string and hash table problems to build a steady daily habit before moving to mediums.",
		Weaknesses: []string{
			"Array fundamentals have not been practiced yet.",
			"String manipulation has not been practiced yet.",
			"Hash Table lookups have not been practiced yet.",
			"Two Pointers techniques have not been practiced yet.",
			"Sorting basics have not been practiced yet.",
		},
		Suggestions: []string{
			"[9] Palindrome Number (leetcode.com/problems/palindrome-number)",
			"[13] Roman to Integer (leetcode.com/problems/roman-to-integer)",
			"[14] Longest Common Prefix (leetcode.com/problems/longest-common-prefix)",
			"[26] Remove Duplicates from Sorted Array (leetcode.com/problems/remove-duplicates-from-sorted-array)",
			"[35] Search Insert Position (leetcode.com/problems/search-insert-position)",
		},
		ExperienceLevel: LevelBeginner,
	}
}
