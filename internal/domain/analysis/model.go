package analysis

import (
	"time"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/pkg/metrics"
)

// Level is the experience tier derived from the solved-problem count.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

const (
	// MaxWeaknesses bounds both classifier output and sanitized weaknesses.
	MaxWeaknesses = 5
	// MaxSuggestions bounds the sanitized suggestion list.
	MaxSuggestions = 5
	// UnderPracticedThreshold is the exclusive solved count below which a
	// tag counts as under-practiced.
	UnderPracticedThreshold = 15
	// RecentActivityWindow is the lookback used for the recent-activity count.
	RecentActivityWindow = 90 * 24 * time.Hour
)

// WeaknessCandidate is a heuristic weakness seed.
type WeaknessCandidate struct {
	TagName        string         `json:"tagName"`
	ProblemsSolved int            `json:"problemsSolved"`
	Level          profile.Bucket `json:"level"`
}

// Result is the sanitized analysis returned to callers.
type Result struct {
	Summary         string             `json:"summary"`
	Weaknesses      []string           `json:"weaknesses"`
	Suggestions     []string           `json:"suggestions"`
	Score           float64            `json:"score"`
	ExperienceLevel Level              `json:"experienceLevel"`
	Usage           metrics.TokenUsage `json:"-"`
}

// Config wires the LLM call parameters.
type Config struct {
	Model       string
	Temperature float32
}

// ExperienceLevelFor maps a solved count onto a tier.
func ExperienceLevelFor(totalSolved int) Level {
	switch {
	case totalSolved > 300:
		return LevelAdvanced
	case totalSolved > 150:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
