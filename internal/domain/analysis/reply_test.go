package analysis

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/leetlens/internal/domain/profile"
	apperrors "github.com/yanqian/leetlens/pkg/errors"
)

func TestDecodeReplyExtractsWrappedObject(t *testing.T) {
	reply, err := decodeReply("Sure! Here is the analysis:\n```json\n{\"summary\":\"Solid.\",\"weaknesses\":[]}\n```\nGood luck.")
	require.NoError(t, err)
	require.Equal(t, "Solid.", reply["summary"])
}

func TestDecodeReplyRejectsMissingDelimiters(t *testing.T) {
	for _, content := range []string{"no json here", "{ unterminated", "} backwards {", "{not json}", "[1,2]"} {
		_, err := decodeReply(content)
		require.True(t, apperrors.IsCode(err, CodeResponseFormat), "content %q", content)
	}
}

func TestSanitizeEnforcesContract(t *testing.T) {
	reply, err := decodeReply(`{
		"summary": 42,
		"weaknesses": ["a", "b", 3, "c", "d", "e", "f", "g"],
		"suggestions": [
			"[1] Two Sum (leetcode.com/problems/two-sum)",
			"[15] 3Sum (leetcode.com/problems/3sum)",
			"Merge Intervals (leetcode.com/problems/merge-intervals)",
			"  [206] Reverse Linked List (leetcode.com/problems/reverse-linked-list)",
			"[56] Merge Intervals (leetcode.com/problems/merge-intervals)",
			7,
			"[200] Number of Islands (leetcode.com/problems/number-of-islands)",
			"[322] Coin Change (leetcode.com/problems/coin-change)",
			"[139] Word Break (leetcode.com/problems/word-break)",
			"[300] Longest Increasing Subsequence (leetcode.com/problems/longest-increasing-subsequence)"
		],
		"score": 140
	}`)
	require.NoError(t, err)

	got := sanitize("ada", reply)
	require.Equal(t, "Analysis of ada's profile", got.Summary)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, got.Weaknesses)
	require.Equal(t, []string{
		"[15] 3Sum (leetcode.com/problems/3sum)",
		"[56] Merge Intervals (leetcode.com/problems/merge-intervals)",
		"[200] Number of Islands (leetcode.com/problems/number-of-islands)",
		"[322] Coin Change (leetcode.com/problems/coin-change)",
		"[139] Word Break (leetcode.com/problems/word-break)",
	}, got.Suggestions)
	require.Equal(t, float64(100), got.Score)
}

func TestSanitizeNeverReturnsBlockedSuggestions(t *testing.T) {
	items := make([]any, 0)
	for _, n := range []string{"1", "20", "21", "70", "94", "104", "136", "141", "206"} {
		items = append(items, "["+n+"] Basic ("+"leetcode.com/problems/x)")
	}
	got := sanitize("ada", map[string]any{"suggestions": items})
	require.Empty(t, got.Suggestions)
	require.NotNil(t, got.Suggestions)
}

func TestSanitizeNonArrayFields(t *testing.T) {
	got := sanitize("ada", map[string]any{
		"summary":     "  Good.  ",
		"weaknesses":  "none",
		"suggestions": map[string]any{"x": 1},
	})
	require.Equal(t, "Good.", got.Summary)
	require.Equal(t, []string{}, got.Weaknesses)
	require.Equal(t, []string{}, got.Suggestions)
	require.Zero(t, got.Score)
}

func TestSanitizeScore(t *testing.T) {
	require.Equal(t, float64(0), sanitizeScore(-5.0))
	require.Equal(t, 72.5, sanitizeScore(72.5))
	require.Equal(t, float64(64), sanitizeScore(" 64 "))
	require.Equal(t, float64(0), sanitizeScore("high"))
	require.Equal(t, float64(0), sanitizeScore("NaN"))
	require.Equal(t, float64(0), sanitizeScore(true))
	require.Equal(t, float64(0), sanitizeScore(nil))
}

func TestRecentSubmissionsUsesLookbackWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	calendar := map[string]int{
		itoa(now.Add(-24 * time.Hour).Unix()):       4,
		itoa(now.Add(-89 * 24 * time.Hour).Unix()):  2,
		itoa(now.Add(-90 * 24 * time.Hour).Unix()):  50,
		itoa(now.Add(-200 * 24 * time.Hour).Unix()): 9,
		"garbage": 100,
	}
	require.Equal(t, 6, RecentSubmissions(calendar, now))
	require.Zero(t, RecentSubmissions(nil, now))
}

func TestBuildPromptEmbedsStatsAndSeeds(t *testing.T) {
	rating := 1712.6
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := profile.UserProfile{
		Username:           "ada",
		TotalSolved:        320,
		EasySolved:         120,
		MediumSolved:       150,
		HardSolved:         50,
		SubmissionCalendar: map[string]int{itoa(now.Add(-time.Hour).Unix()): 7},
		ContestStats:       &profile.ContestStats{Rating: &rating},
	}
	seeds := []WeaknessCandidate{
		{TagName: "Trie", ProblemsSolved: 2, Level: profile.BucketAdvanced},
		{TagName: "Segment Tree", ProblemsSolved: 0, Level: profile.BucketAdvanced},
	}

	prompt := buildPrompt(p, LevelAdvanced, seeds, now)
	require.Contains(t, prompt, "Experience level: advanced (320 total problems solved)")
	require.Contains(t, prompt, "120 Easy / 150 Medium / 50 Hard")
	require.Contains(t, prompt, "Recent activity: 7 submissions in the last 90 days")
	require.Contains(t, prompt, "Contest rating: 1713")
	require.Contains(t, prompt, "Trie — 2 problems")
	require.Contains(t, prompt, "Segment Tree — 0 problems")
	require.Contains(t, prompt, "1, 20, 21, 70, 94, 104, 136, 141, 206")
	require.Contains(t, prompt, "[Problem#] Problem Name (leetcode.com/problems/url-name)")
	require.True(t, strings.HasPrefix(prompt, "You are a senior technical interviewer"))

	p.ContestStats = nil
	require.Contains(t, buildPrompt(p, LevelAdvanced, seeds, now), "Contest rating: N/A")
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
