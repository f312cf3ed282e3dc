package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

// blockedProblems are canonical problem numbers too basic to suggest.
var blockedProblems = map[int]struct{}{
	1: {}, 20: {}, 21: {}, 70: {}, 94: {}, 104: {}, 136: {}, 141: {}, 206: {},
}

// IsBlocked reports whether a problem number is on the block-list.
func IsBlocked(problem int) bool {
	_, ok := blockedProblems[problem]
	return ok
}

func blockedList() string {
	nums := make([]int, 0, len(blockedProblems))
	for n := range blockedProblems {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// RecentSubmissions sums calendar entries whose day timestamp is newer than
// now minus RecentActivityWindow. Non-numeric keys are skipped.
func RecentSubmissions(calendar map[string]int, now time.Time) int {
	cutoff := now.Add(-RecentActivityWindow).Unix()
	total := 0
	for day, count := range calendar {
		ts, err := strconv.ParseInt(strings.TrimSpace(day), 10, 64)
		if err != nil {
			continue
		}
		if ts > cutoff {
			total += count
		}
	}
	return total
}

func formatRating(stats *profile.ContestStats) string {
	if stats == nil || stats.Rating == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*stats.Rating, 'f', 0, 64)
}

func buildPrompt(p profile.UserProfile, level Level, weaknesses []WeaknessCandidate, now time.Time) string {
	var seeds strings.Builder
	for i, w := range weaknesses {
		fmt.Fprintf(&seeds, "    %d. %s — %d problems\n", i+1, w.TagName, w.ProblemsSolved)
	}
	if seeds.Len() == 0 {
		seeds.WriteString("    (no tag statistics available)\n")
	}

	return fmt.Sprintf(`You are a senior technical interviewer analyzing a LeetCode profile. Provide a JSON response with:

1. A professional evaluation of about 50 words. Consider:
    - Experience level: %[1]s (%[2]d total problems solved)
    - Problem distribution: %[3]d Easy / %[4]d Medium / %[5]d Hard
    - Recent activity: %[6]d submissions in the last %[7]d days
    - Contest rating: %[8]s (below 1500 = average, below 1600 = decent, above 1600 = strong)

2. Exactly %[9]d weaknesses. Rephrase the topics below, do not invent new ones. Write each as one standalone sentence that starts with the topic name:
%[10]s
3. Up to %[11]d free problem suggestions:
    - Must match the user's experience level (%[1]s)
    - Never suggest these basic problems: %[12]s
    - Format strictly as: [Problem#] Problem Name (leetcode.com/problems/url-name)

Respond ONLY with valid JSON in this exact format:
{
  "summary": "...",
  "weaknesses": ["...", "...", "...", "...", "..."],
  "suggestions": ["[#] Problem Name (leetcode.com/problems/url-name)", "..."],
  "score": 0
}
The score is an overall interview readiness rating from 0 to 100.`,
		level, p.TotalSolved,
		p.EasySolved, p.MediumSolved, p.HardSolved,
		RecentSubmissions(p.SubmissionCalendar, now), int(RecentActivityWindow/(24*time.Hour)),
		formatRating(p.ContestStats),
		MaxWeaknesses, seeds.String(),
		MaxSuggestions, blockedList(),
	)
}
