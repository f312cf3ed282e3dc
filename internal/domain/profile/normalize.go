package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/leetlens/pkg/errors"
)

const (
	difficultyAll    = "All"
	difficultyEasy   = "Easy"
	difficultyMedium = "Medium"
	difficultyHard   = "Hard"
)

// Normalize flattens a raw payload into a UserProfile.
//
// A missing matchedUser or required nested field fails with
// CodeMalformedPayload. A submission calendar that is not valid JSON is
// reported with CodeCalendarParse while the returned profile stays usable,
// with an empty calendar.
func Normalize(raw RawPayload) (UserProfile, error) {
	user := raw.MatchedUser
	if user == nil {
		return UserProfile{}, malformed("matchedUser missing")
	}
	if strings.TrimSpace(user.Username) == "" {
		return UserProfile{}, malformed("matchedUser.username missing")
	}
	if user.Profile == nil {
		return UserProfile{}, malformed("matchedUser.profile missing")
	}
	if user.Contributions == nil {
		return UserProfile{}, malformed("matchedUser.contributions missing")
	}
	if user.SubmitStats == nil {
		return UserProfile{}, malformed("matchedUser.submitStats missing")
	}
	if user.TagProblemCounts == nil {
		return UserProfile{}, malformed("matchedUser.tagProblemCounts missing")
	}

	solved := make(map[string]int, len(user.SubmitStats.AcSubmissionNum))
	for _, entry := range user.SubmitStats.AcSubmissionNum {
		solved[strings.ToLower(entry.Difficulty)] = entry.Count
	}
	counts := make([]int, 0, 4)
	for _, difficulty := range []string{difficultyAll, difficultyEasy, difficultyMedium, difficultyHard} {
		count, ok := solved[strings.ToLower(difficulty)]
		if !ok {
			return UserProfile{}, malformed(fmt.Sprintf("acSubmissionNum has no %s entry", difficulty))
		}
		counts = append(counts, count)
	}

	totalQuestions, err := questionTotal(raw.AllQuestionsCount)
	if err != nil {
		return UserProfile{}, err
	}

	totalSubmissions := 0
	for _, entry := range user.SubmitStats.TotalSubmissionNum {
		totalSubmissions += entry.Submissions
	}

	out := UserProfile{
		Username: user.Username,
		Profile: Details{
			RealName:   user.Profile.RealName,
			Avatar:     user.Profile.UserAvatar,
			StarRating: user.Profile.StarRating,
			Ranking:    user.Profile.Ranking,
		},
		TotalSolved:        counts[0],
		TotalQuestions:     totalQuestions,
		EasySolved:         counts[1],
		MediumSolved:       counts[2],
		HardSolved:         counts[3],
		TotalSubmissions:   totalSubmissions,
		ContributionPoints: user.Contributions.Points,
		Badges:             toBadges(user.Badges),
		ContestStats:       toContestStats(raw.UserContestRanking),
		Skills:             toSkills(*user.TagProblemCounts),
	}

	calendar, calErr := ParseCalendar(user.SubmissionCalendar)
	out.SubmissionCalendar = calendar
	if calErr != nil {
		return out, calErr
	}
	return out, nil
}

// ParseCalendar decodes the JSON-encoded day->count mapping. On failure it
// returns an empty, non-nil map and a CodeCalendarParse error.
func ParseCalendar(encoded string) (map[string]int, error) {
	calendar := map[string]int{}
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return calendar, nil
	}
	var decoded map[string]int
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return calendar, apperrors.Wrap(CodeCalendarParse, "submission calendar is not a JSON object", err)
	}
	for day, count := range decoded {
		calendar[day] = count
	}
	return calendar, nil
}

func questionTotal(counts []RawDifficultyCount) (int, error) {
	if len(counts) == 0 {
		return 0, malformed("allQuestionsCount missing")
	}
	for _, entry := range counts {
		if strings.EqualFold(entry.Difficulty, difficultyAll) {
			return entry.Count, nil
		}
	}
	return counts[0].Count, nil
}

func toBadges(raw []RawBadge) []Badge {
	badges := make([]Badge, 0, len(raw))
	for _, b := range raw {
		badges = append(badges, Badge{ID: b.ID, DisplayName: b.DisplayName, Icon: b.Icon})
	}
	return badges
}

func toContestStats(raw *RawContestRanking) *ContestStats {
	if raw == nil {
		return nil
	}
	stats := &ContestStats{
		AttendedContestsCount: raw.AttendedContestsCount,
		GlobalRanking:         raw.GlobalRanking,
		TotalParticipants:     raw.TotalParticipants,
		TopPercentage:         raw.TopPercentage,
	}
	if raw.Rating != nil {
		rating := *raw.Rating
		stats.Rating = &rating
	}
	if raw.Badge != nil {
		stats.Badge = &ContestBadge{Name: raw.Badge.Name, Icon: raw.Badge.Icon}
	}
	return stats
}

// toSkills copies the three tiers, dropping a tag already seen in an
// earlier tier so that buckets stay disjoint.
func toSkills(raw RawTagProblemCounts) Skills {
	seen := make(map[string]struct{})
	convert := func(tags []RawTagCount) []TagStat {
		out := make([]TagStat, 0, len(tags))
		for _, tag := range tags {
			name := strings.TrimSpace(tag.TagName)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, TagStat{TagName: name, TagSlug: tag.TagSlug, ProblemsSolved: tag.ProblemsSolved})
		}
		return out
	}
	return Skills{
		Advanced:     convert(raw.Advanced),
		Intermediate: convert(raw.Intermediate),
		Fundamental:  convert(raw.Fundamental),
	}
}

func malformed(detail string) error {
	return apperrors.Wrap(CodeMalformedPayload, "profile payload malformed: "+detail, nil)
}
