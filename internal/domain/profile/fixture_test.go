package profile_test

import (
	"io"
	"log/slog"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePayload(username string) profile.RawPayload {
	rating := 1650.4
	return profile.RawPayload{
		AllQuestionsCount: []profile.RawDifficultyCount{
			{Difficulty: "All", Count: 3200},
			{Difficulty: "Easy", Count: 800},
			{Difficulty: "Medium", Count: 1700},
			{Difficulty: "Hard", Count: 700},
		},
		MatchedUser: &profile.RawMatchedUser{
			Username:           username,
			Contributions:      &profile.RawContributions{Points: 42},
			Profile:            &profile.RawUserProfile{Ranking: 123456, RealName: "Ada", UserAvatar: "https://example.com/a.png", StarRating: 2.5},
			SubmissionCalendar: `{"1700000000": 3, "1700086400": 1}`,
			SubmitStats: &profile.RawSubmitStats{
				AcSubmissionNum: []profile.RawSubmissionCount{
					{Difficulty: "All", Count: 16, Submissions: 20},
					{Difficulty: "Easy", Count: 10, Submissions: 12},
					{Difficulty: "Medium", Count: 5, Submissions: 7},
					{Difficulty: "Hard", Count: 1, Submissions: 1},
				},
				TotalSubmissionNum: []profile.RawSubmissionCount{
					{Difficulty: "Easy", Count: 11, Submissions: 15},
					{Difficulty: "Medium", Count: 7, Submissions: 12},
					{Difficulty: "Hard", Count: 2, Submissions: 3},
				},
			},
			TagProblemCounts: &profile.RawTagProblemCounts{
				Advanced:     []profile.RawTagCount{{TagName: "Dynamic Programming", TagSlug: "dynamic-programming", ProblemsSolved: 2}},
				Intermediate: []profile.RawTagCount{{TagName: "Hash Table", TagSlug: "hash-table", ProblemsSolved: 6}},
				Fundamental:  []profile.RawTagCount{{TagName: "Array", TagSlug: "array", ProblemsSolved: 12}},
			},
			Badges: []profile.RawBadge{{ID: "1", DisplayName: "50 Days Badge", Icon: "/badge.png"}},
		},
		UserContestRanking: &profile.RawContestRanking{
			AttendedContestsCount: 3,
			Rating:                &rating,
			GlobalRanking:         90000,
			TotalParticipants:     600000,
			TopPercentage:         15.2,
		},
	}
}
