package profile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/leetlens/internal/domain/profile"
	apperrors "github.com/yanqian/leetlens/pkg/errors"
)

func TestNormalizeFlattensPayload(t *testing.T) {
	got, err := profile.Normalize(samplePayload("Ada_Lovelace"))
	require.NoError(t, err)

	require.Equal(t, "Ada_Lovelace", got.Username)
	require.Equal(t, 16, got.TotalSolved)
	require.Equal(t, 10, got.EasySolved)
	require.Equal(t, 5, got.MediumSolved)
	require.Equal(t, 1, got.HardSolved)
	require.Equal(t, 3200, got.TotalQuestions)
	require.Equal(t, 30, got.TotalSubmissions)
	require.Equal(t, 42, got.ContributionPoints)
	require.Equal(t, "Ada", got.Profile.RealName)
	require.Equal(t, "https://example.com/a.png", got.Profile.Avatar)
	require.Equal(t, map[string]int{"1700000000": 3, "1700086400": 1}, got.SubmissionCalendar)
	require.Len(t, got.Badges, 1)
	require.NotNil(t, got.ContestStats)
	require.NotNil(t, got.ContestStats.Rating)
	require.InDelta(t, 1650.4, *got.ContestStats.Rating, 0.001)
	require.Equal(t, []profile.TagStat{{TagName: "Dynamic Programming", TagSlug: "dynamic-programming", ProblemsSolved: 2}}, got.Skills.Advanced)
}

func TestNormalizeWithoutContestHistory(t *testing.T) {
	raw := samplePayload("newbie")
	raw.UserContestRanking = nil

	got, err := profile.Normalize(raw)
	require.NoError(t, err)
	require.Nil(t, got.ContestStats)
}

func TestNormalizeBadCalendarKeepsProfile(t *testing.T) {
	raw := samplePayload("ada")
	raw.MatchedUser.SubmissionCalendar = "not-json"

	got, err := profile.Normalize(raw)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, profile.CodeCalendarParse))
	require.NotNil(t, got.SubmissionCalendar)
	require.Empty(t, got.SubmissionCalendar)
	require.Equal(t, 16, got.TotalSolved)
}

func TestNormalizeMissingMatchedUser(t *testing.T) {
	raw := samplePayload("ada")
	raw.MatchedUser = nil

	_, err := profile.Normalize(raw)
	require.True(t, apperrors.IsCode(err, profile.CodeMalformedPayload))
}

func TestNormalizeMissingNestedFields(t *testing.T) {
	cases := map[string]func(*profile.RawPayload){
		"submit stats":   func(p *profile.RawPayload) { p.MatchedUser.SubmitStats = nil },
		"tag counts":     func(p *profile.RawPayload) { p.MatchedUser.TagProblemCounts = nil },
		"profile":        func(p *profile.RawPayload) { p.MatchedUser.Profile = nil },
		"question count": func(p *profile.RawPayload) { p.AllQuestionsCount = nil },
		"hard solved": func(p *profile.RawPayload) {
			p.MatchedUser.SubmitStats.AcSubmissionNum = p.MatchedUser.SubmitStats.AcSubmissionNum[:3]
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			raw := samplePayload("ada")
			mutate(&raw)
			_, err := profile.Normalize(raw)
			require.True(t, apperrors.IsCode(err, profile.CodeMalformedPayload), "got %v", err)
		})
	}
}

func TestNormalizeKeepsBucketsDisjoint(t *testing.T) {
	raw := samplePayload("ada")
	raw.MatchedUser.TagProblemCounts = &profile.RawTagProblemCounts{
		Advanced:     []profile.RawTagCount{{TagName: "Graph", ProblemsSolved: 4}},
		Intermediate: []profile.RawTagCount{{TagName: "graph", ProblemsSolved: 4}, {TagName: "Tree", ProblemsSolved: 3}},
		Fundamental:  []profile.RawTagCount{{TagName: "Tree", ProblemsSolved: 3}, {TagName: "", ProblemsSolved: 1}},
	}

	got, err := profile.Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, []profile.TagStat{{TagName: "Graph", ProblemsSolved: 4}}, got.Skills.Advanced)
	require.Equal(t, []profile.TagStat{{TagName: "Tree", ProblemsSolved: 3}}, got.Skills.Intermediate)
	require.Empty(t, got.Skills.Fundamental)
}

func TestParseCalendarEmptyString(t *testing.T) {
	calendar, err := profile.ParseCalendar("")
	require.NoError(t, err)
	require.NotNil(t, calendar)
	require.Empty(t, calendar)
}
