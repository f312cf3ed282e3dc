package profile

// RawPayload is the `data` object of the upstream getUserProfile GraphQL
// query. It is cached as-is and only ever read through Normalize.
type RawPayload struct {
	AllQuestionsCount  []RawDifficultyCount `json:"allQuestionsCount"`
	MatchedUser        *RawMatchedUser      `json:"matchedUser"`
	UserContestRanking *RawContestRanking   `json:"userContestRanking"`
}

// RawDifficultyCount is one entry of allQuestionsCount.
type RawDifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// RawMatchedUser holds the per-user portion of the payload.
type RawMatchedUser struct {
	Username           string               `json:"username"`
	Contributions      *RawContributions    `json:"contributions"`
	Profile            *RawUserProfile      `json:"profile"`
	SubmissionCalendar string               `json:"submissionCalendar"`
	SubmitStats        *RawSubmitStats      `json:"submitStats"`
	TagProblemCounts   *RawTagProblemCounts `json:"tagProblemCounts"`
	Badges             []RawBadge           `json:"badges"`
}

type RawContributions struct {
	Points int `json:"points"`
}

type RawUserProfile struct {
	Ranking    int     `json:"ranking"`
	RealName   string  `json:"realName"`
	UserAvatar string  `json:"userAvatar"`
	StarRating float64 `json:"starRating"`
}

type RawSubmitStats struct {
	AcSubmissionNum    []RawSubmissionCount `json:"acSubmissionNum"`
	TotalSubmissionNum []RawSubmissionCount `json:"totalSubmissionNum"`
}

type RawSubmissionCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

// RawTagProblemCounts splits solved-problem counts per tag into three tiers.
type RawTagProblemCounts struct {
	Advanced     []RawTagCount `json:"advanced"`
	Intermediate []RawTagCount `json:"intermediate"`
	Fundamental  []RawTagCount `json:"fundamental"`
}

type RawTagCount struct {
	TagName        string `json:"tagName"`
	TagSlug        string `json:"tagSlug,omitempty"`
	ProblemsSolved int    `json:"problemsSolved"`
}

type RawBadge struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

type RawContestRanking struct {
	AttendedContestsCount int              `json:"attendedContestsCount"`
	Rating                *float64         `json:"rating"`
	GlobalRanking         int              `json:"globalRanking"`
	TotalParticipants     int              `json:"totalParticipants"`
	TopPercentage         float64          `json:"topPercentage"`
	Badge                 *RawContestBadge `json:"badge"`
}

type RawContestBadge struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}
