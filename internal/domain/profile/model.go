package profile

import "time"

// UserProfile is the canonical record built once per request by Normalize.
type UserProfile struct {
	Username           string         `json:"username"`
	Profile            Details        `json:"profile"`
	TotalSolved        int            `json:"totalSolved"`
	TotalQuestions     int            `json:"totalQuestions"`
	EasySolved         int            `json:"easySolved"`
	MediumSolved       int            `json:"mediumSolved"`
	HardSolved         int            `json:"hardSolved"`
	TotalSubmissions   int            `json:"totalSubmissions"`
	ContributionPoints int            `json:"contributionPoints"`
	SubmissionCalendar map[string]int `json:"submissionCalendar"`
	Badges             []Badge        `json:"badges"`
	ContestStats       *ContestStats  `json:"contestStats"`
	Skills             Skills         `json:"skills"`
}

// Details carries the public profile card.
type Details struct {
	RealName   string  `json:"realName"`
	Avatar     string  `json:"avatar"`
	StarRating float64 `json:"starRating"`
	Ranking    int     `json:"ranking"`
}

type Badge struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

// ContestStats is only present for users with contest history.
type ContestStats struct {
	AttendedContestsCount int           `json:"attendedContestsCount"`
	Rating                *float64      `json:"rating,omitempty"`
	GlobalRanking         int           `json:"globalRanking"`
	TotalParticipants     int           `json:"totalParticipants"`
	TopPercentage         float64       `json:"topPercentage"`
	Badge                 *ContestBadge `json:"badge,omitempty"`
}

type ContestBadge struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Bucket names a skill tier.
type Bucket string

const (
	BucketAdvanced     Bucket = "advanced"
	BucketIntermediate Bucket = "intermediate"
	BucketFundamental  Bucket = "fundamental"
)

// Skills groups tag statistics by tier. Buckets are disjoint by tag name.
type Skills struct {
	Advanced     []TagStat `json:"advanced"`
	Intermediate []TagStat `json:"intermediate"`
	Fundamental  []TagStat `json:"fundamental"`
}

// Buckets returns the tiers in a fixed order.
func (s Skills) Buckets() []BucketStats {
	return []BucketStats{
		{Bucket: BucketAdvanced, Tags: s.Advanced},
		{Bucket: BucketIntermediate, Tags: s.Intermediate},
		{Bucket: BucketFundamental, Tags: s.Fundamental},
	}
}

type BucketStats struct {
	Bucket Bucket
	Tags   []TagStat
}

type TagStat struct {
	TagName        string `json:"tagName"`
	TagSlug        string `json:"tagSlug,omitempty"`
	ProblemsSolved int    `json:"problemsSolved"`
}

// CacheEntry is what a Store keeps per username.
type CacheEntry struct {
	Data      RawPayload `json:"data"`
	FetchedAt time.Time  `json:"fetchedAt"`
}

// Stale reports whether the entry is at least ttl old at now.
func (e CacheEntry) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) >= ttl
}

// AttemptStatus is the lifecycle state of a logged search attempt.
type AttemptStatus string

const (
	AttemptStarted  AttemptStatus = "ATTEMPT"
	AttemptSuccess  AttemptStatus = "SUCCESS"
	AttemptNotFound AttemptStatus = "NOT_FOUND"
	AttemptFailed   AttemptStatus = "FAILED"
)

// Config holds the gateway knobs.
type Config struct {
	CacheTTL time.Duration
}
