package analysis

import (
	"sort"
	"strings"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

// Classify ranks under-practiced tags from the curriculum of level. It is
// pure and deterministic and returns at most MaxWeaknesses candidates.
//
// When fewer than MaxWeaknesses tags qualify, the result is rebuilt from the
// least-solved tags of the advanced curriculum regardless of solved count,
// then topped up from the least-solved tags overall, so callers receive
// MaxWeaknesses seeds whenever the inventory has that many tags.
func Classify(skills profile.Skills, level Level) []WeaknessCandidate {
	inventory := flatten(skills)

	focus := curriculumSets[level]
	picked := make([]WeaknessCandidate, 0, MaxWeaknesses)
	for _, c := range inventory {
		if c.ProblemsSolved < UnderPracticedThreshold && focus.has(c.TagName) {
			picked = append(picked, c)
		}
	}
	sortBySolved(picked)
	if len(picked) >= MaxWeaknesses {
		return picked[:MaxWeaknesses]
	}

	advanced := curriculumSets[LevelAdvanced]
	picked = picked[:0]
	for _, c := range inventory {
		if advanced.has(c.TagName) {
			picked = append(picked, c)
		}
	}
	sortBySolved(picked)
	if len(picked) > MaxWeaknesses {
		picked = picked[:MaxWeaknesses]
	}
	if len(picked) == MaxWeaknesses {
		return picked
	}

	chosen := make(map[string]struct{}, len(picked))
	for _, c := range picked {
		chosen[strings.ToLower(c.TagName)] = struct{}{}
	}
	rest := make([]WeaknessCandidate, 0, len(inventory))
	for _, c := range inventory {
		if _, ok := chosen[strings.ToLower(c.TagName)]; !ok {
			rest = append(rest, c)
		}
	}
	sortBySolved(rest)
	for _, c := range rest {
		if len(picked) == MaxWeaknesses {
			break
		}
		picked = append(picked, c)
	}
	return picked
}

func flatten(skills profile.Skills) []WeaknessCandidate {
	var out []WeaknessCandidate
	for _, bucket := range skills.Buckets() {
		for _, tag := range bucket.Tags {
			out = append(out, WeaknessCandidate{
				TagName:        tag.TagName,
				ProblemsSolved: tag.ProblemsSolved,
				Level:          bucket.Bucket,
			})
		}
	}
	return out
}

// sortBySolved orders ascending by solved count; ties keep bucket order.
func sortBySolved(items []WeaknessCandidate) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ProblemsSolved < items[j].ProblemsSolved
	})
}
