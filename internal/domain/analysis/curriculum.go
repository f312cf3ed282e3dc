package analysis

import "strings"

// Topic names follow the upstream tag names. The three lists do not overlap.
var curricula = map[Level][]string{
	LevelBeginner: {
		"Array",
		"String",
		"Hash Table",
		"Two Pointers",
		"Sorting",
		"Linked List",
		"Stack",
		"Math",
		"Simulation",
		"Prefix Sum",
	},
	LevelIntermediate: {
		"Tree",
		"Binary Tree",
		"Binary Search Tree",
		"Binary Search",
		"Graph",
		"Heap (Priority Queue)",
		"Depth-First Search",
		"Breadth-First Search",
		"Sliding Window",
		"Backtracking",
		"Greedy",
		"Recursion",
	},
	LevelAdvanced: {
		"Dynamic Programming",
		"Trie",
		"Union Find",
		"Segment Tree",
		"Binary Indexed Tree",
		"Shortest Path",
		"Topological Sort",
		"Monotonic Stack",
		"Bitmask",
		"Minimum Spanning Tree",
		"Strongly Connected Component",
	},
}

type topicSet map[string]struct{}

func newTopicSet(names []string) topicSet {
	set := make(topicSet, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

func (s topicSet) has(name string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

var curriculumSets = map[Level]topicSet{
	LevelBeginner:     newTopicSet(curricula[LevelBeginner]),
	LevelIntermediate: newTopicSet(curricula[LevelIntermediate]),
	LevelAdvanced:     newTopicSet(curricula[LevelAdvanced]),
}

// Curriculum returns a copy of the topic list for level.
func Curriculum(level Level) []string {
	return append([]string(nil), curricula[level]...)
}
