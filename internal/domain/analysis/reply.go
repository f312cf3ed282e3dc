package analysis

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/yanqian/leetlens/pkg/errors"
)

var suggestionPattern = regexp.MustCompile(`^\s*\[(\d+)\]`)

// decodeReply extracts the text between the first '{' and the last '}' and
// decodes it as a JSON object.
func decodeReply(content string) (map[string]any, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, apperrors.Wrap(CodeResponseFormat, "no JSON object in model reply", nil)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return nil, apperrors.Wrap(CodeResponseFormat, "model reply is not a JSON object", err)
	}
	if out == nil {
		return nil, apperrors.Wrap(CodeResponseFormat, "model reply is not a JSON object", nil)
	}
	return out, nil
}

// sanitize enforces the output contract on an untrusted decoded reply.
func sanitize(username string, reply map[string]any) Result {
	summary, ok := reply["summary"].(string)
	if !ok || strings.TrimSpace(summary) == "" {
		summary = "Analysis of " + username + "'s profile"
	}
	return Result{
		Summary:     strings.TrimSpace(summary),
		Weaknesses:  sanitizeWeaknesses(reply["weaknesses"]),
		Suggestions: sanitizeSuggestions(reply["suggestions"]),
		Score:       sanitizeScore(reply["score"]),
	}
}

func sanitizeWeaknesses(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, MaxWeaknesses)
	for _, item := range items {
		if len(out) == MaxWeaknesses {
			break
		}
		text, ok := item.(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out
}

func sanitizeSuggestions(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, MaxSuggestions)
	for _, item := range items {
		if len(out) == MaxSuggestions {
			break
		}
		text, ok := item.(string)
		if !ok {
			continue
		}
		match := suggestionPattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		num, err := strconv.Atoi(match[1])
		if err != nil || num <= 0 || IsBlocked(num) {
			continue
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out
}

func sanitizeScore(raw any) float64 {
	var score float64
	switch v := raw.(type) {
	case float64:
		score = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		score = parsed
	default:
		return 0
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return math.Min(100, math.Max(0, score))
}
