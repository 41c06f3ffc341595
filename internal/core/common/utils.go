package common

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExtractJSON returns the outermost JSON object or array embedded in an LLM reply,
// dropping markdown fences and any prose around it.
func ExtractJSON(response string) (string, error) {
	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return "", fmt.Errorf("no JSON value found in response")
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", fmt.Errorf("unterminated JSON value in response")
	}
	return s[start : end+1], nil
}

// ParseJSON extracts and unmarshals the JSON value of an LLM reply into T.
func ParseJSON[T any](response string) (T, error) {
	var result T
	raw, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, raw)
	}
	return result, nil
}
