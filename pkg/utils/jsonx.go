package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

// LLM output reliably wraps JSON in prose or markdown and occasionally drops a
// key quote or leaves a trailing comma. ExtractJSON and RepairJSON fix exactly
// these mechanical failure modes; anything beyond that is a malformed response,
// never a semantic guess.

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	missingQuoteRe  = regexp.MustCompile(`^(\s*)([A-Za-z_][A-Za-z0-9_]*)("\s*:)`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON pulls the JSON payload out of free-form model text: trim, prefer
// the first fenced code block, otherwise slice from the first '{' to the last
// '}' to discard surrounding prose.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if m := fencedBlockRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return s
	}

	// Day-block responses may be a bare array, so slice to whichever of
	// '{' or '[' appears first and its matching closer.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	switch {
	case objStart != -1 && (arrStart == -1 || objStart < arrStart):
		if end := strings.LastIndex(s, "}"); end > objStart {
			s = s[objStart : end+1]
		}
	case arrStart != -1:
		if end := strings.LastIndex(s, "]"); end > arrStart {
			s = s[arrStart : end+1]
		}
	}

	return s
}

// RepairJSON applies two syntactic fixes for near-valid model JSON: a missing
// opening quote on an object key, and trailing commas before '}' or ']'.
func RepairJSON(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = missingQuoteRe.ReplaceAllString(line, `$1"$2$3`)
	}
	s = strings.Join(lines, "\n")
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// DecodeModelJSON extracts JSON from raw model output and parses it into v,
// retrying once after repair. Exhaustion returns a MalformedResponseError
// carrying the offending text.
func DecodeModelJSON(raw string, v any) error {
	s := ExtractJSON(raw)

	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	repaired := RepairJSON(s)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}
