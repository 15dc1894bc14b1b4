package parsers

import (
	"bufio"
	"io"
	"strings"

	logpkg "pagegate/internal/gate/common/log"
	"pagegate/internal/gate/domain"
)

// ParseRuleList parses a newline-delimited rule list into cleaned rule strings.
//
// Behavior:
// - Supports comments starting with '#' (inline or whole-line)
// - Strips a BOM, surrounding whitespace, scheme, port, query, and fragment
// - Skips lines that clean down to nothing or fail rule parsing
// - De-duplicates by cleaned string while preserving first-seen order
func ParseRuleList(r io.Reader, source string, logger logpkg.Logger) ([]string, error) {
	scanner := bufio.NewScanner(r)

	seen := make(map[string]struct{})
	out := make([]string, 0, 64)
	logger.Debug(map[string]any{"source": source}, "parse_rule_list_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		line = strings.TrimPrefix(line, "\uFEFF")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			logger.Debug(map[string]any{"line": lineNum}, "skip_comment")
			continue
		}

		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		rule, err := domain.NewRule(line)
		if err != nil {
			logger.Debug(map[string]any{"line": lineNum, "raw": strings.TrimSpace(line), "error": err.Error()}, "skip_invalid_rule")
			continue
		}

		if _, ok := seen[rule.Raw]; ok {
			logger.Debug(map[string]any{"line": lineNum, "rule": rule.Raw}, "skip_duplicate")
			continue
		}
		seen[rule.Raw] = struct{}{}
		out = append(out, rule.Raw)
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_rule_list_scan_error")
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(out)}, "parse_rule_list_done")
	return out, nil
}
