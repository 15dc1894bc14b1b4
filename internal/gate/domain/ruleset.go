package domain

// RuleSet is an immutable, ordered snapshot of unique rules. The engine never
// mutates a RuleSet; the configuration collaborator builds a fresh one on
// every change. Order determines which rule is reported when several match;
// the boolean outcome is order-independent.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a RuleSet from parsed rules, de-duplicating by cleaned
// string while preserving first-seen order.
func NewRuleSet(rules []Rule) RuleSet {
	seen := make(map[string]struct{}, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Raw == "" {
			continue
		}
		if _, ok := seen[r.Raw]; ok {
			continue
		}
		seen[r.Raw] = struct{}{}
		out = append(out, r)
	}
	return RuleSet{rules: out}
}

// ParseRuleSet builds a RuleSet from raw rule strings, silently dropping
// entries that cannot be parsed. A bad rule never matches; it must not
// poison the rest of the set.
func ParseRuleSet(raw []string) RuleSet {
	rules := make([]Rule, 0, len(raw))
	for _, s := range raw {
		r, err := NewRule(s)
		if err != nil {
			continue
		}
		rules = append(rules, r)
	}
	return NewRuleSet(rules)
}

// Len returns the number of rules in the set.
func (s RuleSet) Len() int { return len(s.rules) }

// FirstMatch returns the first rule in snapshot order that matches the URL.
func (s RuleSet) FirstMatch(u NormalizedURL) (Rule, bool) {
	for _, r := range s.rules {
		if r.Matches(u) {
			return r, true
		}
	}
	return Rule{}, false
}

// Strings returns the cleaned rule strings in snapshot order.
func (s RuleSet) Strings() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Raw
	}
	return out
}
