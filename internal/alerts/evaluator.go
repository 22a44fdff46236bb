package alerts

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultCooldown applies to rules that do not set their own cooldown.
const DefaultCooldown = 30 * time.Second

// Firing is one rule match ready for delivery, with capture references in
// the message already expanded.
type Firing struct {
	RuleID  string
	Message string
}

// Evaluator matches compiled rules against log lines. It keeps per-rule
// firing times for cooldown tracking and is not safe for concurrent use;
// the watcher's line hook is the only expected caller.
type Evaluator struct {
	rules []*compiledRule
	now   func() time.Time
}

type compiledRule struct {
	id        string
	message   string
	cooldown  time.Duration
	regex     *regexp.Regexp
	lastFired time.Time
}

// NewEvaluator compiles all rule patterns from a validated rules file.
// Returns an error if any pattern has invalid regex syntax.
func NewEvaluator(rf *RuleFile) (*Evaluator, error) {
	if rf == nil {
		return nil, fmt.Errorf("rules file is nil")
	}

	rules := make([]*compiledRule, 0, len(rf.Rules))
	for i, r := range rf.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, &RuleError{
				Index:   i,
				ID:      r.ID,
				Field:   "pattern",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
				Cause:   err,
			}
		}

		cooldown := DefaultCooldown
		if r.Cooldown != "" {
			// Validate already checked the duration parses.
			cooldown, _ = time.ParseDuration(r.Cooldown)
		}

		rules = append(rules, &compiledRule{
			id:       r.ID,
			message:  r.Message,
			cooldown: cooldown,
			regex:    re,
		})
	}

	return &Evaluator{rules: rules, now: time.Now}, nil
}

// NewEvaluatorFromFile loads a rules file and compiles it in one step.
func NewEvaluatorFromFile(path string) (*Evaluator, error) {
	rf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(rf)
}

// Eval matches line against every rule and returns the firings whose
// cooldown has elapsed. Firings are returned in rule definition order.
func (e *Evaluator) Eval(line string) []Firing {
	now := e.now()
	var out []Firing
	for _, cr := range e.rules {
		m := cr.regex.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		if !cr.lastFired.IsZero() && now.Sub(cr.lastFired) < cr.cooldown {
			continue
		}
		cr.lastFired = now
		msg := string(cr.regex.ExpandString(nil, cr.message, line, m))
		out = append(out, Firing{RuleID: cr.id, Message: msg})
	}
	return out
}

// Len returns the number of compiled rules.
func (e *Evaluator) Len() int {
	return len(e.rules)
}
