// Package alerts matches user-defined rules against raw client log lines.
// Rules come from a YAML file with regular expression patterns; a match
// produces a notification message, throttled by a per-rule cooldown.
package alerts

// RuleFile represents the structure of a YAML rules file.
//
// Example YAML file:
//
//	version: 1
//	rules:
//	  - id: friend_joined
//	    pattern: 'Player (\w+) joined the world'
//	    message: '$1 joined your world'
//	    cooldown: 1m
//	  - id: server_restart
//	    pattern: 'Server restart scheduled'
//	    message: 'The server is about to restart'
type RuleFile struct {
	// Version is the rules file format version. Currently only version 1
	// is supported.
	Version int `yaml:"version"`

	// Rules is the list of rule definitions.
	Rules []Rule `yaml:"rules"`
}

// Rule is a single alert definition. The pattern is matched against every
// log line; capture references in the message ($1, ${name}) are expanded
// from the match.
type Rule struct {
	// ID is a unique identifier for this rule. IDs must be unique within
	// a rules file.
	ID string `yaml:"id"`

	// Pattern is the regular expression matched against log lines.
	Pattern string `yaml:"pattern"`

	// Message is the notification text, with $1-style capture references
	// expanded from the match.
	Message string `yaml:"message"`

	// Cooldown is the minimum time between two firings of this rule, as a
	// duration string ("30s", "5m"). Empty means DefaultCooldown.
	Cooldown string `yaml:"cooldown"`
}
