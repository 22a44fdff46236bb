package alerts

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hytalerpc/hytale-rpc-go/internal/safefile"
)

const (
	// MaxRuleFileSize caps how much of a rules file is read (1 MB).
	MaxRuleFileSize = 1 * 1024 * 1024

	// MaxPatternLength caps the length of a single rule pattern.
	MaxPatternLength = 512

	// MaxRuleCount caps the number of rules in one file.
	MaxRuleCount = 256

	// SupportedVersion is the currently supported rules file format version.
	SupportedVersion = 1
)

// Load reads and parses a rules file from the given path. Non-regular
// files are rejected and reads are capped at MaxRuleFileSize.
func Load(path string) (*RuleFile, error) {
	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	if info.Size() == 0 {
		return nil, errors.New("rules file is empty")
	}
	if info.Size() > MaxRuleFileSize {
		return nil, fmt.Errorf("rules file too large: %d bytes (max %d)", info.Size(), MaxRuleFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxRuleFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	// The file may have grown between Stat and the read.
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rules file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	return LoadBytes(data)
}

// LoadBytes parses a rules file from a byte slice.
func LoadBytes(data []byte) (*RuleFile, error) {
	if len(data) == 0 {
		return nil, errors.New("rules file is empty")
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rules file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	if err := rf.Validate(); err != nil {
		return nil, err
	}

	return &rf, nil
}

// Validate performs schema-level validation on the rules file: version,
// required fields, unique IDs, pattern length, and parseable cooldowns.
// Patterns are not compiled here; that happens in NewEvaluator.
func (rf *RuleFile) Validate() error {
	if rf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", rf.Version, SupportedVersion),
		}
	}

	if len(rf.Rules) == 0 {
		return &ValidationError{
			Field:   "rules",
			Message: "at least one rule is required",
		}
	}
	if len(rf.Rules) > MaxRuleCount {
		return &ValidationError{
			Field:   "rules",
			Message: fmt.Sprintf("too many rules (%d), maximum allowed is %d", len(rf.Rules), MaxRuleCount),
		}
	}

	seenIDs := make(map[string]int, len(rf.Rules))

	for i, r := range rf.Rules {
		if r.ID == "" {
			return &RuleError{
				Index:   i,
				Field:   "id",
				Message: "id is required",
			}
		}
		if r.Pattern == "" {
			return &RuleError{
				Index:   i,
				ID:      r.ID,
				Field:   "pattern",
				Message: "pattern is required",
			}
		}
		if r.Message == "" {
			return &RuleError{
				Index:   i,
				ID:      r.ID,
				Field:   "message",
				Message: "message is required",
			}
		}

		if prevIndex, exists := seenIDs[r.ID]; exists {
			return &RuleError{
				Index:   i,
				ID:      r.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at rule[%d])", prevIndex),
			}
		}
		seenIDs[r.ID] = i

		if len(r.Pattern) > MaxPatternLength {
			return &RuleError{
				Index:   i,
				ID:      r.ID,
				Field:   "pattern",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(r.Pattern), MaxPatternLength),
			}
		}

		if r.Cooldown != "" {
			d, err := time.ParseDuration(r.Cooldown)
			if err != nil {
				return &RuleError{
					Index:   i,
					ID:      r.ID,
					Field:   "cooldown",
					Message: fmt.Sprintf("invalid duration %q", r.Cooldown),
					Cause:   err,
				}
			}
			if d < 0 {
				return &RuleError{
					Index:   i,
					ID:      r.ID,
					Field:   "cooldown",
					Message: fmt.Sprintf("cooldown must not be negative, got %q", r.Cooldown),
				}
			}
		}
	}

	return nil
}
