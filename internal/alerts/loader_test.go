package alerts_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hytalerpc/hytale-rpc-go/internal/alerts"
)

func TestLoad_Valid(t *testing.T) {
	rf, err := alerts.Load("testdata/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, rf.Version)
	assert.Len(t, rf.Rules, 2)
	assert.Equal(t, "friend_joined", rf.Rules[0].ID)
	assert.Equal(t, "$1 joined your world", rf.Rules[0].Message)
	assert.Equal(t, "1m", rf.Rules[0].Cooldown)
	assert.Equal(t, "server_restart", rf.Rules[1].ID)
	assert.Empty(t, rf.Rules[1].Cooldown)
}

func TestLoad_InvalidPattern(t *testing.T) {
	// Load succeeds because validation does not compile patterns.
	rf, err := alerts.Load("testdata/invalid_pattern.yaml")
	require.NoError(t, err)
	assert.NotNil(t, rf)
}

func TestLoad_MissingFields(t *testing.T) {
	_, err := alerts.Load("testdata/missing_fields.yaml")
	require.Error(t, err)
	var ruleErr *alerts.RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Contains(t, err.Error(), "message is required")
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	_, err := alerts.Load("testdata/unsupported_version.yaml")
	require.Error(t, err)
	var valErr *alerts.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestLoad_DuplicateID(t *testing.T) {
	_, err := alerts.Load("testdata/duplicate_id.yaml")
	require.Error(t, err)
	var ruleErr *alerts.RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, 1, ruleErr.Index)
	assert.Contains(t, err.Error(), "duplicate id")
	assert.Contains(t, err.Error(), "rule[0]")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := alerts.Load("testdata/nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open rules file")
}

func TestLoadBytes_Empty(t *testing.T) {
	_, err := alerts.LoadBytes([]byte{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadBytes_Valid(t *testing.T) {
	data := []byte(`version: 1
rules:
  - id: test
    pattern: 'hello'
    message: 'world'
`)
	rf, err := alerts.LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 1, rf.Version)
	assert.Len(t, rf.Rules, 1)
	assert.Equal(t, "test", rf.Rules[0].ID)
}

func TestLoadBytes_InvalidYAML(t *testing.T) {
	data := []byte(`version: 1
rules:
  - id: test
    pattern: [broken yaml structure`)
	_, err := alerts.LoadBytes(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse rules file")
}

func TestLoadBytes_TooLarge(t *testing.T) {
	data := make([]byte, alerts.MaxRuleFileSize+1)
	_, err := alerts.LoadBytes(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate_NoRules(t *testing.T) {
	rf := &alerts.RuleFile{Version: 1}
	err := rf.Validate()
	require.Error(t, err)
	var valErr *alerts.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, err.Error(), "at least one rule")
}

func TestValidate_MissingID(t *testing.T) {
	rf := &alerts.RuleFile{
		Version: 1,
		Rules:   []alerts.Rule{{Pattern: "x", Message: "y"}},
	}
	err := rf.Validate()
	require.Error(t, err)
	var ruleErr *alerts.RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Contains(t, err.Error(), "id is required")
}

func TestValidate_MissingPattern(t *testing.T) {
	rf := &alerts.RuleFile{
		Version: 1,
		Rules:   []alerts.Rule{{ID: "test", Message: "y"}},
	}
	err := rf.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern is required")
}

func TestValidate_PatternTooLong(t *testing.T) {
	rf := &alerts.RuleFile{
		Version: 1,
		Rules: []alerts.Rule{
			{ID: "long", Pattern: strings.Repeat("a", alerts.MaxPatternLength+1), Message: "y"},
		},
	}
	err := rf.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern too long")
}

func TestValidate_PatternExactlyMax(t *testing.T) {
	rf := &alerts.RuleFile{
		Version: 1,
		Rules: []alerts.Rule{
			{ID: "max", Pattern: strings.Repeat("a", alerts.MaxPatternLength), Message: "y"},
		},
	}
	assert.NoError(t, rf.Validate())
}

func TestValidate_BadCooldown(t *testing.T) {
	tests := []struct {
		name     string
		cooldown string
		wantErr  string
	}{
		{"unparseable", "soon", "invalid duration"},
		{"negative", "-10s", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf := &alerts.RuleFile{
				Version: 1,
				Rules:   []alerts.Rule{{ID: "test", Pattern: "x", Message: "y", Cooldown: tt.cooldown}},
			}
			err := rf.Validate()
			require.Error(t, err)
			var ruleErr *alerts.RuleError
			require.True(t, errors.As(err, &ruleErr))
			assert.Equal(t, "cooldown", ruleErr.Field)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
