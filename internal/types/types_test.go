package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected Severity
		wantErr  bool
	}{
		{"error", SeverityError, false},
		{"WARNING", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{" info ", SeverityInfo, false},
		{"off", SeverityOff, false},
		{"loud", SeverityError, true},
		{"", SeverityError, true},
	}
	for _, tc := range tests {
		got, err := ParseSeverity(tc.input)
		if tc.wantErr {
			assert.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, got, tc.input)
	}
}

func TestSeverityYAML(t *testing.T) {
	t.Parallel()
	rules := map[string]ConfigRule{
		"prefer-includes":       {Severity: SeverityWarning},
		"prefer-includes-regex": {Severity: SeverityInfo},
	}
	d, err := yaml.Marshal(rules)
	require.NoError(t, err)
	assert.Contains(t, string(d), "severity: warning")
	assert.Contains(t, string(d), "severity: info")

	var decoded map[string]ConfigRule
	require.NoError(t, yaml.Unmarshal(d, &decoded))
	assert.Equal(t, rules, decoded)

	err = yaml.Unmarshal([]byte("a:\n  severity: loud\n"), &decoded)
	assert.ErrorContains(t, err, `line 2: unknown severity "loud"`)
}

func TestIssueJSON(t *testing.T) {
	t.Parallel()
	issue := Issue{
		Rule:     "prefer-includes",
		Severity: SeverityWarning,
		Fix:      &Fix{Start: 1, End: 4, Text: "a.includes(b)"},
	}
	d, err := json.Marshal(issue)
	require.NoError(t, err)
	assert.Contains(t, string(d), `"Severity":"WARNING"`)

	var decoded Issue
	require.NoError(t, json.Unmarshal(d, &decoded))
	assert.Equal(t, issue, decoded)

	d, err = json.Marshal(Issue{Rule: "prefer-includes"})
	require.NoError(t, err)
	assert.NotContains(t, string(d), "Fix")
}
