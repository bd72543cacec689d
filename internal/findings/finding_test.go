package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"high", SeverityHigh},
		{"HIGH", SeverityHigh},
		{"error", SeverityHigh},
		{"critical", SeverityHigh},
		{"medium", SeverityMedium},
		{"warning", SeverityMedium},
		{"", SeverityMedium},
		{"something else", SeverityMedium},
		{"low", SeverityLow},
		{" Low ", SeverityLow},
		{"note", SeverityLow},
		{"info", SeverityLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSeverity(tt.input), tt.input)
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityRank(SeverityHigh), SeverityRank(SeverityMedium))
	assert.Less(t, SeverityRank(SeverityMedium), SeverityRank(SeverityLow))
	assert.Less(t, SeverityRank(SeverityLow), SeverityRank("bogus"))
	assert.Equal(t, SeverityRank("high"), SeverityRank("HIGH"))
}

func TestSarifLevel(t *testing.T) {
	assert.Equal(t, "error", SarifLevel("high"))
	assert.Equal(t, "warning", SarifLevel("medium"))
	assert.Equal(t, "note", SarifLevel("low"))
	assert.Equal(t, "warning", SarifLevel("unexpected"))
}
