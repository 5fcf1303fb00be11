package osmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxSpeedFeature_Parse(t *testing.T) {
	config := NewTypeConfig()
	feature := config.GetFeature(MaxSpeedFeatureName)
	require.NotNil(t, feature)

	tagMaxSpeed := config.TagID("maxspeed")
	object := ObjectRef{Type: ObjectTypeWay, ID: 1}

	tests := []struct {
		name         string
		value        string
		wantValue    bool
		wantMaxSpeed uint8
		wantWarning  bool
	}{
		{name: "plain km/h", value: "30", wantValue: true, wantMaxSpeed: 30},
		{name: "mph converts", value: "20 mph", wantValue: true, wantMaxSpeed: 32},
		{name: "mph without space", value: "20mph", wantValue: true, wantMaxSpeed: 32},
		{name: "walk estimate", value: "walk", wantValue: true, wantMaxSpeed: 10},
		{name: "signals means unknown", value: "signals"},
		{name: "none means unknown", value: "none"},
		{name: "km/h clamps at 255", value: "400", wantValue: true, wantMaxSpeed: 255},
		{name: "mph clamps at 255", value: "300 mph", wantValue: true, wantMaxSpeed: 255},
		{name: "non-numeric", value: "fast", wantWarning: true},
		{name: "negative", value: "-30", wantWarning: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reporter := &capturingProblemReporter{}

			value, ok := feature.Parse(reporter, config, FeatureInstance{}, object, TagMap{tagMaxSpeed: test.value})
			require.Equal(t, test.wantValue, ok)

			if test.wantWarning {
				assert.Len(t, reporter.warnings, 1)
			} else {
				assert.Empty(t, reporter.warnings)
			}

			if !ok {
				return
			}
			assert.Equal(t, test.wantMaxSpeed, value.(*MaxSpeedFeatureValue).MaxSpeed)
		})
	}

	t.Run("no maxspeed tag", func(t *testing.T) {
		_, ok := feature.Parse(NewDiscardProblemReporter(), config, FeatureInstance{}, object, TagMap{})
		assert.False(t, ok)
	})
}
