package osmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerFeature_Parse(t *testing.T) {
	config := NewTypeConfig()
	feature := config.GetFeature(LayerFeatureName)
	require.NotNil(t, feature)

	tagLayer := config.TagID("layer")
	object := ObjectRef{Type: ObjectTypeWay, ID: 1}

	tests := []struct {
		name        string
		value       string
		wantValue   bool
		wantLayer   int8
		wantWarning bool
	}{
		{name: "positive", value: "2", wantValue: true, wantLayer: 2},
		{name: "negative", value: "-1", wantValue: true, wantLayer: -1},
		{name: "zero is the default and yields no value", value: "0"},
		{name: "non-numeric", value: "ground", wantWarning: true},
		{name: "out of int8 range", value: "500", wantWarning: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reporter := &capturingProblemReporter{}

			value, ok := feature.Parse(reporter, config, FeatureInstance{}, object, TagMap{tagLayer: test.value})
			require.Equal(t, test.wantValue, ok)

			if test.wantWarning {
				assert.Len(t, reporter.warnings, 1)
			} else {
				assert.Empty(t, reporter.warnings)
			}

			if !ok {
				return
			}
			assert.Equal(t, test.wantLayer, value.(*LayerFeatureValue).Layer)
		})
	}
}
