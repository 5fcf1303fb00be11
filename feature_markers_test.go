package osmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerFeatures_Parse(t *testing.T) {
	config := NewTypeConfig()

	tagBridge := config.TagID("bridge")
	tagTunnel := config.TagID("tunnel")
	tagJunction := config.TagID("junction")
	object := ObjectRef{Type: ObjectTypeWay, ID: 1}

	tests := []struct {
		name        string
		featureName string
		tags        TagMap
		wantPresent bool
	}{
		{"bridge=yes", BridgeFeatureName, TagMap{tagBridge: "yes"}, true},
		{"bridge=viaduct", BridgeFeatureName, TagMap{tagBridge: "viaduct"}, true},
		{"bridge=no", BridgeFeatureName, TagMap{tagBridge: "no"}, false},
		{"bridge=false", BridgeFeatureName, TagMap{tagBridge: "false"}, false},
		{"bridge=0", BridgeFeatureName, TagMap{tagBridge: "0"}, false},
		{"no bridge tag", BridgeFeatureName, TagMap{}, false},
		{"tunnel=yes", TunnelFeatureName, TagMap{tagTunnel: "yes"}, true},
		{"tunnel=no", TunnelFeatureName, TagMap{tagTunnel: "no"}, false},
		{"junction=roundabout", RoundaboutFeatureName, TagMap{tagJunction: "roundabout"}, true},
		{"junction=other", RoundaboutFeatureName, TagMap{tagJunction: "spui"}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			feature := config.GetFeature(test.featureName)
			require.NotNil(t, feature)

			value, present := feature.Parse(NewDiscardProblemReporter(), config, FeatureInstance{}, object, test.tags)
			assert.Equal(t, test.wantPresent, present)

			// markers never carry a payload
			assert.Nil(t, value)
			assert.Equal(t, 0, feature.ValueSize())
			assert.Nil(t, feature.NewValue())
		})
	}
}
