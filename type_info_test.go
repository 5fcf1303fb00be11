package osmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeInfo_AddFeature(t *testing.T) {
	config := NewTypeConfig()

	typeInfo := NewTypeInfo("highway_primary")
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(NameFeatureName)))
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(AccessFeatureName)))
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(BridgeFeatureName)))
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(MaxSpeedFeatureName)))

	require.Equal(t, 4, typeInfo.FeatureCount())

	// one presence bit per feature, in order
	for idx := 0; idx < typeInfo.FeatureCount(); idx++ {
		instance := typeInfo.Feature(idx)
		assert.Equal(t, idx, instance.Index())
		assert.Equal(t, idx, instance.FeatureBit())
		assert.Equal(t, typeInfo, instance.Type())
	}

	// offsets are aligned and strictly increasing
	previousOffset := -1
	for _, instance := range typeInfo.Features() {
		assert.Zero(t, instance.Offset()%featureValueAlignment)
		assert.Greater(t, instance.Offset(), previousOffset)
		previousOffset = instance.Offset()
	}

	assert.True(t, typeInfo.HasFeature(NameFeatureName))
	assert.False(t, typeInfo.HasFeature(TunnelFeatureName))

	assert.Equal(t, 1, typeInfo.FeatureBytes())
}

func TestTypeInfo_MarkerFeatureAdvancesOffsets(t *testing.T) {
	config := NewTypeConfig()

	// a zero-payload marker between two payload features must not make
	// its successor share an offset with it
	typeInfo := NewTypeInfo("highway_bridge_road")
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(AccessFeatureName)))
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(BridgeFeatureName)))
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(MaxSpeedFeatureName)))

	accessOffset := typeInfo.Feature(0).Offset()
	bridgeOffset := typeInfo.Feature(1).Offset()
	maxSpeedOffset := typeInfo.Feature(2).Offset()

	assert.Greater(t, bridgeOffset, accessOffset)
	assert.Greater(t, maxSpeedOffset, bridgeOffset)
}

func TestTypeInfo_AddFeatureTwiceFails(t *testing.T) {
	config := NewTypeConfig()

	typeInfo := NewTypeInfo("highway_primary")
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(NameFeatureName)))

	err := typeInfo.AddFeature(config.GetFeature(NameFeatureName))
	require.Error(t, err)

	assert.Equal(t, 1, typeInfo.FeatureCount())
}

func TestTypeInfo_FeatureValueBufferSize(t *testing.T) {
	config := NewTypeConfig()

	typeInfo := NewTypeInfo("highway_primary")
	assert.Equal(t, 0, typeInfo.FeatureValueBufferSize())

	// Name: 16 bytes at offset 0
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(NameFeatureName)))
	assert.Equal(t, 16, typeInfo.FeatureValueBufferSize())

	// MaxSpeed: 1 byte at offset 16
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(MaxSpeedFeatureName)))
	assert.Equal(t, 17, typeInfo.FeatureValueBufferSize())
}

func TestTypeInfo_AddCondition(t *testing.T) {
	registry := NewTagRegistry()
	tagHighway := registry.RegisterExternal("highway")

	typeInfo := NewTypeInfo("highway_primary")
	assert.False(t, typeInfo.HasConditions())

	typeInfo.AddCondition(EntityWay|EntityArea, NewTagExistsCondition(tagHighway))

	assert.True(t, typeInfo.HasConditions())
	assert.False(t, typeInfo.CanBeNode)
	assert.True(t, typeInfo.CanBeWay)
	assert.True(t, typeInfo.CanBeArea)
	assert.False(t, typeInfo.CanBeRelation)

	typeInfo.AddCondition(EntityNode, NewTagExistsCondition(tagHighway))
	assert.True(t, typeInfo.CanBeNode)

	require.Len(t, typeInfo.Conditions(), 2)
	assert.Equal(t, EntityWay|EntityArea, typeInfo.Conditions()[0].Kinds)
}
