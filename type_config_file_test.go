package osmschema

import (
	"testing"

	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeConfig_StoreAndLoadDataFile(t *testing.T) {
	fs := mockfs.NewMockFs()

	config := buildRoadSchema(t)
	config.RegisterNameTag("name", 10)
	config.RegisterNameTag("int_name", 5)
	config.RegisterNameAltTag("name:en", 10)

	require.NoError(t, config.StoreToDataFile(fs, "/data"))

	loaded, err := NewTypeConfigFromDataFile(fs, "/data")
	require.NoError(t, err)

	// tag table survives with identical ids and visibility
	require.Len(t, loaded.Tags(), len(config.Tags()))
	for i, tagInfo := range config.Tags() {
		assert.Equal(t, tagInfo, loaded.Tags()[i])
	}

	// name tag priorities survive
	priority, ok := loaded.IsNameTag(loaded.TagID("int_name"))
	require.True(t, ok)
	assert.Equal(t, uint32(5), priority)

	priority, ok = loaded.IsNameAltTag(loaded.TagID("name:en"))
	require.True(t, ok)
	assert.Equal(t, uint32(10), priority)

	// type table survives with identical ids, flags and feature lists
	require.Len(t, loaded.Types(), len(config.Types()))
	for i, typeInfo := range config.Types() {
		loadedType := loaded.Types()[i]

		assert.Equal(t, typeInfo.ID(), loadedType.ID())
		assert.Equal(t, typeInfo.Name(), loadedType.Name())
		assert.Equal(t, typeInfo.CanBeNode, loadedType.CanBeNode)
		assert.Equal(t, typeInfo.CanBeWay, loadedType.CanBeWay)
		assert.Equal(t, typeInfo.CanBeArea, loadedType.CanBeArea)
		assert.Equal(t, typeInfo.CanBeRelation, loadedType.CanBeRelation)
		assert.Equal(t, typeInfo.CanRouteFoot, loadedType.CanRouteFoot)
		assert.Equal(t, typeInfo.CanRouteBicycle, loadedType.CanRouteBicycle)
		assert.Equal(t, typeInfo.CanRouteCar, loadedType.CanRouteCar)
		assert.Equal(t, typeInfo.IndexAsRegion, loadedType.IndexAsRegion)

		require.Equal(t, typeInfo.FeatureCount(), loadedType.FeatureCount(), typeInfo.Name())
		for idx, instance := range typeInfo.Features() {
			loadedInstance := loadedType.Feature(idx)
			assert.Equal(t, instance.Feature().Name(), loadedInstance.Feature().Name())
			assert.Equal(t, instance.FeatureBit(), loadedInstance.FeatureBit())
			assert.Equal(t, instance.Offset(), loadedInstance.Offset())
		}
	}

	// classification behaves identically
	tagHighway := loaded.TagID("highway")
	wayType, _ := loaded.GetWayAreaTypes(TagMap{tagHighway: "motorway"})
	assert.Equal(t, "highway_motorway", wayType.Name())
}

func TestNewTypeConfigFromDataFile_MissingFile(t *testing.T) {
	fs := mockfs.NewMockFs()

	_, err := NewTypeConfigFromDataFile(fs, "/nowhere")
	require.Error(t, err)
}

func TestNewTypeConfigFromDataFile_IDMismatchFails(t *testing.T) {
	fs := mockfs.NewMockFs()

	config := NewTypeConfig()
	config.RegisterExternal("highway")
	require.NoError(t, config.StoreToDataFile(fs, "/data"))

	// corrupt one tag id in the stored file: the tag count varint is
	// followed by tag records, the first of which is id 0 (one varint
	// byte) with an empty name
	data, readErr := fs.ReadFile("/data/" + TypesDataFilename)
	require.NoError(t, readErr)

	corrupted := make([]byte, len(data))
	copy(corrupted, data)
	require.Zero(t, corrupted[1], "expected the sentinel tag id right after the tag count")
	corrupted[1] = 5

	require.NoError(t, fs.WriteFile("/data/"+TypesDataFilename, corrupted, 0644))

	_, err := NewTypeConfigFromDataFile(fs, "/data")
	require.Error(t, err)
}

func TestNewTypeConfigFromDataFile_UnknownFeatureFails(t *testing.T) {
	fs := mockfs.NewMockFs()

	config := NewTypeConfig()
	typeInfo := NewTypeInfo("highway_road")
	typeInfo.CanBeWay = true
	require.NoError(t, typeInfo.AddFeature(config.GetFeature(NameFeatureName)))
	config.AddTypeInfo(typeInfo)

	require.NoError(t, config.StoreToDataFile(fs, "/data"))

	// a feature name that no registered feature answers to must fail the
	// load; "Name" appears in the stored file verbatim
	data, readErr := fs.ReadFile("/data/" + TypesDataFilename)
	require.NoError(t, readErr)

	corrupted := make([]byte, len(data))
	copy(corrupted, data)
	replaced := false
	for i := 0; i+4 <= len(corrupted); i++ {
		if string(corrupted[i:i+4]) == "Name" {
			copy(corrupted[i:i+4], "Nope")
			replaced = true
		}
	}
	require.True(t, replaced)

	require.NoError(t, fs.WriteFile("/data/"+TypesDataFilename, corrupted, 0644))

	_, err := NewTypeConfigFromDataFile(fs, "/data")
	require.Error(t, err)
}
