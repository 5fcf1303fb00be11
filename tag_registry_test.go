package osmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRegistry_Register(t *testing.T) {
	registry := NewTagRegistry()

	// the empty name holds the reserved id 0
	require.Equal(t, TagIgnore, registry.TagID(""))

	highwayID := registry.RegisterExternal("highway")
	surfaceID := registry.RegisterInternal("surface")

	assert.Equal(t, TagID(1), highwayID)
	assert.Equal(t, TagID(2), surfaceID)

	// registering again keeps the id
	assert.Equal(t, highwayID, registry.RegisterExternal("highway"))
	assert.Equal(t, surfaceID, registry.RegisterInternal("surface"))

	highwayInfo, ok := registry.TagInfo(highwayID)
	require.True(t, ok)
	assert.Equal(t, "highway", highwayInfo.Name)
	assert.False(t, highwayInfo.InternalOnly)

	surfaceInfo, ok := registry.TagInfo(surfaceID)
	require.True(t, ok)
	assert.True(t, surfaceInfo.InternalOnly)
}

func TestTagRegistry_ExternalPromotesInternal(t *testing.T) {
	registry := NewTagRegistry()

	internalID := registry.RegisterInternal("maxspeed")
	externalID := registry.RegisterExternal("maxspeed")
	require.Equal(t, internalID, externalID)

	info, ok := registry.TagInfo(internalID)
	require.True(t, ok)
	assert.False(t, info.InternalOnly)

	// promotion is one-way
	registry.RegisterInternal("maxspeed")
	info, ok = registry.TagInfo(internalID)
	require.True(t, ok)
	assert.False(t, info.InternalOnly)
}

func TestTagRegistry_UnknownName(t *testing.T) {
	registry := NewTagRegistry()

	assert.Equal(t, TagIgnore, registry.TagID("does-not-exist"))

	_, ok := registry.TagInfo(TagID(100))
	assert.False(t, ok)
}

func TestTagRegistry_TagsInIDOrder(t *testing.T) {
	registry := NewTagRegistry()
	registry.RegisterExternal("a")
	registry.RegisterExternal("b")
	registry.RegisterInternal("c")

	tags := registry.Tags()
	require.Len(t, tags, 4)
	for i, tagInfo := range tags {
		assert.Equal(t, TagID(i), tagInfo.ID)
	}
}
