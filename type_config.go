package osmschema

// TypeConfig is the aggregate schema registry: it owns the tag table, the
// feature registry and the declared entity types, and answers
// classification queries. Construction and schema loading are expected to
// finish before any concurrent use; afterwards everything here is
// read-only and safe to share.
type TypeConfig struct {
	*TagRegistry

	nameTagPriorities    map[TagID]uint32
	nameAltTagPriorities map[TagID]uint32

	features map[string]Feature

	types      []*TypeInfo
	nameToType map[string]*TypeInfo
	idToType   map[TypeID]*TypeInfo
	nextTypeID TypeID
	ignoreType *TypeInfo

	surfaceToGrade map[string]uint8

	tagType TagID
}

// NewTypeConfig builds a fresh schema with the bootstrap tags, the built-in
// features and the built-in pseudo types registered. The bootstrap order is
// fixed: persisted schema files are only valid against a fresh instance
// that registered the same things in the same order.
func NewTypeConfig() *TypeConfig {
	config := &TypeConfig{
		TagRegistry:          NewTagRegistry(),
		nameTagPriorities:    make(map[TagID]uint32),
		nameAltTagPriorities: make(map[TagID]uint32),
		features:             make(map[string]Feature),
		nameToType:           make(map[string]*TypeInfo),
		idToType:             make(map[TypeID]*TypeInfo),
		surfaceToGrade:       make(map[string]uint8),
	}

	config.RegisterExternal("name")
	config.RegisterExternal("ref")
	config.RegisterExternal("bridge")
	config.RegisterExternal("tunnel")
	config.RegisterExternal("layer")
	config.RegisterExternal("width")
	config.RegisterExternal("oneway")
	config.RegisterExternal("addr:housenumber")
	config.RegisterExternal("addr:street")
	config.RegisterExternal("junction")
	config.RegisterExternal("maxspeed")
	config.RegisterExternal("surface")
	config.RegisterExternal("tracktype")
	config.RegisterExternal("admin_level")

	config.RegisterExternal("access")
	config.RegisterExternal("access:forward")
	config.RegisterExternal("access:backward")

	config.RegisterExternal("access:foot")
	config.RegisterExternal("access:foot:forward")
	config.RegisterExternal("access:foot:backward")

	config.RegisterExternal("access:bicycle")
	config.RegisterExternal("access:bicycle:forward")
	config.RegisterExternal("access:bicycle:backward")

	config.RegisterExternal("access:motor_vehicle")
	config.RegisterExternal("access:motor_vehicle:forward")
	config.RegisterExternal("access:motor_vehicle:backward")

	config.RegisterExternal("access:motorcar")
	config.RegisterExternal("access:motorcar:forward")
	config.RegisterExternal("access:motorcar:backward")

	config.RegisterInternal("area")
	config.RegisterInternal("natural")
	config.RegisterInternal("type")
	config.RegisterInternal("restriction")

	config.RegisterFeature(&NameFeature{})
	config.RegisterFeature(&NameAltFeature{})
	config.RegisterFeature(&RefFeature{})
	config.RegisterFeature(&AddressFeature{})
	config.RegisterFeature(&AccessFeature{})
	config.RegisterFeature(&LayerFeature{})
	config.RegisterFeature(&WidthFeature{})
	config.RegisterFeature(&MaxSpeedFeature{})
	config.RegisterFeature(&GradeFeature{})
	config.RegisterFeature(&BridgeFeature{})
	config.RegisterFeature(&TunnelFeature{})
	config.RegisterFeature(&RoundaboutFeature{})

	// the empty name claims type id 0, so that TypeIgnore is always
	// reserved
	config.ignoreType = config.AddTypeInfo(NewTypeInfo(""))

	// internal type for showing routes
	route := NewTypeInfo("_route")
	route.CanBeWay = true
	config.AddTypeInfo(route)

	// internal types for the land/sea/coast tiles building the base layer
	// for map drawing
	for _, name := range []string{"_tile_land", "_tile_sea", "_tile_coast", "_tile_unknown"} {
		tileType := NewTypeInfo(name)
		tileType.CanBeArea = true
		config.AddTypeInfo(tileType)
	}

	tileCoastline := NewTypeInfo("_tile_coastline")
	tileCoastline.CanBeWay = true
	config.AddTypeInfo(tileCoastline)

	config.tagType = config.TagID("type")

	return config
}

// RegisterNameTag marks a tag as a name source with the given priority.
// Higher priorities win when an object carries several name tags.
func (c *TypeConfig) RegisterNameTag(name string, priority uint32) TagID {
	id := c.RegisterExternal(name)
	c.nameTagPriorities[id] = priority
	return id
}

func (c *TypeConfig) RegisterNameAltTag(name string, priority uint32) TagID {
	id := c.RegisterExternal(name)
	c.nameAltTagPriorities[id] = priority
	return id
}

func (c *TypeConfig) IsNameTag(id TagID) (uint32, bool) {
	priority, ok := c.nameTagPriorities[id]
	return priority, ok
}

func (c *TypeConfig) IsNameAltTag(id TagID) (uint32, bool) {
	priority, ok := c.nameAltTagPriorities[id]
	return priority, ok
}

// RegisterFeature publishes a feature under its name and lets it register
// and cache the tags it needs. Each feature is initialized exactly once.
func (c *TypeConfig) RegisterFeature(feature Feature) {
	_, alreadyRegistered := c.features[feature.Name()]
	if alreadyRegistered {
		return
	}

	c.features[feature.Name()] = feature
	feature.Initialize(c)
}

// GetFeature returns the feature registered under name, or nil.
func (c *TypeConfig) GetFeature(name string) Feature {
	return c.features[name]
}

// AddTypeInfo registers a type and assigns its id. Registering a name twice
// keeps the first registration. Types that may be a node or an area
// automatically gain the address feature.
func (c *TypeConfig) AddTypeInfo(typeInfo *TypeInfo) *TypeInfo {
	existing, ok := c.nameToType[typeInfo.Name()]
	if ok {
		return existing
	}

	if (typeInfo.CanBeArea || typeInfo.CanBeNode) &&
		!typeInfo.HasFeature(AddressFeatureName) {
		// cannot fail: the feature is known not to be on the type yet
		typeInfo.AddFeature(c.GetFeature(AddressFeatureName))
	}

	typeInfo.id = c.nextTypeID
	c.nextTypeID++

	c.types = append(c.types, typeInfo)
	c.nameToType[typeInfo.Name()] = typeInfo
	c.idToType[typeInfo.id] = typeInfo

	return typeInfo
}

// Types returns all declared types in registration (priority) order.
func (c *TypeConfig) Types() []*TypeInfo {
	return c.types
}

func (c *TypeConfig) IgnoreType() *TypeInfo {
	return c.ignoreType
}

func (c *TypeConfig) GetTypeInfo(id TypeID) (*TypeInfo, bool) {
	typeInfo, ok := c.idToType[id]
	return typeInfo, ok
}

func (c *TypeConfig) GetMaxTypeID() TypeID {
	if c.nextTypeID == 0 {
		return 0
	}
	return c.nextTypeID - 1
}

// GetNodeType classifies a node tag set: the first type, in registration
// order, with a matching node-scoped condition wins. No match classifies as
// the ignore type.
func (c *TypeConfig) GetNodeType(tags TagMap) *TypeInfo {
	if len(tags) == 0 {
		return c.ignoreType
	}

	for _, typeInfo := range c.types {
		if !typeInfo.HasConditions() || !typeInfo.CanBeNode {
			continue
		}

		for _, cond := range typeInfo.Conditions() {
			if cond.Kinds&EntityNode == 0 {
				continue
			}

			if cond.Condition.Evaluate(tags) {
				return typeInfo
			}
		}
	}

	return c.ignoreType
}

// GetWayAreaTypes classifies a tag set as a way and as an area
// independently: the first matching way-scoped condition fixes the way
// type, the first matching area-scoped condition fixes the area type, and
// scanning stops once both are fixed. A tag set may well classify as both,
// under different types.
func (c *TypeConfig) GetWayAreaTypes(tags TagMap) (wayType, areaType *TypeInfo) {
	wayType = c.ignoreType
	areaType = c.ignoreType

	if len(tags) == 0 {
		return wayType, areaType
	}

	for _, typeInfo := range c.types {
		if !typeInfo.HasConditions() || !(typeInfo.CanBeWay || typeInfo.CanBeArea) {
			continue
		}

		for _, cond := range typeInfo.Conditions() {
			if cond.Kinds&(EntityWay|EntityArea) == 0 {
				continue
			}

			if !cond.Condition.Evaluate(tags) {
				continue
			}

			if wayType == c.ignoreType && cond.Kinds&EntityWay != 0 {
				wayType = typeInfo
			}
			if areaType == c.ignoreType && cond.Kinds&EntityArea != 0 {
				areaType = typeInfo
			}

			if wayType != c.ignoreType && areaType != c.ignoreType {
				return wayType, areaType
			}
		}
	}

	return wayType, areaType
}

// GetRelationType classifies a relation tag set. Multipolygon relations
// are matched against area-capable types, everything else against
// relation-capable types.
func (c *TypeConfig) GetRelationType(tags TagMap) *TypeInfo {
	if len(tags) == 0 {
		return c.ignoreType
	}

	scopeKind := EntityRelation
	if tags[c.tagType] == "multipolygon" {
		scopeKind = EntityArea
	}

	for _, typeInfo := range c.types {
		if !typeInfo.HasConditions() {
			continue
		}
		if scopeKind == EntityArea && !typeInfo.CanBeArea {
			continue
		}
		if scopeKind == EntityRelation && !typeInfo.CanBeRelation {
			continue
		}

		for _, cond := range typeInfo.Conditions() {
			if cond.Kinds&scopeKind == 0 {
				continue
			}

			if cond.Condition.Evaluate(tags) {
				return typeInfo
			}
		}
	}

	return c.ignoreType
}

func (c *TypeConfig) GetTypeID(name string) TypeID {
	typeInfo, ok := c.nameToType[name]
	if !ok {
		return TypeIgnore
	}
	return typeInfo.ID()
}

func (c *TypeConfig) GetNodeTypeID(name string) TypeID {
	typeInfo, ok := c.nameToType[name]
	if !ok || !typeInfo.CanBeNode {
		return TypeIgnore
	}
	return typeInfo.ID()
}

func (c *TypeConfig) GetWayTypeID(name string) TypeID {
	typeInfo, ok := c.nameToType[name]
	if !ok || !typeInfo.CanBeWay {
		return TypeIgnore
	}
	return typeInfo.ID()
}

func (c *TypeConfig) GetAreaTypeID(name string) TypeID {
	typeInfo, ok := c.nameToType[name]
	if !ok || !typeInfo.CanBeArea {
		return TypeIgnore
	}
	return typeInfo.ID()
}

func (c *TypeConfig) GetRelationTypeID(name string) TypeID {
	typeInfo, ok := c.nameToType[name]
	if !ok || !typeInfo.CanBeRelation {
		return TypeIgnore
	}
	return typeInfo.ID()
}

// GetWayTypes returns the ids of all non-ignored way-capable types.
func (c *TypeConfig) GetWayTypes() []TypeID {
	var ids []TypeID
	for _, typeInfo := range c.types {
		if typeInfo.ID() == TypeIgnore || typeInfo.Ignore {
			continue
		}
		if typeInfo.CanBeWay {
			ids = append(ids, typeInfo.ID())
		}
	}
	return ids
}

// GetAreaTypes returns the ids of all non-ignored area-capable types.
func (c *TypeConfig) GetAreaTypes() []TypeID {
	var ids []TypeID
	for _, typeInfo := range c.types {
		if typeInfo.ID() == TypeIgnore || typeInfo.Ignore {
			continue
		}
		if typeInfo.CanBeArea {
			ids = append(ids, typeInfo.ID())
		}
	}
	return ids
}

// GetRoutables returns the ids of all types routable by any travel mode.
func (c *TypeConfig) GetRoutables() []TypeID {
	var ids []TypeID
	for _, typeInfo := range c.types {
		if typeInfo.CanRouteFoot || typeInfo.CanRouteBicycle || typeInfo.CanRouteCar {
			ids = append(ids, typeInfo.ID())
		}
	}
	return ids
}

func (c *TypeConfig) GetIndexAsLocationTypes() []TypeID {
	var ids []TypeID
	for _, typeInfo := range c.types {
		if typeInfo.IndexAsLocation {
			ids = append(ids, typeInfo.ID())
		}
	}
	return ids
}

func (c *TypeConfig) GetIndexAsRegionTypes() []TypeID {
	var ids []TypeID
	for _, typeInfo := range c.types {
		if typeInfo.IndexAsRegion {
			ids = append(ids, typeInfo.ID())
		}
	}
	return ids
}

func (c *TypeConfig) GetIndexAsPOITypes() []TypeID {
	var ids []TypeID
	for _, typeInfo := range c.types {
		if typeInfo.IndexAsPOI {
			ids = append(ids, typeInfo.ID())
		}
	}
	return ids
}

// RegisterSurfaceToGradeMapping maps a surface tag value to a grade for
// the Grade feature.
func (c *TypeConfig) RegisterSurfaceToGradeMapping(surface string, grade uint8) {
	c.surfaceToGrade[surface] = grade
}

func (c *TypeConfig) GradeForSurface(surface string) (uint8, bool) {
	grade, ok := c.surfaceToGrade[surface]
	return grade, ok
}

// ResolveTags filters a tag map down to the externally visible tags, in
// tag id order.
func (c *TypeConfig) ResolveTags(tags TagMap) []Tag {
	var resolved []Tag
	for _, tagInfo := range c.Tags() {
		value, ok := tags[tagInfo.ID]
		if !ok || tagInfo.InternalOnly {
			continue
		}

		resolved = append(resolved, Tag{
			Key:   tagInfo.ID,
			Value: value,
		})
	}
	return resolved
}
