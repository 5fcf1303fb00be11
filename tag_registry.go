package osmschema

// TagRegistry interns tag key strings to TagIDs. Ids are assigned
// sequentially and never reused within one registry instance.
//
// Tags registered for internal use are only needed while importing data;
// tags registered for external use are also queryable/exported afterwards.
// Registering an existing internal tag for external use promotes it in
// place, keeping its id. The reverse never happens.
type TagRegistry struct {
	tags        []TagInfo
	nameToTagID map[string]TagID
	nextTagID   TagID
}

func NewTagRegistry() *TagRegistry {
	registry := &TagRegistry{
		nameToTagID: make(map[string]TagID),
	}

	// the empty name claims id 0, so that TagIgnore is always reserved
	registry.RegisterInternal("")

	return registry
}

func (r *TagRegistry) RegisterInternal(name string) TagID {
	id, ok := r.nameToTagID[name]
	if ok {
		return id
	}

	return r.register(name, true)
}

func (r *TagRegistry) RegisterExternal(name string) TagID {
	id, ok := r.nameToTagID[name]
	if ok {
		r.tags[id].InternalOnly = false
		return id
	}

	return r.register(name, false)
}

func (r *TagRegistry) register(name string, internalOnly bool) TagID {
	id := r.nextTagID
	r.nextTagID++

	r.tags = append(r.tags, TagInfo{
		ID:           id,
		Name:         name,
		InternalOnly: internalOnly,
	})
	r.nameToTagID[name] = id

	return id
}

// TagID looks a key up by exact name. Unknown keys resolve to TagIgnore.
func (r *TagRegistry) TagID(name string) TagID {
	id, ok := r.nameToTagID[name]
	if !ok {
		return TagIgnore
	}
	return id
}

func (r *TagRegistry) TagInfo(id TagID) (TagInfo, bool) {
	if int(id) >= len(r.tags) {
		return TagInfo{}, false
	}
	return r.tags[id], true
}

// Tags returns all interned tags in id order, including the id-0 sentinel.
func (r *TagRegistry) Tags() []TagInfo {
	return r.tags
}
