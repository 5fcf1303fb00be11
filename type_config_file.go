package osmschema

import (
	"path/filepath"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/osmschema/binaryio"
)

// TypesDataFilename is the name of the persisted schema file inside a data
// directory.
const TypesDataFilename = "types.dat"

// StoreToDataFile writes the schema to "types.dat" in the given directory.
// The field order is fixed: tag table, name tags, alternative name tags,
// then the type table with its feature name lists.
func (c *TypeConfig) StoreToDataFile(fs gofs.Fs, directory string) errorsx.Error {
	file, err := fs.Create(filepath.Join(directory, TypesDataFilename))
	if err != nil {
		return errorsx.Wrap(err)
	}
	defer file.Close()

	writer := binaryio.NewWriter(file)

	wErr := c.writeSchema(writer)
	if wErr != nil {
		return wErr
	}

	return writer.Flush()
}

func (c *TypeConfig) writeSchema(writer *binaryio.Writer) errorsx.Error {
	tags := c.Tags()

	err := writer.WriteUvarint(uint64(len(tags)))
	if err != nil {
		return err
	}
	for _, tagInfo := range tags {
		err = writer.WriteUvarint(uint64(tagInfo.ID))
		if err != nil {
			return err
		}
		err = writer.WriteString(tagInfo.Name)
		if err != nil {
			return err
		}
		err = writer.WriteBool(tagInfo.InternalOnly)
		if err != nil {
			return err
		}
	}

	err = c.writePrioritisedTags(writer, c.IsNameTag)
	if err != nil {
		return err
	}

	err = c.writePrioritisedTags(writer, c.IsNameAltTag)
	if err != nil {
		return err
	}

	err = writer.WriteUvarint(uint64(len(c.types)))
	if err != nil {
		return err
	}
	for _, typeInfo := range c.types {
		err = writer.WriteUvarint(uint64(typeInfo.ID()))
		if err != nil {
			return err
		}
		err = writer.WriteString(typeInfo.Name())
		if err != nil {
			return err
		}

		for _, flag := range []bool{
			typeInfo.CanBeNode,
			typeInfo.CanBeWay,
			typeInfo.CanBeArea,
			typeInfo.CanBeRelation,
			typeInfo.CanRouteFoot,
			typeInfo.CanRouteBicycle,
			typeInfo.CanRouteCar,
			typeInfo.IndexAsLocation,
			typeInfo.IndexAsRegion,
			typeInfo.IndexAsPOI,
			typeInfo.OptimizeLowZoom,
			typeInfo.Multipolygon,
			typeInfo.PinWay,
			typeInfo.IgnoreSeaLand,
			typeInfo.Ignore,
		} {
			err = writer.WriteBool(flag)
			if err != nil {
				return err
			}
		}

		err = writer.WriteUvarint(uint64(typeInfo.FeatureCount()))
		if err != nil {
			return err
		}
		for _, instance := range typeInfo.Features() {
			err = writer.WriteString(instance.Feature().Name())
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *TypeConfig) writePrioritisedTags(writer *binaryio.Writer, isPrioritisedTag func(TagID) (uint32, bool)) errorsx.Error {
	var count uint64
	for _, tagInfo := range c.Tags() {
		_, ok := isPrioritisedTag(tagInfo.ID)
		if ok {
			count++
		}
	}

	err := writer.WriteUvarint(count)
	if err != nil {
		return err
	}

	for _, tagInfo := range c.Tags() {
		priority, ok := isPrioritisedTag(tagInfo.ID)
		if !ok {
			continue
		}

		err = writer.WriteUvarint(uint64(tagInfo.ID))
		if err != nil {
			return err
		}
		err = writer.WriteString(tagInfo.Name)
		if err != nil {
			return err
		}
		err = writer.WriteUvarint(uint64(priority))
		if err != nil {
			return err
		}
	}

	return nil
}

// NewTypeConfigFromDataFile loads a schema from "types.dat" in the given
// directory into a fresh TypeConfig. Every tag and type is re-registered
// through the normal registration API; the load fails if any id assigned
// during re-registration differs from the id recorded in the file, or if a
// feature name cannot be resolved. On failure no partially built config is
// returned.
func NewTypeConfigFromDataFile(fs gofs.Fs, directory string) (*TypeConfig, errorsx.Error) {
	file, err := fs.Open(filepath.Join(directory, TypesDataFilename))
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer file.Close()

	config := NewTypeConfig()

	rErr := config.readSchema(binaryio.NewReader(file))
	if rErr != nil {
		return nil, rErr
	}

	return config, nil
}

func (c *TypeConfig) readSchema(reader *binaryio.Reader) errorsx.Error {
	tagCount, err := reader.ReadUvarint()
	if err != nil {
		return err
	}

	for i := uint64(0); i < tagCount; i++ {
		requestedID, err := reader.ReadUvarint()
		if err != nil {
			return err
		}
		name, err := reader.ReadString()
		if err != nil {
			return err
		}
		internalOnly, err := reader.ReadBool()
		if err != nil {
			return err
		}

		var actualID TagID
		if internalOnly {
			actualID = c.RegisterInternal(name)
		} else {
			actualID = c.RegisterExternal(name)
		}

		if uint64(actualID) != requestedID {
			return errorsx.Errorf("tag %q: requested id %d but got %d; schema file must be loaded into a fresh config", name, requestedID, actualID)
		}
	}

	err = c.readPrioritisedTags(reader, c.RegisterNameTag)
	if err != nil {
		return err
	}

	err = c.readPrioritisedTags(reader, c.RegisterNameAltTag)
	if err != nil {
		return err
	}

	typeCount, err := reader.ReadUvarint()
	if err != nil {
		return err
	}

	for i := uint64(0); i < typeCount; i++ {
		requestedID, err := reader.ReadUvarint()
		if err != nil {
			return err
		}
		name, err := reader.ReadString()
		if err != nil {
			return err
		}

		typeInfo := NewTypeInfo(name)

		for _, flag := range []*bool{
			&typeInfo.CanBeNode,
			&typeInfo.CanBeWay,
			&typeInfo.CanBeArea,
			&typeInfo.CanBeRelation,
			&typeInfo.CanRouteFoot,
			&typeInfo.CanRouteBicycle,
			&typeInfo.CanRouteCar,
			&typeInfo.IndexAsLocation,
			&typeInfo.IndexAsRegion,
			&typeInfo.IndexAsPOI,
			&typeInfo.OptimizeLowZoom,
			&typeInfo.Multipolygon,
			&typeInfo.PinWay,
			&typeInfo.IgnoreSeaLand,
			&typeInfo.Ignore,
		} {
			*flag, err = reader.ReadBool()
			if err != nil {
				return err
			}
		}

		featureCount, err := reader.ReadUvarint()
		if err != nil {
			return err
		}

		for j := uint64(0); j < featureCount; j++ {
			featureName, err := reader.ReadString()
			if err != nil {
				return err
			}

			feature := c.GetFeature(featureName)
			if feature == nil {
				return errorsx.Errorf("feature %q not found", featureName)
			}

			err = typeInfo.AddFeature(feature)
			if err != nil {
				return err
			}
		}

		added := c.AddTypeInfo(typeInfo)
		if uint64(added.ID()) != requestedID {
			return errorsx.Errorf("type %q: requested id %d but got %d; schema file must be loaded into a fresh config", name, requestedID, added.ID())
		}
	}

	return nil
}

func (c *TypeConfig) readPrioritisedTags(reader *binaryio.Reader, register func(string, uint32) TagID) errorsx.Error {
	count, err := reader.ReadUvarint()
	if err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		requestedID, err := reader.ReadUvarint()
		if err != nil {
			return err
		}
		name, err := reader.ReadString()
		if err != nil {
			return err
		}
		priority, err := reader.ReadUvarint()
		if err != nil {
			return err
		}

		actualID := register(name, uint32(priority))
		if uint64(actualID) != requestedID {
			return errorsx.Errorf("name tag %q: requested id %d but got %d", name, requestedID, actualID)
		}
	}

	return nil
}
