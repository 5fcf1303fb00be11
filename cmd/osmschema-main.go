package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/osmschema"
	"github.com/jamesrr39/semaphore"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"gopkg.in/alecthomas/kingpin.v2"
)

var logger *logpkg.Logger

func main() {
	verbose := kingpin.Flag("v", "verbose logging").Bool()

	// flag values are only populated during Parse, so the logger is built
	// once parsing has run, before any command action
	kingpin.CommandLine.PreAction(func(ctx *kingpin.ParseContext) error {
		logger = logpkg.NewLogger(os.Stderr, logLevelForVerbose(*verbose))
		return nil
	})

	setupCreate()
	setupDump()
	setupClassify()

	kingpin.Parse()
}

func logLevelForVerbose(verbose bool) logpkg.LogLevel {
	if verbose {
		return logpkg.LogLevelDebug
	}
	return logpkg.LogLevelInfo
}

func setupCreate() {
	cmd := kingpin.Command("create", "write the built-in schema to a data directory")
	dataDir := cmd.Arg("data-dir", "directory to write types.dat into").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		config := osmschema.NewTypeConfig()

		err := config.StoreToDataFile(gofs.NewOsFs(), *dataDir)
		if err != nil {
			log.Fatalf("failed to write schema: %q\n%s\n", err.Error(), err.Stack())
		}

		logger.Info("wrote %d tags and %d types to %q", len(config.Tags()), len(config.Types()), *dataDir)
		return nil
	})
}

func setupDump() {
	cmd := kingpin.Command("dump", "print the schema stored in a data directory")
	dataDir := cmd.Arg("data-dir", "directory containing types.dat").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		config, err := osmschema.NewTypeConfigFromDataFile(gofs.NewOsFs(), *dataDir)
		if err != nil {
			log.Fatalf("failed to load schema: %q\n%s\n", err.Error(), err.Stack())
		}

		dumpConfig(config)
		return nil
	})
}

func dumpConfig(config *osmschema.TypeConfig) {
	fmt.Println("tags:")
	for _, tagInfo := range config.Tags() {
		visibility := "external"
		if tagInfo.InternalOnly {
			visibility = "internal"
		}
		fmt.Printf("  %4d %-24q %s\n", tagInfo.ID, tagInfo.Name, visibility)
	}

	fmt.Println("types:")
	for _, typeInfo := range config.Types() {
		var kinds []string
		if typeInfo.CanBeNode {
			kinds = append(kinds, "node")
		}
		if typeInfo.CanBeWay {
			kinds = append(kinds, "way")
		}
		if typeInfo.CanBeArea {
			kinds = append(kinds, "area")
		}
		if typeInfo.CanBeRelation {
			kinds = append(kinds, "relation")
		}

		fmt.Printf("  %4d %-32q kinds: %v\n", typeInfo.ID(), typeInfo.Name(), kinds)
		for _, instance := range typeInfo.Features() {
			fmt.Printf("         feature %q (bit %d, offset %d)\n",
				instance.Feature().Name(), instance.FeatureBit(), instance.Offset())
		}
	}
}

func setupClassify() {
	cmd := kingpin.Command("classify", "classify the objects in a PBF file and print a histogram of matched types")
	pbfFilePath := cmd.Arg("file", "PBF file to scan").Required().String()
	dataDir := cmd.Flag("data-dir", "load the schema from this data directory instead of using the built-in schema").String()
	maxConcurrentOps := cmd.Flag("max-concurrent-ops", "maximum amount of objects classified at once").Default(fmt.Sprintf("%d", runtime.NumCPU())).Uint()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		err := runClassify(*pbfFilePath, *dataDir, *maxConcurrentOps)
		if err != nil {
			log.Fatalf("classify failed: %q\n%s\n", err.Error(), err.Stack())
		}
		return nil
	})
}

func runClassify(pbfFilePath, dataDir string, maxConcurrentOps uint) errorsx.Error {
	fs := gofs.NewOsFs()

	var config *osmschema.TypeConfig
	var err errorsx.Error
	if dataDir != "" {
		config, err = osmschema.NewTypeConfigFromDataFile(fs, dataDir)
		if err != nil {
			return err
		}
	} else {
		config = osmschema.NewTypeConfig()
	}

	file, openErr := fs.Open(pbfFilePath)
	if openErr != nil {
		return errorsx.Wrap(openErr, "filePath", pbfFilePath)
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.NumCPU())
	defer scanner.Close()

	reporter := osmschema.NewLoggerProblemReporter(logger)

	var mu sync.Mutex
	countsByTypeName := make(map[string]int64)
	var unclassified int64

	addResult := func(typeInfo *osmschema.TypeInfo) {
		mu.Lock()
		defer mu.Unlock()

		if typeInfo == nil || typeInfo == config.IgnoreType() {
			unclassified++
			return
		}
		countsByTypeName[typeInfo.Name()]++
	}

	sema := semaphore.NewSemaphore(maxConcurrentOps)
	for scanner.Scan() {
		object := scanner.Object()

		sema.Add()
		go func(object osm.Object) {
			defer sema.Done()

			classifyObject(config, reporter, object, addResult)
		}(object)
	}
	sema.Wait()

	scanErr := scanner.Err()
	if scanErr != nil {
		return errorsx.Wrap(scanErr)
	}

	printHistogram(countsByTypeName, unclassified)
	return nil
}

func classifyObject(config *osmschema.TypeConfig, reporter osmschema.ProblemReporter, object osm.Object, addResult func(*osmschema.TypeInfo)) {
	switch obj := object.(type) {
	case *osm.Node:
		tagMap := osmschema.TagMapFromOSMTags(config.TagRegistry, obj.Tags)
		addResult(config.GetNodeType(tagMap))
	case *osm.Way:
		tagMap := osmschema.TagMapFromOSMTags(config.TagRegistry, obj.Tags)
		wayType, areaType := config.GetWayAreaTypes(tagMap)

		// closed ways are eligible for area types
		if areaType != config.IgnoreType() && len(obj.Nodes) > 2 && obj.Nodes[0].ID == obj.Nodes[len(obj.Nodes)-1].ID {
			addResult(areaType)
			return
		}
		addResult(wayType)
	case *osm.Relation:
		tagMap := osmschema.TagMapFromOSMTags(config.TagRegistry, obj.Tags)
		addResult(config.GetRelationType(tagMap))
	default:
		logger.Debug("skipping object of type %T", object)
	}
}

func printHistogram(countsByTypeName map[string]int64, unclassified int64) {
	type typeCount struct {
		TypeName string
		Count    int64
	}

	var typeCounts []typeCount
	for typeName, count := range countsByTypeName {
		typeCounts = append(typeCounts, typeCount{typeName, count})
	}

	sort.Slice(typeCounts, func(a, b int) bool {
		if typeCounts[a].Count != typeCounts[b].Count {
			return typeCounts[a].Count > typeCounts[b].Count
		}
		return typeCounts[a].TypeName < typeCounts[b].TypeName
	})

	for _, tc := range typeCounts {
		fmt.Printf("%10d %s\n", tc.Count, tc.TypeName)
	}
	fmt.Printf("%10d (unclassified)\n", unclassified)
}
