// Seed populates the catalog graph from a YAML file. Re-running is safe:
// node ids are content-addressed from names, so existing entries are merged.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarun2104/training-app/internal/data/graph"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/platform/neo4jdb"
	"github.com/sarun2104/training-app/internal/services"
)

type seedLink struct {
	URL   string `yaml:"url"`
	Label string `yaml:"label"`
}

type seedCourse struct {
	Name    string       `yaml:"name"`
	Links   []seedLink   `yaml:"links"`
	Courses []seedCourse `yaml:"courses"`
}

type seedSubTrack struct {
	Name    string       `yaml:"name"`
	Courses []seedCourse `yaml:"courses"`
}

type seedTrack struct {
	Name      string         `yaml:"name"`
	SubTracks []seedSubTrack `yaml:"subtracks"`
	Courses   []seedCourse   `yaml:"courses"`
}

type seedFile struct {
	Tracks []seedTrack `yaml:"tracks"`
}

func main() {
	path := flag.String("file", "catalog.yaml", "path to the catalog YAML file")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Could not read catalog file", "path", *path, "error", err)
	}
	var catalog seedFile
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		log.Fatal("Could not parse catalog file", "path", *path, "error", err)
	}

	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("Graph connection failed", "error", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	store := graph.NewCatalogStore(client, log)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("Graph schema init failed", "error", err)
	}
	catalogService := services.NewCatalogService(store, log)

	var courses, links int
	var loadCourses func(parentID string, parentKind types.NodeKind, items []seedCourse) error
	loadCourses = func(parentID string, parentKind types.NodeKind, items []seedCourse) error {
		for _, item := range items {
			course, err := catalogService.CreateCourse(ctx, item.Name, parentID, parentKind)
			if err != nil {
				return fmt.Errorf("course %q: %w", item.Name, err)
			}
			courses++
			for _, link := range item.Links {
				if _, err := catalogService.AddLink(ctx, course.CourseID, link.URL, link.Label); err != nil {
					return fmt.Errorf("link %q on course %q: %w", link.URL, item.Name, err)
				}
				links++
			}
			if err := loadCourses(course.CourseID, types.KindCourse, item.Courses); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range catalog.Tracks {
		track, err := catalogService.CreateTrack(ctx, t.Name)
		if err != nil {
			log.Fatal("Track create failed", "track", t.Name, "error", err)
		}
		if err := loadCourses(track.TrackID, types.KindTrack, t.Courses); err != nil {
			log.Fatal("Course load failed", "track", t.Name, "error", err)
		}
		for _, st := range t.SubTracks {
			subtrack, err := catalogService.CreateSubTrack(ctx, st.Name, track.TrackID)
			if err != nil {
				log.Fatal("SubTrack create failed", "subtrack", st.Name, "error", err)
			}
			if err := loadCourses(subtrack.SubTrackID, types.KindSubTrack, st.Courses); err != nil {
				log.Fatal("Course load failed", "subtrack", st.Name, "error", err)
			}
		}
	}

	log.Info("Catalog seeded", "tracks", len(catalog.Tracks), "courses", courses, "links", links)
}
