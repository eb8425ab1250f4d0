package ingest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nadissa1508/CC3089-LAB-4/internal/config"
	mdb "github.com/nadissa1508/CC3089-LAB-4/internal/mongo"
)

var ErrInvalidManifest = errors.New("invalid dataset manifest")

// Dataset describes one CSV source and the collection it fully replaces.
type Dataset struct {
	Name       string     `yaml:"name"`
	Path       string     `yaml:"path"`
	Collection string     `yaml:"collection"`
	Required   []string   `yaml:"required"`
	Indexes    [][]string `yaml:"indexes,omitempty"`
}

type Manifest struct {
	Datasets []Dataset `yaml:"datasets"`
}

func DefaultDatasets(restaurantsPath, ratingsPath string) []Dataset {
	return []Dataset{
		{
			Name:       "restaurants",
			Path:       restaurantsPath,
			Collection: mdb.RestaurantsCollection,
			Required:   []string{"placeID", "name"},
			Indexes:    [][]string{{"placeID"}},
		},
		{
			Name:       "ratings",
			Path:       ratingsPath,
			Collection: mdb.RatingsCollection,
			Required:   []string{"userID", "placeID"},
			Indexes:    [][]string{{"userID", "placeID"}, {"placeID"}},
		},
	}
}

// DatasetsFor returns the manifest named by cfg.DatasetsFile, or the built-in
// restaurants and ratings datasets when none is configured.
func DatasetsFor(cfg config.Config) ([]Dataset, error) {
	if cfg.DatasetsFile == "" {
		return DefaultDatasets(cfg.RestaurantsCSV, cfg.RatingsCSV), nil
	}
	return LoadManifest(cfg.DatasetsFile)
}

func LoadManifest(path string) ([]Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) ([]Dataset, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := Validate(m.Datasets); err != nil {
		return nil, err
	}
	return m.Datasets, nil
}

func Validate(datasets []Dataset) error {
	if len(datasets) == 0 {
		return fmt.Errorf("%w: no datasets", ErrInvalidManifest)
	}
	collections := make(map[string]string, len(datasets))
	for i, d := range datasets {
		switch {
		case d.Name == "":
			return fmt.Errorf("%w: dataset %d has no name", ErrInvalidManifest, i)
		case d.Path == "":
			return fmt.Errorf("%w: dataset %q has no path", ErrInvalidManifest, d.Name)
		case d.Collection == "":
			return fmt.Errorf("%w: dataset %q has no collection", ErrInvalidManifest, d.Name)
		case len(d.Required) == 0:
			return fmt.Errorf("%w: dataset %q has no required fields", ErrInvalidManifest, d.Name)
		}
		if other, dup := collections[d.Collection]; dup {
			return fmt.Errorf("%w: datasets %q and %q both target %q", ErrInvalidManifest, other, d.Name, d.Collection)
		}
		collections[d.Collection] = d.Name
	}
	return nil
}
