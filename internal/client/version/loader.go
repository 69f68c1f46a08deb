package version

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AirClass is the manifest class of blocks that count as air.
const AirClass = "AirBlock"

// Manifest file names looked up inside the version directory.
const (
	BlocksFile   = "blocks.json"
	BiomesFile   = "biomes.json"
	EntitiesFile = "entities.json"
)

// blockEntry is one block in the version manifest: its id, the block states
// it owns, and the implementation class the game assigns it.
type blockEntry struct {
	ID     int32  `json:"id"`
	Class  string `json:"class"`
	States []struct {
		ID int32 `json:"id"`
	} `json:"states"`
}

type biomeEntry struct {
	ID int32 `json:"id"`
}

type entityEntry struct {
	ID int32 `json:"id"`
}

// Load reads the manifests from dir and builds the palettes.
func Load(dir string) (*Version, error) {
	v := &Version{}

	var blocks map[string]blockEntry
	if err := readManifest(filepath.Join(dir, BlocksFile), &blocks); err != nil {
		return nil, err
	}
	var biomes map[string]biomeEntry
	if err := readManifest(filepath.Join(dir, BiomesFile), &biomes); err != nil {
		return nil, err
	}
	var entities map[string]entityEntry
	if err := readManifest(filepath.Join(dir, EntitiesFile), &entities); err != nil {
		return nil, err
	}

	v.BlockTypes = buildPalette(len(blocks), func(yield func(int32, string)) {
		for name, b := range blocks {
			yield(b.ID, name)
		}
	})
	v.Biomes = buildPalette(len(biomes), func(yield func(int32, string)) {
		for name, b := range biomes {
			yield(b.ID, name)
		}
	})
	v.Entities = buildPalette(len(entities), func(yield func(int32, string)) {
		for name, e := range entities {
			yield(e.ID, name)
		}
	})

	// Block states form one contiguous space across all blocks; every state
	// resolves to the identifier of the block that owns it.
	v.BlockStates = buildPalette(0, func(yield func(int32, string)) {
		for name, b := range blocks {
			for _, s := range b.States {
				yield(s.ID, name)
			}
		}
	})

	for name, b := range blocks {
		if b.Class == AirClass {
			v.AirTypes = append(v.AirTypes, name)
		}
	}

	return v, nil
}

func readManifest(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, ErrConfigMissing)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %v: %w", path, err, ErrConfigMissing)
	}
	return nil
}

// buildPalette collects (id, name) pairs and sizes the palette to the
// highest id seen plus one.
func buildPalette(sizeHint int, fill func(yield func(int32, string))) Palette {
	entries := make(map[int32]string, sizeHint)
	maxID := int32(-1)
	fill(func(id int32, name string) {
		entries[id] = name
		if id > maxID {
			maxID = id
		}
	})
	palette := make(Palette, maxID+1)
	for id, name := range entries {
		palette[id] = name
	}
	return palette
}
