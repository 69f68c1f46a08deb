// fetchdata downloads a game-version data set and installs the three
// manifests the client loads at startup (blocks, biomes, entities) into the
// data directory, then runs them through the version loader to make sure
// the client will accept them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/minecraft-client/internal/client/config"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		base     = flag.String("base", "https://github.com/PrismarineJS/minecraft-data.git", "repository holding the per-version data sets")
		platform = flag.String("platform", "pc", "platform of the data set")
		ver      = flag.String("version", "1.19.4", "game version of the data set")
		dataDir  = flag.String("data-dir", cfg.DataDir, "directory the client loads manifests from")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(log, *base, *platform, *ver, *dataDir); err != nil {
		log.Error("fetch manifests", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, base, platform, ver, dataDir string) error {
	if base == "" || platform == "" || ver == "" {
		return fmt.Errorf("base, platform and version must all be set")
	}

	// The data set lands in a per-version staging directory first, so a
	// failed download never clobbers manifests the client is already using.
	staging := filepath.Join(dataDir, fmt.Sprintf("%s-%s", platform, ver))
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clear staging directory %s: %w", staging, err)
	}

	url := fmt.Sprintf("git::%s//data/%s/%s", base, platform, ver)
	log.Info("downloading data set", "url", url, "staging", staging)
	if err := get.Get(staging, url); err != nil {
		return fmt.Errorf("download data set: %w", err)
	}

	for _, name := range []string{version.BlocksFile, version.BiomesFile, version.EntitiesFile} {
		src := filepath.Join(staging, name)
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("data set for %s/%s has no %s: %w", platform, ver, name, version.ErrConfigMissing)
		}
		if err := os.Rename(src, filepath.Join(dataDir, name)); err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
	}

	// The loader is the arbiter of whether the manifests are usable.
	v, err := version.Load(dataDir)
	if err != nil {
		return fmt.Errorf("validate installed manifests: %w", err)
	}

	log.Info("manifests installed",
		"dir", dataDir,
		"blockStates", len(v.BlockStates),
		"biomes", len(v.Biomes),
		"entities", len(v.Entities),
	)
	return nil
}
