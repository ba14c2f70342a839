package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group and object names read from stage files.
const (
	groupStage  = "Stage"
	groupSpawns = "PlayerSpawn"

	objectGround    = "ground"
	objectWallLeft  = "wall_left"
	objectWallRight = "wall_right"
)

// ErrNoGround is returned for a stage file without a ground object.
var ErrNoGround = errors.New("stage has no ground object")

// ErrTooFewSpawns is returned when a stage defines fewer than two spawns.
var ErrTooFewSpawns = errors.New("stage needs two spawn points")

// LoadStage parses a TMX file into a Stage. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func LoadStage(fsys fs.FS, tmxPath string) (*Stage, error) {
	stageMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	stage := &Stage{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  stageMap.Width * stageMap.TileWidth,
		Height: stageMap.Height * stageMap.TileHeight,
	}
	stage.WallMax = float64(stage.Width)

	hasGround := false
	for _, og := range stageMap.ObjectGroups {
		switch og.Name {
		case groupStage:
			for _, o := range og.Objects {
				switch o.Name {
				case objectGround:
					stage.GroundLevel = o.Y
					hasGround = true
				case objectWallLeft:
					stage.WallMin = o.X
				case objectWallRight:
					stage.WallMax = o.X
				}
			}
		case groupSpawns:
			for _, o := range og.Objects {
				stage.Spawns = append(stage.Spawns, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	if !hasGround {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoGround)
	}
	if len(stage.Spawns) < 2 {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrTooFewSpawns)
	}

	// Spawn index decides slot order; x breaks ties.
	sort.Slice(stage.Spawns, func(i, j int) bool {
		a, b := stage.Spawns[i], stage.Spawns[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.X < b.X
	})

	return stage, nil
}

// LoadAllStages discovers all .tmx files in stagesDir within fsys, loads
// each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllStages(fsys fs.FS, stagesDir string) (map[string]*Stage, []string, error) {
	pattern := stagesDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", stagesDir)
	}

	stages := make(map[string]*Stage, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		stage, err := LoadStage(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stages[stage.Name] = stage
		names = append(names, stage.Name)
	}

	sort.Strings(names)
	return stages, names, nil
}
