// Package assets embeds the stage files shipped with the game.
package assets

import (
	"embed"
	"fmt"

	"github.com/automoto/doomerang-arena/shared/leveldata"
)

// StagesDir is the directory holding .tmx stages inside Stages.
const StagesDir = "stages"

//go:embed stages
var Stages embed.FS

// LoadStage loads a bundled stage by name.
func LoadStage(name string) (*leveldata.Stage, error) {
	stage, err := leveldata.LoadStage(Stages, StagesDir+"/"+name+".tmx")
	if err != nil {
		return nil, fmt.Errorf("bundled stage %q: %w", name, err)
	}
	return stage, nil
}

// StageNames lists the bundled stages, sorted.
func StageNames() ([]string, error) {
	_, names, err := leveldata.LoadAllStages(Stages, StagesDir)
	return names, err
}
