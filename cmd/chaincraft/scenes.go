package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/rig"
)

// sceneFile is the JSON layout of a scenes file. Missing scenes keep their
// defaults; missing fields inside a scene keep the default scene's values.
type sceneFile struct {
	SceneA *rig.Rig `json:"scene_a"`
	SceneB *rig.Rig `json:"scene_b"`
}

// loadScenes returns the default scenes overlaid with path, if set.
func loadScenes(path string) (a, b rig.Rig, err error) {
	a, b = rig.DefaultSceneA(), rig.DefaultSceneB()
	if path == "" {
		return a, b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return a, b, fmt.Errorf("read scenes: %w", err)
	}

	f := sceneFile{SceneA: &a, SceneB: &b}
	if err := json.Unmarshal(data, &f); err != nil {
		return a, b, fmt.Errorf("parse scenes %s: %w", path, err)
	}

	if err := rig.Validate(a); err != nil {
		return a, b, fmt.Errorf("scenes %s: scene_a: %w", path, err)
	}

	if err := rig.Validate(b); err != nil {
		return a, b, fmt.Errorf("scenes %s: scene_b: %w", path, err)
	}

	return a, b, nil
}

// newEngine builds an engine with the scenes from path.
func newEngine(sampleRate float64, scenesPath string, opts ...engine.Option) (*engine.Engine, error) {
	a, b, err := loadScenes(scenesPath)
	if err != nil {
		return nil, err
	}

	return engine.New(sampleRate, append([]engine.Option{engine.WithScenes(a, b)}, opts...)...)
}
