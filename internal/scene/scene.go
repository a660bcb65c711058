// Package scene defines the render data supplied by the external story
// editor: an ordered scene list with character placements, narration and
// camera parameters. This core treats it as read-only input.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CharacterPlacement is one character's authored position in a scene.
type CharacterPlacement struct {
	RigID       string  `yaml:"rig"`
	Name        string  `yaml:"name"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Scale       float64 `yaml:"scale"`
	FlipX       bool    `yaml:"flipX,omitempty"`
	AnimationID string  `yaml:"animation,omitempty"`
	Expression  string  `yaml:"expression,omitempty"`
}

// SceneRenderData is one scene as handed over by the editor.
type SceneRenderData struct {
	ID           string               `yaml:"id"`
	DurationMs   float64              `yaml:"duration"`
	BackgroundID string               `yaml:"background"`
	Mood         string               `yaml:"mood,omitempty"`
	Narration    string               `yaml:"narration,omitempty"`
	Characters   []CharacterPlacement `yaml:"characters,omitempty"`
	CameraZoom   float64              `yaml:"cameraZoom,omitempty"`
	CameraPanX   float64              `yaml:"cameraPanX,omitempty"`
	CameraPanY   float64              `yaml:"cameraPanY,omitempty"`
}

// Storyboard is the YAML document the CLI feeds to the exporter; it
// stands in for the editor collaborator.
type Storyboard struct {
	Version  string            `yaml:"version"`
	Title    string            `yaml:"title,omitempty"`
	ShareURL string            `yaml:"shareUrl,omitempty"`
	Scenes   []SceneRenderData `yaml:"scenes"`
}

// LoadStoryboard reads and validates a storyboard file.
func LoadStoryboard(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sb Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("parse storyboard %s: %w", path, err)
	}
	if err := sb.Validate(); err != nil {
		return nil, fmt.Errorf("storyboard %s: %w", path, err)
	}
	return &sb, nil
}

// SaveStoryboard writes a storyboard to a YAML file.
func SaveStoryboard(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects storyboards the pipeline cannot render. It never
// mutates the document; unset zoom and scale values read as 1 through
// Zoom and EffectiveScale.
func (sb *Storyboard) Validate() error {
	if len(sb.Scenes) == 0 {
		return fmt.Errorf("no scenes")
	}
	for i := range sb.Scenes {
		sc := &sb.Scenes[i]
		if sc.DurationMs <= 0 {
			return fmt.Errorf("scene %d (%s): duration must be positive", i, sc.ID)
		}
		for j := range sc.Characters {
			if sc.Characters[j].RigID == "" {
				return fmt.Errorf("scene %d (%s): character %d has no rig id", i, sc.ID, j)
			}
		}
	}
	return nil
}

// Zoom is the camera zoom with the unset value defaulted to 1.
func (sc *SceneRenderData) Zoom() float64 {
	if sc.CameraZoom <= 0 {
		return 1
	}
	return sc.CameraZoom
}

// EffectiveScale is the authored scale with the unset value defaulted
// to 1.
func (cp *CharacterPlacement) EffectiveScale() float64 {
	if cp.Scale <= 0 {
		return 1
	}
	return cp.Scale
}

// TotalDurationMs sums the scene durations.
func (sb *Storyboard) TotalDurationMs() float64 {
	total := 0.0
	for i := range sb.Scenes {
		total += sb.Scenes[i].DurationMs
	}
	return total
}
