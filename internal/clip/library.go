package clip

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Library is a YAML document holding a set of named clips.
type Library struct {
	Version string `yaml:"version"`
	Clips   []Clip `yaml:"clips"`
}

// LoadLibrary reads and validates a clip library file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse clip library %s: %w", path, err)
	}
	for i := range lib.Clips {
		if err := lib.Clips[i].Validate(); err != nil {
			return nil, fmt.Errorf("clip library %s: %w", path, err)
		}
	}
	return &lib, nil
}

// SaveLibrary writes a clip library to a YAML file.
func SaveLibrary(lib *Library, path string) error {
	data, err := yaml.Marshal(lib)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ByID indexes the library's clips by id. Later duplicates win.
func (l *Library) ByID() map[string]*Clip {
	out := make(map[string]*Clip, len(l.Clips))
	for i := range l.Clips {
		out[l.Clips[i].ID] = &l.Clips[i]
	}
	return out
}
