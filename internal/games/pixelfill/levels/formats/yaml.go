// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
//
// Maps are written row by row as flow sequences:
//
//	pixel_map:
//	  - [0, 3, 3, 0]
type YAMLLevel struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Size       int               `yaml:"size"`
	Capacity   *int              `yaml:"capacity,omitempty"` // nil means 1
	LayerOrder []int             `yaml:"layer_order,omitempty"`
	Colors     []YAMLColor       `yaml:"colors"`
	Containers []YAMLContainer   `yaml:"containers,omitempty"`
	PixelMap   [][]int           `yaml:"pixel_map"`
	Container  [][]int           `yaml:"container_map,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLColor describes one layer colour.
type YAMLColor struct {
	Layer int    `yaml:"layer"`
	Name  string `yaml:"name"`
	Hex   string `yaml:"hex"`
}

// YAMLContainer describes one container and its dependencies.
type YAMLContainer struct {
	ID        int    `yaml:"id"`
	Layer     int    `yaml:"layer"`
	Name      string `yaml:"name"`
	DependsOn []int  `yaml:"depends_on,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Def      *core.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. The result is not validated.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	capacity := 1
	if yl.Capacity != nil {
		capacity = *yl.Capacity
	}

	def := &core.Level{
		ID:         yl.ID,
		Name:       yl.Name,
		Size:       yl.Size,
		Capacity:   capacity,
		PixelMap:   make([][]core.LayerID, len(yl.PixelMap)),
		Containers: make([]core.ContainerDef, 0, len(yl.Containers)),
		Deps:       make(map[core.ContainerID][]core.ContainerID),
		Colors:     make(map[core.LayerID]core.ColorConfig, len(yl.Colors)),
	}
	if def.Size == 0 {
		def.Size = len(yl.PixelMap)
	}

	for r, row := range yl.PixelMap {
		def.PixelMap[r] = make([]core.LayerID, len(row))
		for c, v := range row {
			def.PixelMap[r][c] = core.LayerID(v)
		}
	}
	if len(yl.Container) > 0 {
		def.ContainerMap = make([][]core.ContainerID, len(yl.Container))
		for r, row := range yl.Container {
			def.ContainerMap[r] = make([]core.ContainerID, len(row))
			for c, v := range row {
				def.ContainerMap[r][c] = core.ContainerID(v)
			}
		}
	}

	for _, yc := range yl.Colors {
		if _, dup := def.Colors[core.LayerID(yc.Layer)]; dup {
			return Level{}, fmt.Errorf("duplicate colour for layer %d", yc.Layer)
		}
		def.Colors[core.LayerID(yc.Layer)] = core.ColorConfig{
			Layer: core.LayerID(yc.Layer),
			Name:  yc.Name,
			Hex:   yc.Hex,
		}
	}

	seen := make(map[int]bool, len(yl.Containers))
	for _, yc := range yl.Containers {
		if seen[yc.ID] {
			return Level{}, fmt.Errorf("duplicate container id %d", yc.ID)
		}
		seen[yc.ID] = true
		id := core.ContainerID(yc.ID)
		def.Containers = append(def.Containers, core.ContainerDef{
			ID:    id,
			Layer: core.LayerID(yc.Layer),
			Name:  yc.Name,
		})
		if len(yc.DependsOn) > 0 {
			deps := make([]core.ContainerID, len(yc.DependsOn))
			for i, d := range yc.DependsOn {
				deps[i] = core.ContainerID(d)
			}
			def.Deps[id] = deps
		}
	}

	for _, layer := range yl.LayerOrder {
		def.LayerOrder = append(def.LayerOrder, core.LayerID(layer))
	}

	return Level{Def: def, Metadata: yl.Metadata}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
