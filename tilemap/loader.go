package tilemap

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
)

// TileDef describes one legend entry of a map file
type TileDef struct {
	Name        string  `json:"name"`
	Void        bool    `json:"void"`         // location is not part of the world
	BlocksSight bool    `json:"blocks_sight"` // occludes everything behind it
	Plane       string  `json:"plane"`        // overrides the map default plane
	Ambient     float64 `json:"ambient"`      // flat self-illumination
	Emit        float64 `json:"emit"`         // fixture light strength
	EmitScale   float64 `json:"emit_scale"`   // fixture light multiplier
}

// SpawnPoint defines the viewer start location
type SpawnPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MapData represents the map file structure
type MapData struct {
	Name   string             `json:"name"`
	Width  int                `json:"width"`
	Height int                `json:"height"`
	Plane  string             `json:"plane"` // default plane for tiles without one
	Legend map[string]TileDef `json:"legend"`
	Rows   []string           `json:"rows"`
	Spawn  SpawnPoint         `json:"spawn"`
}

// Load reads a map from a JSON file and builds the world
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	world, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid map file %s: %w", path, err)
	}
	return world, nil
}

// Parse builds a world from raw map JSON
func Parse(data []byte) (*World, error) {
	var md MapData
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse map data: %w", err)
	}

	if err := validateMapData(&md); err != nil {
		return nil, err
	}

	world := &World{
		name:   md.Name,
		width:  md.Width,
		height: md.Height,
		spawn:  grid.Point{X: md.Spawn.X, Y: md.Spawn.Y},
		tiles:  make(map[grid.Point]*tile),
	}

	for y, row := range md.Rows {
		for x, r := range []rune(row) {
			def := md.Legend[string(r)]
			if def.Void {
				continue
			}

			pos := grid.Point{X: x, Y: y}
			world.tiles[pos] = &tile{blocked: def.BlocksSight}

			plane := def.Plane
			if plane == "" {
				plane = md.Plane
			}
			prop := NewProp(def.Name, plane, pos)
			if def.Ambient > 0 {
				prop.SetAttribute(lighting.AttrAmbient, def.Ambient)
			}
			if def.Emit > 0 {
				prop.SetAttribute(lighting.AttrEmit, def.Emit)
				if def.EmitScale > 0 {
					prop.SetAttribute(lighting.AttrEmitScale, def.EmitScale)
				}
			}
			if err := world.Place(prop); err != nil {
				return nil, err
			}
		}
	}

	if _, ok := world.tiles[world.spawn]; !ok {
		return nil, fmt.Errorf("spawn point (%d, %d) is not a supported tile", md.Spawn.X, md.Spawn.Y)
	}

	return world, nil
}

// validateMapData checks if the map data is valid
func validateMapData(md *MapData) error {
	if md.Width <= 0 || md.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", md.Width, md.Height)
	}

	if len(md.Legend) == 0 {
		return fmt.Errorf("legend is required")
	}

	for key, def := range md.Legend {
		if len([]rune(key)) != 1 {
			return fmt.Errorf("legend key %q must be a single rune", key)
		}
		if !def.Void && def.Name == "" {
			return fmt.Errorf("legend entry %q is missing a name", key)
		}
	}

	if len(md.Rows) != md.Height {
		return fmt.Errorf("rows height mismatch: expected %d, got %d", md.Height, len(md.Rows))
	}

	for y, row := range md.Rows {
		runes := []rune(row)
		if len(runes) != md.Width {
			return fmt.Errorf("rows width mismatch at row %d: expected %d, got %d", y, md.Width, len(runes))
		}
		for x, r := range runes {
			if _, ok := md.Legend[string(r)]; !ok {
				return fmt.Errorf("unknown legend rune %q at (%d, %d)", string(r), x, y)
			}
		}
	}

	return nil
}
