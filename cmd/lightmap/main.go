// Command lightmap runs one headless compose pass over a map and exports
// the resulting light field as a WebP image, one pixel block per tile.
// Settings come from GRIDLIGHT_* environment variables; flags override.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/caarlos0/env/v11"
	"golang.org/x/image/draw"

	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
	"chosenoffset.com/gridlight/plane"
	"chosenoffset.com/gridlight/tilemap"
)

// Config holds the exporter settings
type Config struct {
	Map   string  `env:"GRIDLIGHT_MAP" envDefault:"maps/ship.json"`
	Out   string  `env:"GRIDLIGHT_OUT" envDefault:"lightmap.webp"`
	Scale int     `env:"GRIDLIGHT_SCALE" envDefault:"8"`
	Lamp  float64 `env:"GRIDLIGHT_LAMP" envDefault:"8"`
	Limit float64 `env:"GRIDLIGHT_LIMIT" envDefault:"0.001"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	// Flags override the environment
	flag.StringVar(&cfg.Map, "map", cfg.Map, "path to the map file")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "output image path")
	flag.IntVar(&cfg.Scale, "scale", cfg.Scale, "pixels per tile")
	flag.Float64Var(&cfg.Lamp, "lamp", cfg.Lamp, "lamp strength at the spawn point")
	flag.Float64Var(&cfg.Limit, "limit", cfg.Limit, "light cutoff")
	flag.Parse()

	if cfg.Scale < 1 {
		log.Fatalf("Invalid scale %d: must be at least 1", cfg.Scale)
	}
	if cfg.Limit <= 0 {
		log.Fatalf("Invalid limit %g: must be positive", cfg.Limit)
	}

	world, err := tilemap.Load(cfg.Map)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	compose(world, cfg.Lamp, cfg.Limit)

	img := rasterize(world)
	scaled := upscale(img, cfg.Scale)

	f, err := os.Create(cfg.Out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", cfg.Out, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, scaled, nil); err != nil {
		log.Fatalf("Failed to encode %s: %v", cfg.Out, err)
	}

	log.Printf("Wrote %s (%dx%d)", cfg.Out, scaled.Bounds().Dx(), scaled.Bounds().Dy())
}

// compose runs one full pass with a lamp at the map's spawn point
func compose(world *tilemap.World, lamp, limit float64) {
	spawn := world.Spawn()
	spawnPlane := ""
	if props := world.PropsAt(spawn); len(props) > 0 {
		spawnPlane = props[0].Plane
	}

	var planes []*plane.Plane[*tilemap.Prop]
	for _, name := range world.Planes() {
		pl := &plane.Plane[*tilemap.Prop]{
			Name:   name,
			Member: func(o *tilemap.Prop) bool { return o.Plane == name },
		}
		if name == spawnPlane {
			pl.Sources = []lighting.Source{{Origin: spawn, Init: lamp, Scale: 1}}
		}
		planes = append(planes, pl)
	}

	c := &plane.Composer[*tilemap.Prop]{World: world, Planes: planes, Limit: limit}
	c.Compose()
}

// rasterize renders one pixel per tile: warm tones track the accumulated
// light, unrevealed tiles stay black, void stays transparent
func rasterize(world *tilemap.World) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, world.Width(), world.Height()))

	for y := 0; y < world.Height(); y++ {
		for x := 0; x < world.Width(); x++ {
			at := world.Query(grid.Point{X: x, Y: y})
			if !at.Supported || len(at.Payload) == 0 {
				continue
			}

			prop := at.Payload[0]
			light, _ := prop.Attribute(lighting.AttrLight)
			if light > 1 {
				light = 1
			}

			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(250 * light),
				G: uint8(220 * light),
				B: uint8(170 * light),
				A: 255,
			})
		}
	}
	return img
}

// upscale enlarges the tile raster with nearest-neighbor so each tile
// stays a crisp block
func upscale(img *image.NRGBA, scale int) *image.NRGBA {
	if scale == 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
