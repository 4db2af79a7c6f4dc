// Command lightview is an interactive viewer for the visibility and
// lighting engine. It loads a tile map, walks a lamp-carrying player
// through it with the arrow keys (or WASD), and recomposes light and
// visibility on every move.
package main

import (
	"flag"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
	"chosenoffset.com/gridlight/plane"
	"chosenoffset.com/gridlight/tilemap"
)

const tileSize = 24

type Game struct {
	world    *tilemap.World
	composer *plane.Composer[*tilemap.Prop]
	planes   map[string]*plane.Plane[*tilemap.Prop]
	player   grid.Point
	lamp     float64
	dirty    bool
}

func NewGame(world *tilemap.World, lamp float64) *Game {
	g := &Game{
		world:  world,
		player: world.Spawn(),
		lamp:   lamp,
		planes: make(map[string]*plane.Plane[*tilemap.Prop]),
		dirty:  true,
	}

	var planes []*plane.Plane[*tilemap.Prop]
	for _, name := range world.Planes() {
		pl := &plane.Plane[*tilemap.Prop]{
			Name:   name,
			Member: func(o *tilemap.Prop) bool { return o.Plane == name },
		}
		g.planes[name] = pl
		planes = append(planes, pl)
	}

	g.composer = &plane.Composer[*tilemap.Prop]{
		World:  world,
		Planes: planes,
		Limit:  0.001,
	}
	return g
}

func (g *Game) Update() error {
	dx, dy := 0, 0
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW):
		dy = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS):
		dy = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA):
		dx = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD):
		dx = 1
	}

	if dx != 0 || dy != 0 {
		target := g.player.Add(dx, dy)
		if at := g.world.Query(target); at.Supported && !at.Blocked {
			g.player = target
			g.dirty = true
		}
	}

	if g.dirty {
		g.recompose()
		g.dirty = false
	}
	return nil
}

// recompose sets the player's lamp as the sole source of the plane the
// player stands in and reruns the full pass. Planes the player left keep
// no sources, so they fade dark on their next pass.
func (g *Game) recompose() {
	for _, pl := range g.planes {
		pl.Sources = nil
	}

	if props := g.world.PropsAt(g.player); len(props) > 0 {
		if pl, ok := g.planes[props[0].Plane]; ok {
			// Small scale jitter gives the lamp a torch-like flicker
			flicker := 0.9 + 0.2*rand.Float64()
			pl.Sources = []lighting.Source{{Origin: g.player, Init: g.lamp, Scale: flicker}}
		}
	}

	g.composer.Compose()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{10, 10, 14, 255})

	for y := 0; y < g.world.Height(); y++ {
		for x := 0; x < g.world.Width(); x++ {
			p := grid.Point{X: x, Y: y}
			at := g.world.Query(p)
			if !at.Supported || len(at.Payload) == 0 {
				continue
			}

			prop := at.Payload[0]
			light, _ := prop.Attribute(lighting.AttrLight)
			_, visible := prop.Attribute(lighting.AttrVisibleDepth)
			if !visible {
				continue
			}

			base := floorColor
			if at.Blocked {
				base = wallColor
			}
			if _, ok := prop.Attribute(lighting.AttrEmit); ok {
				base = torchColor
			}

			shade := 0.15 + 0.85*light
			vector.DrawFilledRect(screen,
				float32(x*tileSize), float32(y*tileSize), tileSize, tileSize,
				scaleColor(base, shade), false)
		}
	}

	// Player marker on top, always visible
	vector.DrawFilledRect(screen,
		float32(g.player.X*tileSize)+6, float32(g.player.Y*tileSize)+6,
		tileSize-12, tileSize-12, color.NRGBA{240, 240, 255, 255}, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.world.Width() * tileSize, g.world.Height() * tileSize
}

var (
	floorColor = color.NRGBA{168, 138, 100, 255}
	wallColor  = color.NRGBA{130, 130, 148, 255}
	torchColor = color.NRGBA{230, 180, 80, 255}
)

func scaleColor(c color.NRGBA, f float64) color.NRGBA {
	if f > 1 {
		f = 1
	}
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: 255,
	}
}

func main() {
	mapPath := flag.String("map", "maps/ship.json", "path to the map file")
	lamp := flag.Float64("lamp", 8.0, "player lamp strength")
	flag.Parse()

	world, err := tilemap.Load(*mapPath)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	game := NewGame(world, *lamp)

	ebiten.SetWindowSize(world.Width()*tileSize, world.Height()*tileSize)
	ebiten.SetWindowTitle("gridlight - " + world.Name())
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
