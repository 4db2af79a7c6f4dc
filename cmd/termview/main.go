// Command termview walks the same maps as lightview inside a terminal:
// tiles render as runes whose color tracks the accumulated light, and
// anything outside the revealed field stays blank. Move with the arrow
// keys or hjkl; q or Escape quits.
package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
	"chosenoffset.com/gridlight/plane"
	"chosenoffset.com/gridlight/tilemap"
)

type viewer struct {
	world    *tilemap.World
	composer *plane.Composer[*tilemap.Prop]
	planes   map[string]*plane.Plane[*tilemap.Prop]
	player   grid.Point
	lamp     float64
}

func newViewer(world *tilemap.World, lamp float64) *viewer {
	v := &viewer{
		world:  world,
		player: world.Spawn(),
		lamp:   lamp,
		planes: make(map[string]*plane.Plane[*tilemap.Prop]),
	}

	var planes []*plane.Plane[*tilemap.Prop]
	for _, name := range world.Planes() {
		pl := &plane.Plane[*tilemap.Prop]{
			Name:   name,
			Member: func(o *tilemap.Prop) bool { return o.Plane == name },
		}
		v.planes[name] = pl
		planes = append(planes, pl)
	}

	v.composer = &plane.Composer[*tilemap.Prop]{
		World:  world,
		Planes: planes,
		Limit:  0.001,
	}
	return v
}

func (v *viewer) move(dx, dy int) {
	target := v.player.Add(dx, dy)
	if at := v.world.Query(target); at.Supported && !at.Blocked {
		v.player = target
	}
}

func (v *viewer) recompose() {
	for _, pl := range v.planes {
		pl.Sources = nil
	}
	if props := v.world.PropsAt(v.player); len(props) > 0 {
		if pl, ok := v.planes[props[0].Plane]; ok {
			pl.Sources = []lighting.Source{{Origin: v.player, Init: v.lamp, Scale: 1}}
		}
	}
	v.composer.Compose()
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()

	for y := 0; y < v.world.Height(); y++ {
		for x := 0; x < v.world.Width(); x++ {
			at := v.world.Query(grid.Point{X: x, Y: y})
			if !at.Supported || len(at.Payload) == 0 {
				continue
			}

			prop := at.Payload[0]
			if _, visible := prop.Attribute(lighting.AttrVisibleDepth); !visible {
				continue
			}
			light, _ := prop.Attribute(lighting.AttrLight)

			r := '.'
			if at.Blocked {
				r = '#'
			}
			if _, ok := prop.Attribute(lighting.AttrEmit); ok {
				r = '*'
			}

			screen.SetContent(x, y, r, nil, lightStyle(light))
		}
	}

	screen.SetContent(v.player.X, v.player.Y, '@',
		nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	screen.Show()
}

// lightStyle maps a light value onto a warm color ramp
func lightStyle(light float64) tcell.Style {
	if light > 1 {
		light = 1
	}
	level := 0.2 + 0.8*light
	c := tcell.NewRGBColor(
		int32(250*level),
		int32(220*level),
		int32(170*level),
	)
	return tcell.StyleDefault.Foreground(c)
}

func main() {
	mapPath := flag.String("map", "maps/ship.json", "path to the map file")
	lamp := flag.Float64("lamp", 8.0, "player lamp strength")
	flag.Parse()

	world, err := tilemap.Load(*mapPath)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	v := newViewer(world, *lamp)
	v.recompose()
	v.draw(screen)

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.draw(screen)
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return
			case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
				v.move(0, -1)
			case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
				v.move(0, 1)
			case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
				v.move(-1, 0)
			case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
				v.move(1, 0)
			}
			v.recompose()
			v.draw(screen)
		}
	}
}
