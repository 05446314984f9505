// Package models holds the values the demo shows in its panels.
package models

import (
	"math/big"
	"strings"

	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/inspect"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

//go:generate go run github.com/hubastard/grove-inspector/cmd/inspectgen

type Difficulty string

type Checkpoint string

//inspect:derive rename_all="Sentence case" i18n prefix=level resetable=struct_default default=DefaultLevel()
type Level struct {
	//inspect:field hint="Shown in the window title"
	Name string
	//inspect:field config=inspect.StringCombo("easy","normal","hard")
	Difficulty Difficulty
	//inspect:field config=inspect.Slider(0,100)
	Volume int32
	//inspect:field config=inspect.SliderStep(0.5,4,0.5) resetable=1.0
	Speed      float64
	Fullscreen bool
	//inspect:field config=inspect.MultiLine()
	Notes string
	//inspect:field map_pre=toCelsius map_post=fromCelsius config=inspect.DragRange(-40,60) rename="Temperature (°C)"
	Fahrenheit float64
	Score      big.Int
	Tint       colors.Color
	//inspect:field start_collapsed=false
	Player Player
	Spawn  Shape
	Boss   *Player
	//inspect:field config=tagsConfig()
	Tags []string
	//inspect:field elem_config=inspect.DragRange(0,99)
	Grid        [3]int32
	Loot        map[string]int
	Checkpoints map[Checkpoint]struct{}
	Waypoints   *orderedmap.OrderedMap[string, float32]
	Visited     *inspect.IndexSet[string]
	//inspect:field imut
	Seed uint64
	//inspect:field skip
	dirty bool
}

// DefaultLevel is the value the level resets to.
func DefaultLevel() Level {
	l := Level{
		Name:       "Untitled",
		Difficulty: "normal",
		Volume:     80,
		Speed:      1,
		Fahrenheit: 68,
		Tint:       colors.White,
		Player:     Player{Name: "Ada", Health: 100, Alive: true, Class: "Engineer"},
		Spawn:      Point{},
		Tags:       []string{"outdoor"},
		Loot:       map[string]int{"gold": 10},
		Waypoints:  orderedmap.New[string, float32](),
		Visited:    inspect.NewIndexSet("start"),
	}
	l.Waypoints.Set("gate", 12.5)
	l.Waypoints.Set("tower", 40)
	l.Score.SetInt64(1_000_000)
	return l
}

// Touch marks the level as edited.
func (l *Level) Touch()      { l.dirty = true }
func (l *Level) Dirty() bool { return l.dirty }

func toCelsius(f float64) float64       { return (f - 32) * 5 / 9 }
func fromCelsius(f *float64, c float64) { *f = c*9/5 + 32 }

func tagsConfig() inspect.SeqConfig[string] {
	cfg := inspect.DefaultSeqConfig[string]()
	cfg.Expandable.MutableBeforeInsert = true
	cfg.MaxLen = 8
	return cfg
}

//inspect:derive i18n prefix=player
type Player struct {
	Name string
	//inspect:field config=inspect.Slider(0,100) on_change_struct=(*Player).clampHealth
	Health float32
	Alive  bool
	//inspect:field eeq=sameFold
	Class string
}

// clampHealth keeps Alive in step with Health.
func (p *Player) clampHealth() { p.Alive = p.Health > 0 }

func sameFold(a, b *string) bool { return strings.EqualFold(*a, *b) }

//inspect:enum Point Circle Rect i18n prefix=shape
type Shape interface{ isShape() }

type Point struct{}

//inspect:variant resetable=Circle{Radius:1}
type Circle struct {
	//inspect:field config=inspect.DragRange(0,1000)
	Radius float32
}

//inspect:variant tuple hint="width and height"
type Rect struct{ W, H float32 }

func (Point) isShape()  {}
func (Circle) isShape() {}
func (Rect) isShape()   {}
