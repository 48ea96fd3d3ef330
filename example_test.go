package silo_test

import (
	"fmt"

	"github.com/archetype-labs/silo"
)

// Position is a simple component for 2D coordinates.
type Position struct {
	X, Y float64
}

// Velocity is a simple component for 2D movement.
type Velocity struct {
	X, Y float64
}

// Example_basic shows entity creation, component access, and a moving
// view over a small population.
func Example_basic() {
	position := silo.RegisterComponent[Position]()
	velocity := silo.RegisterComponent[Velocity]()

	reg := silo.NewRegistry()

	for i := 0; i < 5; i++ {
		reg.Create(position)
	}
	for i := 0; i < 3; i++ {
		reg.Create(position, velocity)
	}

	mover, _ := reg.Create(position, velocity)
	silo.Set(reg, mover, position, Position{X: 10, Y: 20})
	silo.Set(reg, mover, velocity, Velocity{X: 1, Y: 2})

	view, err := silo.NewView2Mut[Position, Velocity](reg, position, velocity)
	if err != nil {
		fmt.Println("open view:", err)
		return
	}
	count := 0
	for view.Next() {
		p, v := view.Get()
		p.X += v.X
		p.Y += v.Y
		count++
	}

	moved, _ := silo.Get(reg, mover, position)
	fmt.Println("moving entities:", count)
	fmt.Println("mover position:", moved.X, moved.Y)

	// Output:
	// moving entities: 4
	// mover position: 11 22
}
