package bench

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archetype-labs/silo"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

func BenchmarkIterSiloGet(b *testing.B) {
	b.StopTimer()

	position := silo.RegisterComponent[Position]()
	velocity := silo.RegisterComponent[Velocity]()

	reg := silo.NewRegistry()
	for i := 0; i < nPosVel; i++ {
		_, err := reg.Create(position, velocity)
		require.NoError(b, err)
	}
	for i := 0; i < nPos; i++ {
		_, err := reg.Create(position)
		require.NoError(b, err)
	}

	view, err := silo.NewView2Mut[Position, Velocity](reg, position, velocity)
	require.NoError(b, err)
	view.Close()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		view, _ := silo.NewView2Mut[Position, Velocity](reg, position, velocity)
		for view.Next() {
			pos, vel := view.Get()
			pos.X += vel.X
			pos.Y += vel.Y
		}
		view.Close()
	}
}
