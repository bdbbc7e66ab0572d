package integrators

import (
	"math/rand"
	"testing"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

func benchRegistry(b *testing.B, n int) *physics.Registry {
	rng := rand.New(rand.NewSource(1))
	reg := physics.NewRegistry(dynamo.DefaultTrailCapacity)
	for i := 0; i < n; i++ {
		pos := r3.Vec{X: rng.Float64()*8 - 4, Y: rng.Float64()*8 - 4, Z: rng.Float64()*8 - 4}
		if _, err := reg.CreateBody(50+rng.Float64()*1000, pos, r3.Vec{}); err != nil {
			b.Fatal(err)
		}
	}
	return reg
}

func BenchmarkTick3(b *testing.B) {
	reg := benchRegistry(b, 3)
	integ := NewSymplecticEuler(dynamo.DefaultParams())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = integ.Tick(reg)
	}
}

func BenchmarkTick50(b *testing.B) {
	reg := benchRegistry(b, 50)
	integ := NewSymplecticEuler(dynamo.DefaultParams())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = integ.Tick(reg)
	}
}
