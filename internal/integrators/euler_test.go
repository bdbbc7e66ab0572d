package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

type seed struct {
	mass     float64
	pos, vel r3.Vec
}

func build(p dynamo.Params, seeds ...seed) *physics.Registry {
	reg := physics.NewRegistry(p.TrailCapacity)
	for _, s := range seeds {
		_, err := reg.CreateBody(s.mass, s.pos, s.vel)
		Expect(err).NotTo(HaveOccurred())
	}
	return reg
}

func reference() []seed {
	return []seed{
		{100, r3.Vec{X: 2}, r3.Vec{}},
		{100, r3.Vec{Y: 2}, r3.Vec{}},
		{100, r3.Vec{Z: 2}, r3.Vec{}},
	}
}

func run(integ *integrators.SymplecticEuler, reg *physics.Registry, n int) {
	for i := 0; i < n; i++ {
		Expect(integ.Tick(reg)).To(Succeed())
	}
}

var _ = Describe("SymplecticEuler", func() {
	var p dynamo.Params

	BeforeEach(func() {
		p = dynamo.DefaultParams()
	})

	Describe("the two-body reference scenario", func() {
		It("updates velocity before position on the first tick", func() {
			reg := build(p, seed{100, r3.Vec{X: 2}, r3.Vec{}}, seed{100, r3.Vec{Y: 2}, r3.Vec{}})
			Expect(integrators.NewSymplecticEuler(p).Tick(reg)).To(Succeed())

			force := 0.5 * 100 * 100 / 8.0
			accel := force / 100
			dir := r3.Scale(1/math.Sqrt(8), r3.Vec{X: -2, Y: 2})

			bodies := reg.Bodies()
			va := r3.Scale(accel*p.Dt, dir)
			Expect(bodies[0].Velocity.X).To(BeNumerically("~", va.X, 1e-12))
			Expect(bodies[0].Velocity.Y).To(BeNumerically("~", va.Y, 1e-12))
			Expect(bodies[1].Velocity.X).To(BeNumerically("~", -va.X, 1e-12))
			Expect(bodies[1].Velocity.Y).To(BeNumerically("~", -va.Y, 1e-12))

			// displacement is v1*dt = a*dt^2
			for i, start := range []r3.Vec{{X: 2}, {Y: 2}} {
				moved := r3.Sub(bodies[i].Position, start)
				want := r3.Scale(p.Dt, bodies[i].Velocity)
				Expect(moved.X).To(BeNumerically("~", want.X, 1e-12))
				Expect(moved.Y).To(BeNumerically("~", want.Y, 1e-12))
				Expect(moved.Z).To(BeZero())
				Expect(r3.Norm(moved)).To(BeNumerically("~", accel*p.Dt*p.Dt, 1e-12))
			}
		})
	})

	It("never changes a body's mass", func() {
		reg := build(p, reference()...)
		run(integrators.NewSymplecticEuler(p), reg, 250)
		for _, b := range reg.Bodies() {
			Expect(b.Mass()).To(Equal(100.0))
		}
	})

	It("keeps trails at the tick count until they reach capacity", func() {
		reg := build(p, reference()...)
		integ := integrators.NewSymplecticEuler(p)

		run(integ, reg, 42)
		for h := 0; h < reg.Len(); h++ {
			trail, err := reg.Trail(physics.Handle(h))
			Expect(err).NotTo(HaveOccurred())
			Expect(trail).To(HaveLen(42))
		}

		run(integ, reg, 200)
		for h := 0; h < reg.Len(); h++ {
			trail, _ := reg.Trail(physics.Handle(h))
			Expect(trail).To(HaveLen(100))
			body, _ := reg.Body(physics.Handle(h))
			Expect(trail[len(trail)-1]).To(Equal(body.Position))
		}
	})

	It("is deterministic", func() {
		a := build(p, reference()...)
		b := build(p, reference()...)
		run(integrators.NewSymplecticEuler(p), a, 500)
		run(integrators.NewSymplecticEuler(p), b, 500)
		Expect(a.Bodies()).To(Equal(b.Bodies()))
		Expect(a.Snapshot()).To(Equal(b.Snapshot()))
	})

	It("stays finite when bodies coincide", func() {
		reg := build(p, seed{100, r3.Vec{X: 1}, r3.Vec{}}, seed{50, r3.Vec{X: 1}, r3.Vec{}})
		run(integrators.NewSymplecticEuler(p), reg, 50)
		for _, b := range reg.Bodies() {
			Expect(dynamo.IsFinite(b.Position)).To(BeTrue())
			Expect(dynamo.IsFinite(b.Velocity)).To(BeTrue())
		}
	})

	DescribeTable("stays finite when bodies nearly coincide",
		func(sep float64) {
			reg := build(p, seed{100, r3.Vec{}, r3.Vec{}}, seed{100, r3.Vec{X: sep}, r3.Vec{}})
			run(integrators.NewSymplecticEuler(p), reg, 50)
			for _, b := range reg.Bodies() {
				Expect(dynamo.IsFinite(b.Position)).To(BeTrue())
				Expect(dynamo.IsFinite(b.Velocity)).To(BeTrue())
			}
		},
		Entry("1e-9", 1e-9),
		Entry("1e-310", 1e-310),
		Entry("5e-324", 5e-324),
	)

	It("keeps a circular binary at roughly constant separation", func() {
		p.Dt = 0.001
		const m, d = 100.0, 2.0
		v := physics.CircularOrbitSpeed(p.G, m, d)
		reg := build(p,
			seed{m, r3.Vec{X: d / 2}, r3.Vec{Y: v}},
			seed{m, r3.Vec{X: -d / 2}, r3.Vec{Y: -v}},
		)
		integ := integrators.NewSymplecticEuler(p)

		for i := 0; i < 3000; i++ {
			Expect(integ.Tick(reg)).To(Succeed())
			bodies := reg.Bodies()
			sep := r3.Norm(r3.Sub(bodies[0].Position, bodies[1].Position))
			Expect(sep).To(BeNumerically("~", d, 0.05*d))
		}
	})

	It("leaves existing bodies untouched when a body is added", func() {
		reg := build(p, reference()...)
		run(integrators.NewSymplecticEuler(p), reg, 30)

		before := reg.Snapshot()
		h, err := reg.CreateBody(500, r3.Vec{X: 3, Y: 3}, r3.Vec{Z: -1})
		Expect(err).NotTo(HaveOccurred())

		after := reg.Snapshot()
		Expect(after[:len(before)]).To(Equal(before))
		trail, _ := reg.Trail(h)
		Expect(trail).To(BeEmpty())
	})

	It("fills the trail of a body added mid-run from empty", func() {
		reg := build(p, reference()...)
		integ := integrators.NewSymplecticEuler(p)
		run(integ, reg, 120)

		h, err := reg.CreateBody(80, r3.Vec{X: -3}, r3.Vec{})
		Expect(err).NotTo(HaveOccurred())
		run(integ, reg, 5)

		trail, _ := reg.Trail(h)
		Expect(trail).To(HaveLen(5))
		old, _ := reg.Trail(0)
		Expect(old).To(HaveLen(100))
	})

	It("ticks an empty registry", func() {
		reg := physics.NewRegistry(10)
		Expect(integrators.NewSymplecticEuler(p).Tick(reg)).To(Succeed())
	})
})
