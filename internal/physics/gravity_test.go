package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

func twoBodies(ma float64, pa r3.Vec, mb float64, pb r3.Vec) (*physics.Body, *physics.Body) {
	reg := physics.NewRegistry(10)
	_, err := reg.CreateBody(ma, pa, r3.Vec{})
	Expect(err).NotTo(HaveOccurred())
	_, err = reg.CreateBody(mb, pb, r3.Vec{})
	Expect(err).NotTo(HaveOccurred())
	bodies, _ := reg.Entries()
	return bodies[0], bodies[1]
}

var _ = Describe("PairForce", func() {
	p := dynamo.DefaultParams()

	It("follows the inverse-square law along the separation", func() {
		a, b := twoBodies(100, r3.Vec{X: 2}, 100, r3.Vec{Y: 2})
		f := physics.PairForce(a, b, p)

		Expect(r3.Norm(f)).To(BeNumerically("~", 0.5*100*100/8, 1e-9))
		dir := r3.Unit(r3.Vec{X: -2, Y: 2})
		Expect(f.X / r3.Norm(f)).To(BeNumerically("~", dir.X, 1e-12))
		Expect(f.Y / r3.Norm(f)).To(BeNumerically("~", dir.Y, 1e-12))
		Expect(f.Z).To(BeZero())
	})

	DescribeTable("is antisymmetric",
		func(ma float64, pa r3.Vec, mb float64, pb r3.Vec) {
			a, b := twoBodies(ma, pa, mb, pb)
			fab := physics.PairForce(a, b, p)
			fba := physics.PairForce(b, a, p)
			Expect(fba).To(Equal(r3.Scale(-1, fab)))
		},
		Entry("axis aligned", 100.0, r3.Vec{X: 2}, 100.0, r3.Vec{Y: 2}),
		Entry("unequal masses", 3.0, r3.Vec{X: 1.5, Y: -0.3, Z: 7}, 917.25, r3.Vec{X: -4, Y: 0.1, Z: 2.2}),
		Entry("inside the floor", 50.0, r3.Vec{}, 60.0, r3.Vec{Z: 0.01}),
	)

	It("uses the distance floor for close bodies", func() {
		a, b := twoBodies(10, r3.Vec{}, 20, r3.Vec{X: 0.05})
		f := physics.PairForce(a, b, p)
		Expect(f.X).To(BeNumerically("~", p.G*10*20/(p.MinDistance*p.MinDistance), 1e-9))
	})

	DescribeTable("stays finite for subnormal separations",
		func(sep float64) {
			a, b := twoBodies(100, r3.Vec{}, 100, r3.Vec{X: sep})
			f := physics.PairForce(a, b, p)
			Expect(dynamo.IsFinite(f)).To(BeTrue())
			Expect(f.X).To(BeNumerically("~", p.G*100*100/(p.MinDistance*p.MinDistance), 1e-6))
			Expect(f.Y).To(BeZero())
			Expect(f.Z).To(BeZero())
			Expect(physics.PairForce(b, a, p)).To(Equal(r3.Scale(-1, f)))
		},
		Entry("1e-300", 1e-300),
		Entry("1e-305", 1e-305),
		Entry("1e-310", 1e-310),
		Entry("smallest subnormal", 5e-324),
	)

	It("stays finite for a tiny diagonal separation", func() {
		a, b := twoBodies(100, r3.Vec{}, 100, r3.Vec{X: 1e-310, Y: -1e-310, Z: 5e-324})
		f := physics.PairForce(a, b, p)
		Expect(dynamo.IsFinite(f)).To(BeTrue())
		Expect(r3.Norm(f)).To(BeNumerically("~", p.G*100*100/(p.MinDistance*p.MinDistance), 1e-6))
	})

	It("returns no force for coincident bodies", func() {
		a, b := twoBodies(10, r3.Vec{X: 1, Y: 1}, 20, r3.Vec{X: 1, Y: 1})
		Expect(physics.PairForce(a, b, p)).To(Equal(r3.Vec{}))
	})
})

var _ = Describe("AccumulateForces", func() {
	It("sums to zero net force", func() {
		reg := physics.NewRegistry(10)
		for i, m := range []float64{10, 200, 35, 1} {
			_, err := reg.CreateBody(m, r3.Vec{X: float64(i), Y: float64(i * i), Z: -float64(i)}, r3.Vec{})
			Expect(err).NotTo(HaveOccurred())
		}
		bodies, _ := reg.Entries()
		forces := make([]r3.Vec, len(bodies))
		physics.AccumulateForces(bodies, forces, dynamo.DefaultParams())

		var net r3.Vec
		for _, f := range forces {
			net = r3.Add(net, f)
		}
		Expect(r3.Norm(net)).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("Diagnostics", func() {
	It("computes energy and momentum of two bodies", func() {
		reg := physics.NewRegistry(10)
		_, _ = reg.CreateBody(2, r3.Vec{X: 1}, r3.Vec{Y: 3})
		_, _ = reg.CreateBody(4, r3.Vec{X: -1}, r3.Vec{Y: -1.5})
		bodies := reg.Bodies()
		p := dynamo.DefaultParams()

		ke := 0.5*2*9 + 0.5*4*2.25
		pe := -p.G * 2 * 4 / 2
		Expect(physics.Energy(bodies, p)).To(BeNumerically("~", ke+pe, 1e-12))
		Expect(r3.Norm(physics.Momentum(bodies))).To(BeNumerically("~", 0, 1e-12))
		Expect(physics.AngularMomentum(bodies).Z).To(BeNumerically("~", 2*3+4*1.5, 1e-12))
		Expect(physics.CenterOfMass(bodies).X).To(BeNumerically("~", -1.0/3, 1e-12))
	})

	It("gives the circular orbit speed for two equal masses", func() {
		v := physics.CircularOrbitSpeed(0.5, 100, 2)
		Expect(v).To(BeNumerically("~", math.Sqrt(12.5), 1e-12))
		Expect(physics.CircularOrbitSpeed(1, 1, 0)).To(BeZero())
	})
})
