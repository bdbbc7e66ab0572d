package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ = Describe("Registry", func() {
	var reg *physics.Registry

	BeforeEach(func() {
		reg = physics.NewRegistry(100)
	})

	It("appends bodies with empty trails at matching indices", func() {
		a, err := reg.CreateBody(100, r3.Vec{X: 2}, r3.Vec{})
		Expect(err).NotTo(HaveOccurred())
		b, err := reg.CreateBody(50, r3.Vec{Y: 2}, r3.Vec{Z: 1})
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(Equal(physics.Handle(0)))
		Expect(b).To(Equal(physics.Handle(1)))
		Expect(reg.Len()).To(Equal(2))

		bodies, trails := reg.Entries()
		Expect(bodies).To(HaveLen(len(trails)))

		body, err := reg.Body(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(body.Mass()).To(Equal(50.0))
		Expect(body.Velocity).To(Equal(r3.Vec{Z: 1}))

		trail, err := reg.Trail(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(trail).To(BeEmpty())
	})

	DescribeTable("rejects invalid masses without changing state",
		func(mass float64) {
			_, err := reg.CreateBody(1, r3.Vec{}, r3.Vec{})
			Expect(err).NotTo(HaveOccurred())

			_, err = reg.CreateBody(mass, r3.Vec{X: 1}, r3.Vec{})
			Expect(err).To(MatchError(dynamo.ErrInvalidMass))
			Expect(reg.Len()).To(Equal(1))
			bodies, trails := reg.Entries()
			Expect(trails).To(HaveLen(len(bodies)))
		},
		Entry("zero", 0.0),
		Entry("negative", -5.0),
		Entry("NaN", math.NaN()),
		Entry("infinite", math.Inf(1)),
	)

	It("rejects non-finite kinematic state", func() {
		_, err := reg.CreateBody(1, r3.Vec{X: math.NaN()}, r3.Vec{})
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
		_, err = reg.CreateBody(1, r3.Vec{}, r3.Vec{Y: math.Inf(-1)})
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
		Expect(reg.Len()).To(BeZero())
	})

	It("returns copies from its read views", func() {
		_, err := reg.CreateBody(10, r3.Vec{X: 1}, r3.Vec{})
		Expect(err).NotTo(HaveOccurred())

		view := reg.Bodies()
		view[0].Position = r3.Vec{X: 99}

		body, _ := reg.Body(0)
		Expect(body.Position).To(Equal(r3.Vec{X: 1}))
	})

	It("reports unknown handles", func() {
		_, err := reg.Body(3)
		Expect(err).To(MatchError(dynamo.ErrUnknownBody))
		_, err = reg.Trail(-1)
		Expect(err).To(MatchError(dynamo.ErrUnknownBody))
	})

	It("falls back to the default trail capacity", func() {
		Expect(physics.NewRegistry(0).TrailCapacity()).To(Equal(dynamo.DefaultTrailCapacity))
	})

	It("exports mass, state and trail in the snapshot", func() {
		_, err := reg.CreateBody(7, r3.Vec{X: 1}, r3.Vec{Y: 2})
		Expect(err).NotTo(HaveOccurred())
		_, trails := reg.Entries()
		trails[0].Push(r3.Vec{X: 1})

		snap := reg.Snapshot()
		Expect(snap).To(HaveLen(1))
		Expect(snap[0].Mass).To(Equal(7.0))
		Expect(snap[0].Velocity).To(Equal(r3.Vec{Y: 2}))
		Expect(snap[0].Trail).To(Equal([]r3.Vec{{X: 1}}))
	})
})
