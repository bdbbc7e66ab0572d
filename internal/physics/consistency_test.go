package physics_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ = Describe("a registry with misaligned trails", func() {
	It("is rejected by the integrator without being mutated", func() {
		reg := physics.NewRegistry(10)
		_, err := reg.CreateBody(100, r3.Vec{X: 2}, r3.Vec{Y: 1})
		Expect(err).NotTo(HaveOccurred())
		_, err = reg.CreateBody(100, r3.Vec{Y: 2}, r3.Vec{})
		Expect(err).NotTo(HaveOccurred())

		physics.DropLastTrail(reg)
		before := reg.Bodies()

		err = integrators.NewSymplecticEuler(dynamo.DefaultParams()).Tick(reg)
		Expect(errors.Is(err, dynamo.ErrInconsistentState)).To(BeTrue())
		Expect(reg.Bodies()).To(Equal(before))
		trail, err := reg.Trail(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(trail).To(BeEmpty())
	})
})
