package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ = Describe("Trail", func() {
	push := func(t *physics.Trail, n int) {
		for i := 0; i < n; i++ {
			t.Push(r3.Vec{X: float64(i)})
		}
	}

	It("grows one entry per push below capacity", func() {
		t := physics.NewTrail(100)
		push(t, 37)
		Expect(t.Len()).To(Equal(37))
		Expect(t.At(0).X).To(Equal(0.0))
		Expect(t.At(36).X).To(Equal(36.0))
	})

	It("stays at capacity and evicts the oldest entries", func() {
		t := physics.NewTrail(100)
		push(t, 250)
		Expect(t.Len()).To(Equal(100))

		pts := t.Points()
		Expect(pts).To(HaveLen(100))
		for i, p := range pts {
			Expect(p.X).To(Equal(float64(150 + i)))
		}
		last, ok := t.Last()
		Expect(ok).To(BeTrue())
		Expect(last.X).To(Equal(249.0))
	})

	It("never holds more than its capacity", func() {
		t := physics.NewTrail(3)
		for i := 0; i < 10; i++ {
			t.Push(r3.Vec{Y: float64(i)})
			Expect(t.Len()).To(BeNumerically("<=", 3))
		}
	})

	It("reports an empty trail", func() {
		t := physics.NewTrail(5)
		_, ok := t.Last()
		Expect(ok).To(BeFalse())
		Expect(t.Points()).To(BeEmpty())
	})

	It("clamps a non-positive capacity to one", func() {
		t := physics.NewTrail(0)
		push(t, 4)
		Expect(t.Cap()).To(Equal(1))
		Expect(t.Points()).To(Equal([]r3.Vec{{X: 3}}))
	})

	It("panics on an out of range index", func() {
		t := physics.NewTrail(2)
		Expect(func() { t.At(0) }).To(Panic())
	})
})
