package solver_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/potentials"
	"github.com/san-kum/eigensim/internal/quantum"
	"github.com/san-kum/eigensim/internal/solver"
)

var _ = Describe("Solve", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("harmonic oscillator", func() {
		It("finds the 1D ground state at 1", func() {
			sp, err := solver.Solve(ctx, solver.Problem{
				Axes:      []grid.Axis{{Min: -10, Max: 10, Count: 500}},
				Potential: potentials.NewHarmonic(1),
				K:         1,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sp.Values).To(HaveLen(1))
			Expect(sp.Values[0]).To(BeNumerically("~", 1.0, 0.01))
		})

		It("recovers the 3D degeneracies 1, 3 and 6", func() {
			ax := grid.Axis{Min: -4.8, Max: 4.8, Count: 17}
			sp, err := solver.Solve(ctx, solver.Problem{
				Axes:      []grid.Axis{ax, ax, ax},
				Potential: potentials.NewHarmonic(1, 1, 1),
				K:         10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sp.Values).To(HaveLen(10))

			counts := map[int]int{}
			for _, v := range sp.Values {
				level := 2*int(math.Round((v-1)/2)) + 1
				Expect(math.Abs(v - float64(level))).To(BeNumerically("<", 0.5))
				counts[level]++
			}
			Expect(counts).To(Equal(map[int]int{3: 1, 5: 3, 7: 6}))
		})

		It("measures observables of the returned states", func() {
			sp, err := solver.Solve(ctx, solver.Problem{
				Axes:        []grid.Axis{{Min: -8, Max: 8, Count: 201}},
				Potential:   potentials.NewHarmonic(1),
				K:           2,
				Observables: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sp.Vectors).To(BeNil())
			Expect(sp.Metrics["norm[0]"]).To(BeNumerically("~", 1, 1e-9))
			Expect(sp.Metrics["energy[0]"]).To(BeNumerically("~", sp.Values[0], 1e-8))
			Expect(sp.Metrics["mean_x[0]"]).To(BeNumerically("~", 0, 1e-6))
			Expect(sp.Metrics["mean_x2[0]"]).To(BeNumerically("~", 0.5, 0.01))
			Expect(sp.Metrics["mean_x2[1]"]).To(BeNumerically("~", 1.5, 0.02))
		})
	})

	Context("validation", func() {
		It("rejects K larger than the grid before sampling the potential", func() {
			calls := 0
			pot := quantum.PotentialFunc(func(r []float64) float64 {
				calls++
				return 0
			})
			_, err := solver.Solve(ctx, solver.Problem{
				Axes:      []grid.Axis{{Min: 0, Max: 1, Count: 5}},
				Potential: pot,
				K:         6,
			})
			Expect(errors.Is(err, quantum.ErrInvalidArgument)).To(BeTrue())
			Expect(calls).To(BeZero())
		})

		It("rejects axes with fewer than two points", func() {
			_, err := solver.Solve(ctx, solver.Problem{
				Axes:      []grid.Axis{{Min: 0, Max: 1, Count: 1}},
				Potential: potentials.NewBox(),
				K:         1,
			})
			Expect(errors.Is(err, quantum.ErrInvalidArgument)).To(BeTrue())
		})

		It("rejects precomputed potentials of the wrong length", func() {
			_, err := solver.Solve(ctx, solver.Problem{
				Axes:   []grid.Axis{{Min: 0, Max: 1, Count: 5}},
				Values: []float64{1, 2, 3},
				K:      1,
			})
			Expect(errors.Is(err, quantum.ErrDimensionMismatch)).To(BeTrue())
		})
	})

	It("is deterministic", func() {
		p := solver.Problem{
			Axes:      []grid.Axis{{Min: -3, Max: 3, Count: 20}, {Min: -3, Max: 3, Count: 20}},
			Potential: potentials.NewDoubleWell(),
			K:         5,
			Target:    2,
		}
		a, err := solver.Solve(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		b, err := solver.Solve(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Values).To(Equal(b.Values))
	})
})
