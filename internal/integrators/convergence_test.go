package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/integrators"
	"github.com/san-kum/odeint/internal/physics"
)

func problem(sys dynamo.System, x0 dynamo.State) *dynamo.Problem {
	prob, err := dynamo.NewProblem(sys, dynamo.DefaultParams(), dynamo.Initial{X0: x0})
	Expect(err).NotTo(HaveOccurred())
	return prob
}

func decayError(s integrators.Stepper, dt float64) float64 {
	steps := int(math.Round(1 / dt))
	run, err := integrators.NewFixed(s, problem(physics.Decay(), dynamo.State{1}), dt, steps)
	Expect(err).NotTo(HaveOccurred())
	traj, err := integrators.Run(run)
	Expect(err).NotTo(HaveOccurred())
	_, x := traj.Last()
	return math.Abs(x[0] - math.Exp(-1))
}

var _ = Describe("Fixed-step integration", func() {
	It("integrates exponential decay to e^-1 with RK4", func() {
		run, err := integrators.NewFixed(integrators.NewRK4(), problem(physics.Decay(), dynamo.State{1}), 0.01, 100)
		Expect(err).NotTo(HaveOccurred())

		traj, err := integrators.Run(run)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(101))

		tEnd, x := traj.Last()
		Expect(tEnd).To(BeNumerically("~", 1.0, 1e-12))
		Expect(x[0]).To(BeNumerically("~", 0.367879, 1e-6))
	})

	DescribeTable("global error shrinks at the method's order when dt halves",
		func(newStepper func() integrators.Stepper, dt, lo, hi float64) {
			ratio := decayError(newStepper(), dt) / decayError(newStepper(), dt/2)
			Expect(ratio).To(BeNumerically(">=", lo))
			Expect(ratio).To(BeNumerically("<=", hi))
		},
		Entry("euler is first order", func() integrators.Stepper { return integrators.NewEuler() }, 0.01, 1.8, 2.2),
		Entry("rk4 is fourth order", func() integrators.Stepper { return integrators.NewRK4() }, 0.1, 14.0, 18.0),
	)

	It("keeps the Lorenz attractor finite and bounded with Bulirsch-Stoer", func() {
		prob := problem(physics.Lorenz(), dynamo.State{0.01, 0.01, 0.01})
		run, err := integrators.NewFixed(integrators.NewBulirschStoer(1e-6), prob, 0.01, 10000)
		Expect(err).NotTo(HaveOccurred())

		traj, err := integrators.Run(run)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(10001))

		for i, x := range traj.States {
			Expect(x.IsValid()).To(BeTrue(), "sample %d", i)
			Expect(math.Abs(x[0])).To(BeNumerically("<", 50), "sample %d", i)
			Expect(math.Abs(x[1])).To(BeNumerically("<", 50), "sample %d", i)
			Expect(math.Abs(x[2])).To(BeNumerically("<", 60), "sample %d", i)
		}
	})
})

var _ = Describe("Adaptive integration of a comet orbit", func() {
	x0 := dynamo.State{4e12, 0, 0, 474}
	energy := physics.OrbitEnergy(dynamo.DefaultParams())

	It("conserves orbital energy with adaptive Bulirsch-Stoer", func() {
		abs, err := integrators.NewAdaptiveBulirschStoer(physics.Orbit(), dynamo.DefaultParams(),
			integrators.AdaptiveBulirschStoerConfig{Accuracy: 1e-7})
		Expect(err).NotTo(HaveOccurred())
		run, err := abs.Start(dynamo.Initial{X0: x0}, 3e9)
		Expect(err).NotTo(HaveOccurred())

		traj, err := integrators.Run(run)
		Expect(err).NotTo(HaveOccurred())

		tEnd, x := traj.Last()
		Expect(tEnd).To(BeNumerically("~", 3e9, 1e-3))
		e0 := energy(x0)
		Expect(math.Abs(energy(x)-e0) / math.Abs(e0)).To(BeNumerically("<", 1e-4))
		Expect(traj.Stats.MaxDepth).To(BeNumerically(">", 0))
	})

	It("shrinks adaptive RK4 steps near perihelion", func() {
		run, err := integrators.NewAdaptiveRK4(problem(physics.Orbit(), x0), integrators.AdaptiveRK4Config{
			Duration: 1.6e9,
			Dt0:      1e5,
			Accuracy: 3.2e-5,
			Monitor:  []int{0, 1},
		})
		Expect(err).NotTo(HaveOccurred())

		traj, err := integrators.Run(run)
		Expect(err).NotTo(HaveOccurred())

		closest, rMin := 0, math.Inf(1)
		for i, s := range traj.States {
			if r := math.Hypot(s[0], s[1]); r < rMin {
				closest, rMin = i, r
			}
		}
		Expect(closest).To(BeNumerically(">", 0))
		Expect(rMin).To(BeNumerically("<", 1e11))

		largest := 0.0
		for _, dt := range traj.Stats.StepSizes {
			largest = math.Max(largest, dt)
		}
		Expect(traj.Stats.StepSizes[closest-1]).To(BeNumerically("<", largest/100))
	})
})
