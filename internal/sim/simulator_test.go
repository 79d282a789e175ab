package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/photonwalk/internal/logging"
	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/stellar"
	"github.com/san-kum/photonwalk/internal/walk"
)

type frameRecorder struct {
	ticks      []int
	furthest   []float64
	frames     []walk.Population
	terminated int
	onTick     func(tick int)
}

func (r *frameRecorder) OnTick(tick int, pop walk.Population) {
	r.ticks = append(r.ticks, tick)
	r.furthest = append(r.furthest, pop.Furthest())
	r.frames = append(r.frames, pop)
	if r.onTick != nil {
		r.onTick(tick)
	}
}

func (r *frameRecorder) OnTerminate(res *Result) { r.terminated++ }

type countMetric struct {
	observed int
	resets   int
}

func (c *countMetric) Name() string                          { return "count" }
func (c *countMetric) Observe(tick int, pop walk.Population) { c.observed++ }
func (c *countMetric) Value() float64                        { return float64(c.observed) }
func (c *countMetric) Reset()                                { c.resets++; c.observed = 0 }

func newLoop(mass, radius, kappa float64, src sampling.Source, photons int) *Loop {
	props, err := stellar.NewProperties(mass, radius)
	Expect(err).NotTo(HaveOccurred())
	loop, err := New(props, kappa, sampling.NewSampler(src), photons)
	Expect(err).NotTo(HaveOccurred())
	return loop
}

var _ = Describe("Loop", func() {
	ctx := testCtx

	Context("construction", func() {
		It("starts RUNNING with every photon at the origin", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 5)
			Expect(loop.State()).To(Equal(Running))
			Expect(loop.Tick()).To(Equal(0))
			Expect(loop.Result()).To(BeNil())
			for _, p := range loop.Population() {
				Expect(p).To(Equal(walk.PhotonState{}))
			}
		})

		It("rejects invalid arguments", func() {
			props, _ := stellar.NewProperties(1, 1)
			s := sampling.NewSampler(sampling.Constant(0.5))

			_, err := New(props, 1, s, 0)
			Expect(err).To(HaveOccurred())
			_, err = New(props, 0, s, 1)
			Expect(err).To(HaveOccurred())
			_, err = New(props, 1, nil, 1)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with a constant source of u = 0.5", func() {
		It("escapes a solar-mass star in a fixed number of ticks", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 1)
			rec := &frameRecorder{}
			loop.AddObserver(rec)

			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(ReasonEscaped))
			Expect(res.Ticks).To(Equal(21))
			Expect(res.Furthest).To(BeNumerically("~", 213.189023, 1e-5))
			Expect(res.Escaped).To(Equal(1))
			Expect(loop.State()).To(Equal(Terminated))
			Expect(rec.terminated).To(Equal(1))
		})

		It("logs each tick to the logger in the context", func() {
			var buf bytes.Buffer
			lctx := logging.IntoContext(ctx, logging.NewTestLogger(&buf))
			res, err := newLoop(1, 1, 1, sampling.Constant(0.5), 1).Run(lctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(buf.String(), "\ttick\t")).To(Equal(res.Ticks))
			Expect(buf.String()).To(ContainSubstring("photon walk terminated"))
		})

		It("reports the wall-clock time of the run", func() {
			res, err := newLoop(1, 1, 1, sampling.Constant(0.5), 1).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Elapsed).To(BeNumerically(">", 0))
			Expect(res.Elapsed).To(BeNumerically("<", time.Second))
		})

		It("terminates only once the furthest photon passes the radius", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 1)
			rec := &frameRecorder{}
			loop.AddObserver(rec)

			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			radius := loop.Properties().RadiusSteps()
			n := len(rec.furthest)
			Expect(n).To(Equal(res.Ticks))
			for _, f := range rec.furthest[:n-1] {
				Expect(f).To(BeNumerically("<=", radius))
			}
			Expect(rec.furthest[n-1]).To(BeNumerically(">", radius))
		})

		It("produces the same trajectory for every photon", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 3)
			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(21))
			Expect(res.Population[0]).To(Equal(res.Population[1]))
			Expect(res.Population[1]).To(Equal(res.Population[2]))
		})

		It("takes more ticks when opacity is ten times higher", func() {
			base, err := newLoop(1, 1, 1, sampling.Constant(0.5), 1).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			opaque, err := newLoop(1, 1, 10, sampling.Constant(0.5), 1).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(opaque.Ticks).To(Equal(197))
			Expect(opaque.Ticks).To(BeNumerically(">", base.Ticks))

			props, _ := stellar.NewProperties(1, 1)
			l1, _ := sampling.MeanFreePath(1, props.CentralDensity)
			l10, _ := sampling.MeanFreePath(10, props.CentralDensity)
			Expect(l1 / l10).To(BeNumerically("~", 10, 1e-9))
		})

		It("terminates for the densest allowed star", func() {
			loop := newLoop(25, 0.2, 1, sampling.Constant(0.5), 1)
			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(ReasonEscaped))
			Expect(res.Ticks).To(Equal(12150))
			Expect(res.Furthest).To(BeNumerically(">", 40))
		})
	})

	Context("termination on the population maximum", func() {
		It("stops when the fastest photon leaves while slower photons remain inside", func() {
			// photon 0 draws u=0.001 for its step, photon 1 draws u=0.5
			src := sampling.NewSequence(0.001, 0.5, 0.5, 0.5)
			loop := newLoop(1, 1, 1, src, 2)

			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(ReasonEscaped))
			Expect(res.Escaped).To(Equal(1))
			Expect(res.Population[0].R).To(BeNumerically(">", 200))
			Expect(res.Population[1].R).To(BeNumerically("<=", 200))
		})
	})

	Context("cancellation", func() {
		It("reports cancelled at tick 3 when the signal is raised after tick 3", func() {
			loop := newLoop(1, 1, 25, sampling.NewSeededSource(42), 4)
			flag := &Flag{}
			rec := &frameRecorder{onTick: func(tick int) {
				if tick == 3 {
					flag.Raise()
				}
			}}
			loop.AddObserver(rec)
			loop.AddCancelSignal(flag)

			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(ReasonCancelled))
			Expect(res.Ticks).To(Equal(3))
			Expect(loop.State()).To(Equal(Terminated))
			Expect(rec.ticks).To(Equal([]int{1, 2, 3}))
			Expect(cmp.Diff(rec.frames[2], res.Population)).To(BeEmpty())
		})

		It("stops before the first tick when the context is already done", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 1)
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			res, err := loop.Run(cctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(ReasonCancelled))
			Expect(res.Ticks).To(Equal(0))
		})

		It("accepts a CancelFunc", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 1)
			loop.AddCancelSignal(CancelFunc(func() bool { return loop.Tick() >= 5 }))

			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(ReasonCancelled))
			Expect(res.Ticks).To(Equal(5))
		})
	})

	Context("stepping", func() {
		It("refuses to step after termination", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 1)
			_, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			running, err := loop.Step(ctx)
			Expect(running).To(BeFalse())
			Expect(errors.Is(err, ErrTerminated)).To(BeTrue())
		})

		It("fails loudly on a degenerate source", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0), 2)
			res, err := loop.Run(ctx)
			Expect(errors.Is(err, sampling.ErrDegenerateSource)).To(BeTrue())

			var stepErr *StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Tick).To(Equal(1))
			Expect(stepErr.Photon).To(Equal(0))
			Expect(res.Reason).To(Equal(ReasonFailed))
			Expect(res.Ticks).To(Equal(0))
		})

		It("feeds metrics once per tick and reports them in the result", func() {
			loop := newLoop(1, 1, 1, sampling.Constant(0.5), 1)
			m := &countMetric{}
			loop.AddMetric(m)

			res, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.resets).To(Equal(1))
			Expect(res.Metrics).To(HaveKeyWithValue("count", float64(res.Ticks)))
		})
	})

	Context("with a seeded source", func() {
		It("is reproducible", func() {
			run := func() *Result {
				res, err := newLoop(1, 1, 0.5, sampling.NewSeededSource(7), 3).Run(ctx)
				Expect(err).NotTo(HaveOccurred())
				return res
			}
			a, b := run(), run()
			Expect(a.Ticks).To(Equal(b.Ticks))
			Expect(cmp.Diff(a.Population, b.Population)).To(BeEmpty())
		})
	})
})

var _ = Describe("State and Reason", func() {
	It("has readable names", func() {
		Expect(Running.String()).To(Equal("RUNNING"))
		Expect(Terminated.String()).To(Equal("TERMINATED"))
		Expect(ReasonEscaped.String()).To(Equal("escaped"))
		Expect(ReasonCancelled.String()).To(Equal("cancelled"))
	})
})
