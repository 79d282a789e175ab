package experiment

import (
	"math"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/photonwalk/internal/config"
	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/sim"
)

func sunConfig(photons int, opacity float64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Params.Photons = photons
	cfg.Params.Mass = 1
	cfg.Params.Radius = 1
	cfg.Params.Opacity = opacity
	cfg.Params.BackgroundStars = 4
	return cfg
}

func constantSource(u float64) SourceFunc {
	return func(int64) sampling.Source { return sampling.Constant(u) }
}

var _ = Describe("Experiment", func() {
	ctx := testCtx

	It("runs a single photon through the Sun to escape", func() {
		exp, err := New(sunConfig(1, 1))
		Expect(err).NotTo(HaveOccurred())
		exp.SetSource(constantSource(0.5))

		res, err := exp.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal(sim.ReasonEscaped))
		Expect(res.Ticks).To(Equal(21))
		Expect(res.Furthest).To(BeNumerically("~", 213.189023019745, 1e-9))
		Expect(res.Metrics).To(HaveKeyWithValue("first_escape_tick", 21.0))
		Expect(res.Metrics).To(HaveKeyWithValue("escaped_fraction", 1.0))
		Expect(res.Metrics).To(HaveKey("mean_radius"))
	})

	It("records frames at the configured stride plus the final one", func() {
		cfg := sunConfig(1, 1)
		cfg.RecordStride = 5
		exp, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())
		exp.SetSource(constantSource(0.5))

		_, err = exp.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		ticks := []int{}
		for _, f := range exp.Frames() {
			ticks = append(ticks, f.Tick)
		}
		Expect(cmp.Diff([]int{5, 10, 15, 20, 21}, ticks)).To(BeEmpty())
	})

	It("stops at the tick budget", func() {
		cfg := sunConfig(1, 1)
		cfg.MaxTicks = 5
		exp, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())
		exp.SetSource(constantSource(0.5))

		res, err := exp.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal(sim.ReasonCancelled))
		Expect(res.Ticks).To(Equal(5))
	})

	It("clamps out-of-range parameters without touching the caller's config", func() {
		cfg := sunConfig(40, 1)
		cfg.Params.Mass = 30
		exp, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(exp.Adjustments()).To(HaveLen(2))
		Expect(exp.Config().Params.Photons).To(Equal(25))
		Expect(exp.Config().Params.Mass).To(Equal(25.0))
		Expect(cfg.Params.Photons).To(Equal(40))
	})

	It("rejects a non-positive density floor", func() {
		cfg := sunConfig(1, 1)
		cfg.DensityFloor = 0
		_, err := New(cfg)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("rejects non-finite inputs instead of walking forever",
		func(apply func(*config.Config)) {
			cfg := sunConfig(1, 1)
			apply(cfg)
			exp, err := New(cfg)
			Expect(err).To(HaveOccurred())
			Expect(exp).To(BeNil())
		},
		Entry("NaN mass", func(c *config.Config) { c.Params.Mass = math.NaN() }),
		Entry("infinite radius", func(c *config.Config) { c.Params.Radius = math.Inf(1) }),
		Entry("NaN opacity", func(c *config.Config) { c.Params.Opacity = math.NaN() }),
		Entry("NaN density floor", func(c *config.Config) { c.DensityFloor = math.NaN() }),
	)

	It("reproduces a seeded run", func() {
		cfg := sunConfig(3, 0.5)
		cfg.Seed = 7

		a, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())
		resA, err := a.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		b, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())
		resB, err := b.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(resA.Ticks).To(Equal(resB.Ticks))
		Expect(cmp.Diff(resA.Population, resB.Population)).To(BeEmpty())
	})

	It("builds ensemble members that match solo runs", func() {
		cfg := sunConfig(2, 0.1)
		exp, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		results, err := sim.NewEnsemble(exp.Factory(), 3, 100).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))

		for i, res := range results {
			solo := *cfg
			solo.Seed = int64(100 + i)
			single, err := New(&solo)
			Expect(err).NotTo(HaveOccurred())
			want, err := single.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(want.Ticks))
			Expect(cmp.Diff(want.Population, res.Population)).To(BeEmpty())
		}
	})

	It("draws the scene independently of the physics stream", func() {
		exp, err := New(sunConfig(3, 1))
		Expect(err).NotTo(HaveOccurred())

		sc := exp.Scene()
		Expect(sc.RadiusSteps).To(Equal(200.0))
		Expect(sc.Background).To(HaveLen(4))
		Expect(sc.Colors).To(HaveLen(3))
		Expect(cmp.Diff(sc, exp.Scene())).To(BeEmpty())
	})

	It("stores run metadata", func() {
		exp, err := New(sunConfig(1, 1))
		Expect(err).NotTo(HaveOccurred())
		exp.SetSource(constantSource(0.5))
		res, err := exp.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		meta := exp.Metadata("sun", res)
		Expect(meta.Name).To(Equal("sun"))
		Expect(meta.Reason).To(Equal("escaped"))
		Expect(meta.Ticks).To(Equal(21))
		Expect(meta.RadiusSteps).To(Equal(200.0))
	})
})

var _ = Describe("Registry", func() {
	It("lists metrics in name order", func() {
		r := NewRegistry()
		Expect(r.ListMetrics()).To(Equal([]string{"escaped_fraction", "first_escape_tick", "furthest", "mean_radius"}))
	})

	It("rejects unknown metrics", func() {
		_, err := NewRegistry().GetMetric("energy", 200)
		Expect(err).To(MatchError(ContainSubstring("unknown metric")))
	})
})
