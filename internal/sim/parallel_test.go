package sim

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/stellar"
)

var _ = Describe("Ensemble", func() {
	ctx := testCtx

	factory := func(seed int64) (*Loop, error) {
		props, err := stellar.NewProperties(1, 1)
		if err != nil {
			return nil, err
		}
		return New(props, 0.1, sampling.NewSampler(sampling.NewSeededSource(seed)), 2)
	}

	It("runs every seed and returns results in seed order", func() {
		e := NewEnsemble(factory, 6, 100)
		e.SetWorkers(3)

		results, err := e.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(6))

		for i, res := range results {
			Expect(res.Reason).To(Equal(ReasonEscaped))

			loop, _ := factory(100 + int64(i))
			solo, err := loop.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(solo.Ticks))
			Expect(res.Population).To(Equal(solo.Population))
		}
	})

	It("surfaces factory errors", func() {
		boom := errors.New("boom")
		e := NewEnsemble(func(seed int64) (*Loop, error) { return nil, boom }, 2, 0)
		_, err := e.Run(ctx)
		Expect(errors.Is(err, boom)).To(BeTrue())
	})
})

var _ = Describe("FrameChannel", func() {
	It("hands off every frame and then the result", func() {
		ctx, cancel := context.WithCancel(testCtx)
		defer cancel()

		props, _ := stellar.NewProperties(1, 1)
		loop, err := New(props, 1, sampling.NewSampler(sampling.Constant(0.5)), 2)
		Expect(err).NotTo(HaveOccurred())

		frames := NewFrameChannel(ctx)
		loop.AddObserver(frames)

		done := make(chan error, 1)
		go func() {
			_, err := loop.Run(ctx)
			done <- err
		}()

		var ticks []int
		var final *Result
		for ev := range frames.Events() {
			if ev.Result != nil {
				final = ev.Result
				continue
			}
			Expect(ev.Population).To(HaveLen(2))
			ticks = append(ticks, ev.Tick)
		}

		Eventually(done).Should(Receive(BeNil()))
		Expect(final).NotTo(BeNil())
		Expect(final.Reason).To(Equal(ReasonEscaped))
		Expect(ticks).To(HaveLen(final.Ticks))
		Expect(ticks[len(ticks)-1]).To(Equal(21))
	})
})
