package balloon_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/balloonsim/internal/balloon"
)

var _ = Describe("rupture state machine", func() {
	var st *balloon.State

	newBalloon := func(mutate func(*balloon.Params)) *balloon.State {
		p := balloon.DefaultParams()
		if mutate != nil {
			mutate(&p)
		}
		s, err := balloon.New(p)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	snapshot := func(s *balloon.State) []balloon.Vec2 {
		var out []balloon.Vec2
		for p := range s.Positions() {
			out = append(out, p)
		}
		return out
	}

	BeforeEach(func() {
		st = newBalloon(nil)
	})

	It("starts intact with every particle active", func() {
		Expect(st.Phase).To(Equal(balloon.PhaseIntact))
		for _, p := range st.Particles {
			Expect(p.Active).To(BeTrue())
		}
	})

	It("ignores clicks far outside the balloon", func() {
		before := snapshot(st)

		Expect(st.HandleClick(balloon.Vec2{X: 50, Y: 50})).To(BeFalse())

		Expect(st.Phase).To(Equal(balloon.PhaseIntact))
		Expect(snapshot(st)).To(Equal(before), "a missed click must not move particles")
		for _, sp := range st.Springs {
			Expect(sp.Broken).To(BeFalse())
		}
	})

	It("ruptures on a click at the center", func() {
		Expect(st.HandleClick(st.Params.Center)).To(BeTrue())

		Expect(st.Phase).To(Equal(balloon.PhaseRuptured))
		for _, sp := range st.Springs {
			Expect(sp.Broken).To(BeTrue())
		}
		for _, p := range st.Particles {
			Expect(p.Active).To(BeFalse())
		}
	})

	It("accepts clicks within the hit padding of the shell edge", func() {
		edge := st.Params.Center.Add(balloon.Vec2{X: 0.56 + st.Params.HitPadding/2})
		Expect(st.HandleClick(edge)).To(BeTrue())
	})

	It("is idempotent after the first hit", func() {
		Expect(st.HandleClick(st.Params.Center)).To(BeTrue())

		Expect(st.HandleClick(st.Params.Center)).To(BeFalse())
		Expect(st.HandleClick(balloon.Vec2{X: 100, Y: 100})).To(BeFalse())
		Expect(st.Phase).To(Equal(balloon.PhaseRuptured))
	})

	It("lets the shell collapse once the spring graph is gone", func() {
		st.HandleClick(st.Params.Center)

		for i := 0; i < 180; i++ {
			st.Step(1.0 / 60.0)
		}

		Expect(st.Valid()).To(BeTrue())
		worst := 0.0
		for _, sp := range st.Springs {
			dist := st.Particles[sp.I].Pos.Dist(st.Particles[sp.J].Pos)
			dev := math.Abs(dist-sp.RestLength) / sp.RestLength
			if dev > worst {
				worst = dev
			}
		}
		Expect(worst).To(BeNumerically(">", 0.5),
			"former spring pairs should drift far from their rest lengths")
	})

	Describe("radial policy", func() {
		BeforeEach(func() {
			st = newBalloon(func(p *balloon.Params) {
				p.Policy = balloon.BreakRadial
				p.BlastRadius = 0.2
			})
		})

		It("breaks only springs near the hit point", func() {
			Expect(st.HandleClick(st.Params.Center)).To(BeTrue())
			Expect(st.Phase).To(Equal(balloon.PhaseRuptured))

			broken, intact := 0, 0
			for _, sp := range st.Springs {
				if sp.Broken {
					broken++
				} else {
					intact++
				}
			}
			Expect(broken).To(BeNumerically(">", 0))
			Expect(intact).To(BeNumerically(">", 0))
		})

		It("stays terminal even with springs left over", func() {
			st.HandleClick(st.Params.Center)
			intactBefore := 0
			for _, sp := range st.Springs {
				if !sp.Broken {
					intactBefore++
				}
			}

			Expect(st.HandleClick(st.Params.Center)).To(BeFalse())

			intactAfter := 0
			for _, sp := range st.Springs {
				if !sp.Broken {
					intactAfter++
				}
			}
			Expect(intactAfter).To(Equal(intactBefore), "a second click must not re-break springs")
		})
	})
})
