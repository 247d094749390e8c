package roots_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/roots"
)

func plain(fn func(float64) float64) dynamo.Func1 {
	return func(x float64) (float64, error) { return fn(x), nil }
}

var _ = Describe("Find", func() {
	var opts roots.Options

	BeforeEach(func() {
		opts = roots.DefaultOptions()
	})

	It("finds the root of 2x - 3/(x^4+5) from x = 1", func() {
		f := plain(func(x float64) float64 { return 2*x - 3/(math.Pow(x, 4)+5) })

		res, err := roots.Find(f, 1, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Xi).To(Equal(1.0))
		Expect(res.X).To(BeNumerically("~", 0.29955, 1e-4))
		Expect(res.Epsilon).To(Equal(roots.DefaultEpsilon))
		Expect(res.BracketSteps).To(BeNumerically(">", 0))

		fx, _ := f(res.X)
		Expect(math.Abs(fx)).To(BeNumerically("<", 1e-6))
	})

	It("finds a root already inside the initial bracket without growing it", func() {
		res, err := roots.Find(plain(func(x float64) float64 { return x - 0.01 }), 0, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.BracketSteps).To(Equal(0))
		Expect(res.X).To(BeNumerically("~", 0.01, 1e-12))
	})

	It("stops when the centre sample is an exact root", func() {
		res, err := roots.Find(plain(func(x float64) float64 { return x - 3 }), 3, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 3, 1e-12))
		Expect(res.RootSteps).To(Equal(0))
	})

	It("fails to bracket a function with no real root", func() {
		_, err := roots.Find(plain(func(x float64) float64 { return x*x + 1 }), 0, opts)
		Expect(errors.Is(err, dynamo.ErrConvergence)).To(BeTrue())

		var ce *dynamo.ConvergenceError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Steps).To(Equal(roots.DefaultMaxBracketSteps))
	})

	It("reports the failing point when the oracle fails", func() {
		f := dynamo.Func1(func(x float64) (float64, error) {
			if x < -0.5 {
				return 0, errors.New("domain")
			}
			return x + 10, nil
		})
		_, err := roots.Find(f, 0, opts)
		Expect(errors.Is(err, dynamo.ErrEval)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("cannot evaluate function at x: "))
	})

	It("is deterministic", func() {
		f := plain(func(x float64) float64 { return math.Cos(x) - x })
		a, err := roots.Find(f, 2, opts)
		Expect(err).NotTo(HaveOccurred())
		b, err := roots.Find(f, 2, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(*a).To(Equal(*b))
		Expect(a.X).To(BeNumerically("~", 0.7390851332, 1e-8))
	})

	DescribeTable("rejects invalid options",
		func(mutate func(*roots.Options), field string) {
			mutate(&opts)
			_, err := roots.Find(plain(math.Sin), 1, opts)
			Expect(errors.Is(err, dynamo.ErrConfig)).To(BeTrue())
			var ce *dynamo.ConfigError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Field).To(Equal(field))
		},
		Entry("epsilon", func(o *roots.Options) { o.Epsilon = 0 }, "epsilon"),
		Entry("growth", func(o *roots.Options) { o.Growth = 1 }, "growth"),
		Entry("width", func(o *roots.Options) { o.InitialWidth = -1 }, "initial_width"),
		Entry("root steps", func(o *roots.Options) { o.MaxRootSteps = 0 }, "max_root_steps"),
	)
})

var _ = Describe("Bracket", func() {
	b := roots.Bracket{
		Lo:  roots.Sample{X: -1, F: -1},
		Mid: roots.Sample{X: 0, F: -0.5},
		Hi:  roots.Sample{X: 1, F: 1},
	}

	It("is valid when the ends straddle a sign change", func() {
		Expect(b.Valid()).To(BeTrue())
		Expect(roots.Bracket{Lo: b.Lo, Mid: b.Mid, Hi: roots.Sample{X: 1, F: -2}}.Valid()).To(BeFalse())
	})

	It("bisects the half that holds the sign change", func() {
		Expect(b.BisectionPoint()).To(Equal(0.5))
	})

	It("interpolates inside the bracket", func() {
		x, ok := b.Interpolate()
		Expect(ok).To(BeTrue())
		Expect(b.Contains(x)).To(BeTrue())
	})

	It("rejects an interpolation that repeats a sample", func() {
		q := roots.Bracket{Lo: b.Lo, Mid: b.Mid, Hi: roots.Sample{X: 1, F: 0}}
		x, ok := q.Interpolate()
		Expect(x).To(Equal(1.0))
		Expect(ok).To(BeFalse())
	})

	It("rejects an interpolation outside the bracket", func() {
		q := roots.Bracket{
			Lo:  roots.Sample{X: 0, F: -1},
			Mid: roots.Sample{X: 1, F: 1},
			Hi:  roots.Sample{X: 2, F: 1.0000001},
		}
		_, ok := q.Interpolate()
		Expect(ok).To(BeFalse())
	})

	It("narrows to the tightest valid triple", func() {
		n := b.Narrow(roots.Sample{X: 0.5, F: 0.2})
		Expect(n.Valid()).To(BeTrue())
		Expect(n.Lo.X).To(Equal(0.0))
		Expect(n.Mid.X).To(Equal(0.5))
		Expect(n.Hi.X).To(Equal(1.0))
	})

	It("leaves the receiver untouched", func() {
		_ = b.Narrow(roots.Sample{X: 0.25, F: 0.1})
		Expect(b.Hi.X).To(Equal(1.0))
	})

	It("never loses the sign change", func() {
		for _, c := range []roots.Sample{{X: -0.5, F: -0.9}, {X: 0.9, F: 0.8}, {X: 0.1, F: -0.4}} {
			Expect(b.Narrow(c).Valid()).To(BeTrue())
		}
	})

	It("picks the sample closest to zero", func() {
		Expect(b.Best().X).To(Equal(0.0))
	})
})
