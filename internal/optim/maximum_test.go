package optim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/optim"
)

func plain(fn func(float64) float64) dynamo.Func1 {
	return func(x float64) (float64, error) { return fn(x), nil }
}

func sinPlusHalf(x float64) float64 { return math.Sin(x) + x/2 }

var _ = Describe("FindMax", func() {
	var opts optim.Options

	BeforeEach(func() {
		opts = optim.DefaultOptions()
	})

	It("finds the peak of sin(x) + x/2 from x = 1", func() {
		res, err := optim.FindMax(plain(sinPlusHalf), 1, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Xi).To(Equal(1.0))
		Expect(res.X).To(BeNumerically("~", 2*math.Pi/3, 1e-3))
		Expect(res.F).To(BeNumerically("~", 1.9132, 1e-4))
		Expect(res.F).To(Equal(sinPlusHalf(res.X)))
		Expect(res.BracketSteps).To(BeNumerically(">", 0))
		Expect(res.MaxSteps).To(BeNumerically("<=", optim.DefaultMaxSteps+1))
		Expect(res.Clamped).To(BeFalse())
	})

	It("stops at a stationary point of a concave function", func() {
		f := func(x float64) float64 { return -math.Pow(x-1.5, 2) + math.Cos(3*x)/10 }
		res, err := optim.FindMax(plain(f), 1.4, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 1.647, 5e-3))
		Expect(fd.Derivative(f, res.X, nil)).To(BeNumerically("~", 0, 1e-3))
		Expect(fd.Derivative(f, res.X, &fd.Settings{Formula: fd.Central2nd})).To(BeNumerically("<", 0))
	})

	It("fails to bracket a monotone function", func() {
		_, err := optim.FindMax(plain(func(x float64) float64 { return x }), 0, opts)
		Expect(errors.Is(err, dynamo.ErrConvergence)).To(BeTrue())
		Expect(err.Error()).To(Equal("unable to bracket a max within 30 steps"))
	})

	It("propagates oracle failures", func() {
		f := dynamo.Func1(func(x float64) (float64, error) {
			if x > 0.3 {
				return 0, errors.New("out of range")
			}
			return x, nil
		})
		_, err := optim.FindMax(f, 0, opts)
		Expect(errors.Is(err, dynamo.ErrEval)).To(BeTrue())
	})

	It("is deterministic", func() {
		a, err := optim.FindMax(plain(sinPlusHalf), 1, opts)
		Expect(err).NotTo(HaveOccurred())
		b, err := optim.FindMax(plain(sinPlusHalf), 1, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(*a).To(Equal(*b))
	})

	It("rejects a growth factor that cannot expand the bracket", func() {
		opts.Growth = 0.5
		_, err := optim.FindMax(plain(sinPlusHalf), 1, opts)
		Expect(errors.Is(err, dynamo.ErrConfig)).To(BeTrue())
	})
})

var _ = Describe("Bracket", func() {
	b := optim.Bracket{
		Lo:  optim.Sample{X: 0, F: 1},
		Mid: optim.Sample{X: 1, F: 2},
		Hi:  optim.Sample{X: 2, F: 0},
	}

	It("checks that the centre dominates", func() {
		Expect(b.Valid()).To(BeTrue())
		Expect(optim.Bracket{Lo: b.Lo, Mid: b.Hi, Hi: b.Mid}.Valid()).To(BeFalse())
	})

	It("shifts toward the new outer sample", func() {
		r := b.Shift(optim.Sample{X: 3, F: -1})
		Expect([]float64{r.Lo.X, r.Mid.X, r.Hi.X}).To(Equal([]float64{1, 2, 3}))
		l := b.Shift(optim.Sample{X: -1, F: 0})
		Expect([]float64{l.Lo.X, l.Mid.X, l.Hi.X}).To(Equal([]float64{-1, 0, 1}))
	})

	It("bisects toward the lower end", func() {
		Expect(b.BisectionPoint()).To(Equal(1.5))
	})

	DescribeTable("keeps the centre highest on insert",
		func(s optim.Sample) {
			Expect(b.Insert(s).Valid()).To(BeTrue())
		},
		Entry("left, lower", optim.Sample{X: 0.5, F: 1.5}),
		Entry("left, higher", optim.Sample{X: 0.5, F: 2.5}),
		Entry("right, lower", optim.Sample{X: 1.5, F: 1}),
		Entry("right, higher", optim.Sample{X: 1.5, F: 3}),
	)

	It("places the vertex of an exact parabola", func() {
		p := func(x float64) float64 { return -(x - 0.8) * (x - 0.8) }
		q := optim.Bracket{
			Lo:  optim.Sample{X: 0, F: p(0)},
			Mid: optim.Sample{X: 1, F: p(1)},
			Hi:  optim.Sample{X: 2, F: p(2)},
		}
		Expect(q.Vertex()).To(BeNumerically("~", 0.8, 1e-12))
	})

	It("reports NaN for collinear samples", func() {
		line := optim.Bracket{Lo: optim.Sample{X: 0, F: 0}, Mid: optim.Sample{X: 1, F: 1}, Hi: optim.Sample{X: 2, F: 2}}
		Expect(math.IsNaN(line.Vertex())).To(BeTrue())
	})

	DescribeTable("resolves a vertex estimate against the bracket",
		func(vertex, wantX float64, wantClamped bool) {
			q := optim.Bracket{
				Lo:  optim.Sample{X: 0, F: 0},
				Mid: optim.Sample{X: 1, F: 1},
				Hi:  optim.Sample{X: 2, F: 0.5},
			}
			x, clamped := q.Estimate(vertex)
			Expect(x).To(Equal(wantX))
			Expect(clamped).To(Equal(wantClamped))
		},
		Entry("inside", 1.2, 1.2, false),
		Entry("on the edge", 2.0, 2.0, false),
		Entry("beyond the high end", 5.0, 1.0, true),
		Entry("below the low end", -0.1, 1.0, true),
		Entry("undefined", math.NaN(), 1.0, true),
	)
})

var _ = Describe("Scan", func() {
	// two peaks: a low one near -2 and a high one near 2
	f := plain(func(x float64) float64 {
		return math.Exp(-(x+2)*(x+2)) + 2*math.Exp(-(x-2)*(x-2))
	})

	It("returns the highest of the local maxima", func() {
		res, err := optim.Scan(f, []float64{-2.5, -1.5, 1.5, 2.5}, optim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-3))
	})

	It("skips failing starts", func() {
		res, err := optim.Scan(f, []float64{1e300, 1.5}, optim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-3))
	})

	It("returns the first error when every start fails", func() {
		_, err := optim.Scan(plain(func(x float64) float64 { return x }), []float64{0, 1}, optim.DefaultOptions())
		Expect(errors.Is(err, dynamo.ErrConvergence)).To(BeTrue())
	})

	It("needs at least one start", func() {
		_, err := optim.Scan(f, nil, optim.DefaultOptions())
		Expect(errors.Is(err, dynamo.ErrConfig)).To(BeTrue())
	})
})
