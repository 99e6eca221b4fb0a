package maxent

import (
	"log/slog"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrEmptyTrainingSet is returned when no instance survives the cutoffs.
var ErrEmptyTrainingSet = errors.New("empty training set")

// TrainerConfig holds training hyperparameters.
type TrainerConfig struct {
	C1            float64 // L1 regularization
	C2            float64 // L2 regularization
	MaxIterations int
	Epsilon       float64 // convergence threshold
}

// DefaultTrainerConfig returns the default training config.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		C1:            0.1,
		C2:            0.01,
		MaxIterations: 100,
		Epsilon:       1e-5,
	}
}

// Train fits a model on the training set using OWL-QN.
func Train(ts *TrainingSet, config TrainerConfig) (*Model, error) {
	c := ts.compile()
	if len(c.gold) == 0 {
		return nil, errors.Wrapf(ErrEmptyTrainingSet, "%d instances before cutoffs", ts.Len())
	}

	model := &Model{
		Labels:     c.labels,
		Attributes: c.attrs,
		NumLabels:  c.labels.Size(),
	}
	numWeights := model.NumWeights()
	w := make([]float64, numWeights)
	obj := &objective{c: c, L: model.NumLabels, biasOffset: model.BiasOffset(), c2: config.C2}

	m := 10 // L-BFGS memory size
	lb := newLBFGS(numWeights, m)

	grad := make([]float64, numWeights)
	f := obj.eval(w, grad) + l1(w, config.C1)
	pg := pseudoGradient(w, grad, config.C1)

	for iter := range config.MaxIterations {
		dir := lb.computeDirection(pg)

		// Constrain direction to the orthant of the pseudo-gradient
		for i := range numWeights {
			if dir[i]*pg[i] > 0 {
				dir[i] = 0
			}
		}

		wNew, fNew, ok := owlqnLineSearch(w, dir, f, pg, func(x []float64) float64 {
			return obj.eval(x, nil) + l1(x, config.C1)
		}, config.C1)
		if !ok {
			slog.Debug("Line search failed, stopping", "iteration", iter+1, "loss", f)
			break
		}

		newGrad := make([]float64, numWeights)
		obj.eval(wNew, newGrad)
		newPG := pseudoGradient(wNew, newGrad, config.C1)

		s := make([]float64, numWeights)
		y := make([]float64, numWeights)
		for i := range numWeights {
			s[i] = wNew[i] - w[i]
			y[i] = newGrad[i] - grad[i]
		}
		lb.update(s, y)

		improvement := (f - fNew) / math.Max(1, math.Abs(f))
		w, f, grad, pg = wNew, fNew, newGrad, newPG
		slog.Debug("Training iteration", "iteration", iter+1, "loss", f)

		maxGrad := 0.0
		for _, g := range pg {
			maxGrad = math.Max(maxGrad, math.Abs(g))
		}
		if maxGrad < config.Epsilon || improvement < config.Epsilon {
			slog.Debug("Converged", "iteration", iter+1, "max_gradient", maxGrad)
			break
		}
	}

	model.Weights = w
	return model, nil
}

// objective is the L2-regularized negative log-likelihood.
type objective struct {
	c          compiled
	L          int
	biasOffset int
	c2         float64
}

// eval returns the objective at w and, when grad is non-nil, writes its gradient.
func (o *objective) eval(w, grad []float64) float64 {
	if grad != nil {
		clear(grad)
	}
	L := o.L
	scores := make([]float64, L)
	nll := 0.0
	for n, feats := range o.c.features {
		for y := range L {
			scores[y] = w[o.biasOffset+y]
		}
		for _, a := range feats {
			for y := range L {
				scores[y] += w[a*L+y]
			}
		}
		gold := o.c.gold[n]
		logZ := logSumExp(scores)
		nll += logZ - scores[gold]

		if grad == nil {
			continue
		}
		// E_model[f] - E_empirical[f]
		for y := range L {
			p := math.Exp(scores[y] - logZ)
			if y == gold {
				p -= 1
			}
			grad[o.biasOffset+y] += p
			for _, a := range feats {
				grad[a*L+y] += p
			}
		}
	}

	if o.c2 > 0 {
		l2 := 0.0
		for i, v := range w {
			l2 += v * v
			if grad != nil {
				grad[i] += o.c2 * v
			}
		}
		nll += 0.5 * o.c2 * l2
	}
	return nll
}

func l1(w []float64, c1 float64) float64 {
	if c1 <= 0 {
		return 0
	}
	s := 0.0
	for _, v := range w {
		s += math.Abs(v)
	}
	return c1 * s
}

func logSumExp(xs []float64) float64 {
	maxX := xs[0]
	for _, x := range xs[1:] {
		if x > maxX {
			maxX = x
		}
	}
	s := 0.0
	for _, x := range xs {
		s += math.Exp(x - maxX)
	}
	return maxX + math.Log(s)
}

// pseudoGradient returns the OWL-QN pseudo-gradient of f + c1*|w|.
func pseudoGradient(w, grad []float64, c1 float64) []float64 {
	pg := make([]float64, len(w))
	for i := range w {
		switch {
		case w[i] > 0:
			pg[i] = grad[i] + c1
		case w[i] < 0:
			pg[i] = grad[i] - c1
		case grad[i]+c1 < 0:
			pg[i] = grad[i] + c1
		case grad[i]-c1 > 0:
			pg[i] = grad[i] - c1
		}
	}
	return pg
}

// lbfgs implements the L-BFGS two-loop recursion.
type lbfgs struct {
	n    int // number of variables
	m    int // memory size
	s    [][]float64
	y    [][]float64
	rho  []float64
	k    int
	size int
}

func newLBFGS(n, m int) *lbfgs {
	return &lbfgs{
		n:   n,
		m:   m,
		s:   make([][]float64, m),
		y:   make([][]float64, m),
		rho: make([]float64, m),
	}
}

func (l *lbfgs) update(s, y []float64) {
	sy := dot(s, y)
	if sy <= 0 {
		return
	}
	idx := l.k % l.m
	l.s[idx] = s
	l.y[idx] = y
	l.rho[idx] = 1.0 / sy
	l.k++
	if l.size < l.m {
		l.size++
	}
}

// computeDirection returns the quasi-Newton descent direction for pg.
func (l *lbfgs) computeDirection(pg []float64) []float64 {
	q := make([]float64, l.n)
	copy(q, pg)

	if l.size > 0 {
		alpha := make([]float64, l.size)
		// newest to oldest
		for i := range l.size {
			idx := (l.k - 1 - i) % l.m
			alpha[i] = l.rho[idx] * dot(l.s[idx], q)
			for j := range l.n {
				q[j] -= alpha[i] * l.y[idx][j]
			}
		}

		latest := (l.k - 1) % l.m
		if yy := dot(l.y[latest], l.y[latest]); yy > 0 {
			gamma := dot(l.s[latest], l.y[latest]) / yy
			for j := range q {
				q[j] *= gamma
			}
		}

		// oldest to newest
		for i := l.size - 1; i >= 0; i-- {
			idx := (l.k - 1 - i) % l.m
			beta := l.rho[idx] * dot(l.y[idx], q)
			for j := range l.n {
				q[j] += (alpha[i] - beta) * l.s[idx][j]
			}
		}
	}

	for i := range q {
		q[i] = -q[i]
	}
	return q
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// owlqnLineSearch performs a backtracking line search with orthant
// projection. It returns the new point and its objective value.
func owlqnLineSearch(w, dir []float64, fVal float64, pg []float64, objFunc func([]float64) float64, c1 float64) ([]float64, float64, bool) {
	dirDeriv := dot(dir, pg)
	if dirDeriv >= 0 {
		return nil, 0, false
	}

	// orthant of the step: sign of w, or of -pg where w is zero
	orthant := make([]float64, len(w))
	for i := range w {
		switch {
		case w[i] != 0:
			orthant[i] = w[i]
		default:
			orthant[i] = -pg[i]
		}
	}

	step := 1.0
	c := 1e-4 // Armijo constant
	for range 20 {
		wNew := make([]float64, len(w))
		for i := range w {
			wNew[i] = w[i] + step*dir[i]
			if c1 > 0 && wNew[i]*orthant[i] <= 0 {
				wNew[i] = 0
			}
		}
		fNew := objFunc(wNew)
		if fNew <= fVal+c*step*dirDeriv {
			return wNew, fNew, true
		}
		step *= 0.5
	}
	return nil, 0, false
}
