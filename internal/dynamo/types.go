package dynamo

// Observer is notified after every sample appended to a run.
type Observer interface {
	OnStep(t float64, x State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t float64, x State)

func (f ObserverFunc) OnStep(t float64, x State) { f(t, x) }

// Observers fans a sample out to several observers in order.
type Observers []Observer

func (o Observers) OnStep(t float64, x State) {
	for _, obs := range o {
		obs.OnStep(t, x)
	}
}

// Stats summarizes the work done by a run.
type Stats struct {
	Evaluations int
	Accepted    int
	Rejected    int
	// MaxDepth is the deepest bisection level reached (adaptive Bulirsch-Stoer).
	MaxDepth int
	// StepSizes holds the step used by each accepted advance.
	StepSizes []float64
	// Errors holds the local error estimate of each accepted advance, or 0
	// for methods without one.
	Errors []float64
}

// Trajectory is the append-only record of samples (t_i, X_i) of one run.
// Sample 0 is the initial condition.
type Trajectory struct {
	Times  []float64
	States []State
	Stats  Stats
}

func NewTrajectory(t0 float64, x0 State) *Trajectory {
	return &Trajectory{
		Times:  []float64{t0},
		States: []State{x0.Clone()},
	}
}

// Append records a new sample. The state is copied.
func (tr *Trajectory) Append(t float64, x State) error {
	if len(tr.States) > 0 && len(x) != len(tr.States[0]) {
		return mismatch(len(tr.States[0]), len(x))
	}
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Clone())
	return nil
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) Dim() int {
	if len(tr.States) == 0 {
		return 0
	}
	return len(tr.States[0])
}

// Last returns the most recent sample.
func (tr *Trajectory) Last() (float64, State) {
	n := len(tr.Times)
	if n == 0 {
		return 0, nil
	}
	return tr.Times[n-1], tr.States[n-1]
}

func (tr *Trajectory) At(i int) (float64, State) {
	return tr.Times[i], tr.States[i]
}

// Column returns the values of state component j across all samples.
func (tr *Trajectory) Column(j int) []float64 {
	col := make([]float64, len(tr.States))
	for i, s := range tr.States {
		col[i] = s[j]
	}
	return col
}

// Unpack transposes the samples into one column per state dimension,
// aligned by index with Times.
func (tr *Trajectory) Unpack() [][]float64 {
	dim := tr.Dim()
	cols := make([][]float64, dim)
	for j := 0; j < dim; j++ {
		cols[j] = tr.Column(j)
	}
	return cols
}
