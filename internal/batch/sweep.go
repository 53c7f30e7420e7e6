package batch

import "fmt"

// Sweep folds one light curve at evenly spaced trial periods, one plot per
// period, for when the period is only roughly known.
type Sweep struct {
	Base  Job
	Min   float64
	Max   float64
	Steps int
}

func (s Sweep) Scenario() (*Scenario, error) {
	if s.Steps < 1 || s.Min <= 0 || s.Max < s.Min || (s.Steps > 1 && s.Max == s.Min) {
		return nil, fmt.Errorf("%w: %g..%g in %d steps", ErrBadSweep, s.Min, s.Max, s.Steps)
	}

	step := 0.0
	if s.Steps > 1 {
		step = (s.Max - s.Min) / float64(s.Steps-1)
	}

	sc := &Scenario{
		Name: fmt.Sprintf("%s period sweep", s.Base.Title),
		Jobs: make([]Job, s.Steps),
	}
	for i := range sc.Jobs {
		job := s.Base
		job.Period = s.Min + float64(i)*step
		if s.Base.Title != "" {
			job.Title = fmt.Sprintf("%s_P%.4f", s.Base.Title, job.Period)
		}
		sc.Jobs[i] = job
	}
	return sc, nil
}
