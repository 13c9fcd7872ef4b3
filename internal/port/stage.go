package port

// Stage is the fit/transform contract shared by every pipeline step.
// Fit learns whatever corpus-dependent state the stage needs (most stages
// have none); Transform maps a batch in order.
type Stage[In, Out any] interface {
	Fit(in In) error
	Transform(in In) (Out, error)
}

// FitTransform fits s on in and transforms the same input.
func FitTransform[In, Out any](s Stage[In, Out], in In) (Out, error) {
	if err := s.Fit(in); err != nil {
		var zero Out
		return zero, err
	}
	return s.Transform(in)
}
