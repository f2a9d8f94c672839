package expressions

// AbsentPolicy decides whether a Query's transform runs when its path does
// not resolve.
type AbsentPolicy int

const (
	// SkipTransform returns nil for an absent path without calling Transform.
	SkipTransform AbsentPolicy = iota
	// ApplyTransform calls Transform with nil so it can supply a default,
	// e.g. missing certificates become an empty mapping.
	ApplyTransform
)

// Transform normalizes a raw fragment.
type Transform func(raw any) any

// Query is a path expression with an optional transform.
type Query struct {
	Path      string
	Transform Transform
	OnAbsent  AbsentPolicy
}

// Q builds a query without a transform.
func Q(path string) Query {
	return Query{Path: path}
}

// Then returns a copy of q that pipes present values through fn.
func (q Query) Then(fn Transform) Query {
	q.Transform = fn
	return q
}

// OrElse returns a copy of q whose transform also runs on absent values.
func (q Query) OrElse() Query {
	q.OnAbsent = ApplyTransform
	return q
}

// Run evaluates q against data.
func (e *Evaluator) Run(q Query, data any) (any, error) {
	raw, err := e.Evaluate(q.Path, data)
	if err != nil {
		return nil, err
	}

	if q.Transform == nil {
		return raw, nil
	}

	if raw == nil && q.OnAbsent != ApplyTransform {
		return nil, nil
	}

	return q.Transform(raw), nil
}
