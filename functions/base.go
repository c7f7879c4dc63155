package functions

// baseReducer carries the identity every reducer shares.
type baseReducer struct {
	kind Kind
}

func newBase(kind Kind) baseReducer {
	return baseReducer{kind: kind}
}

func (b *baseReducer) Name() string {
	return string(b.kind)
}

func (b *baseReducer) Kind() Kind {
	return b.kind
}
