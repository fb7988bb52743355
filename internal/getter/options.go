package getter

// Options describes a single input request.
type Options[T any] struct {
	// Message is the prompt text, e.g. "Start point".
	Message string

	// Keywords are optional alternative responses.
	Keywords *Keywords

	// Jig is called with the tentative value as the user moves the
	// cursor or types.
	Jig func(T)
}

// NewOptions creates options with a message and optional keywords.
func NewOptions[T any](message string, keywords ...string) Options[T] {
	o := Options[T]{Message: message}
	if len(keywords) > 0 {
		o.Keywords = NewKeywords(keywords...)
	}
	return o
}

// WithJig returns a copy of o with the jig callback set.
func (o Options[T]) WithJig(fn func(T)) Options[T] {
	o.Jig = fn
	return o
}

// WithDefault returns a copy of o with keyword added as the default.
func (o Options[T]) WithDefault(keyword string) Options[T] {
	if o.Keywords == nil {
		o.Keywords = NewKeywords()
	}
	o.Keywords.Add(keyword, true)
	return o
}

// FullPrompt renders the prompt as "Message [Kw1, Kw2] <Default>: ".
func (o Options[T]) FullPrompt() string {
	s := o.Message
	if kw := o.Keywords.String(); kw != "" {
		if s != "" {
			s += " "
		}
		s += kw
	}
	return s + ": "
}

func (o Options[T]) jig(v T) {
	if o.Jig != nil {
		o.Jig(v)
	}
}
