package elasticsearch

// Options carries per-operation overrides.
type Options struct {
	// Index overrides the model's default index for this operation only.
	Index string
	// WaitFor blocks the request until the change is visible to searches
	// (refresh=wait_for). Useful when writing tests.
	WaitFor bool
}

type Option func(*Options)

// WithIndex overrides the target index for one operation.
func WithIndex(index string) Option {
	return func(o *Options) {
		o.Index = index
	}
}

// WithWaitFor makes the operation wait until the change is visible to
// subsequent reads before returning.
func WithWaitFor() Option {
	return func(o *Options) {
		o.WaitFor = true
	}
}

func applyOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) refresh() string {
	if o.WaitFor {
		return "wait_for"
	}
	return ""
}
