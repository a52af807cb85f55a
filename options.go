package sift

import "log/slog"

// DefaultNoneTitle is the title of the None item when WithNone gets an empty title.
const DefaultNoneTitle = "None"

type options struct {
	noneIncluded bool
	noneTitle    string

	logger *slog.Logger
}

// Option configures filters and cores.
type Option func(*options)

// WithNone offers a None item matching the items whose field is absent or empty.
// The None item starts enabled.
func WithNone(title string) Option {
	return func(o *options) {
		o.noneIncluded = true
		if title != "" {
			o.noneTitle = title
		}
	}
}

// WithLogger sets the logger used for loads and wiring faults.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		noneTitle: DefaultNoneTitle,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
