package embeddings

type options struct {
	StripNewLines bool
}

type Option func(*options)

// WithStripNewLines controls newline flattening before embedding.
func WithStripNewLines(strip bool) Option {
	return func(opts *options) {
		opts.StripNewLines = strip
	}
}
