package parametric

// Option mutates a Config during FromNFA. Options are applied in order, so
// a later option overrides an earlier one that touches the same field.
type Option func(*Config)

// WithMaxParametricStates overrides Config.MaxParametricStates.
func WithMaxParametricStates(n int) Option {
	return func(c *Config) { c.MaxParametricStates = n }
}

// WithInitialCapacity overrides Config.InitialCapacity.
func WithInitialCapacity(n int) Option {
	return func(c *Config) { c.InitialCapacity = n }
}

// WithVerbose overrides Config.Verbose.
func WithVerbose(v bool) Option {
	return func(c *Config) { c.Verbose = v }
}
