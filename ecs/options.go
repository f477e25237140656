package ecs

// options collects World construction-time configuration. It follows
// the functional-options idiom used throughout the retrieval pack
// (e.g. hupe1980/vecgo's options.go).
type options struct {
	versioning            bool
	versionBits           uint
	initialSparseCapacity int
	retainEmptyArchetypes bool
	logger                *Logger
}

func defaultOptions() options {
	return options{
		versioning:            true,
		versionBits:           16,
		initialSparseCapacity: 16,
		retainEmptyArchetypes: true,
		logger:                NoopLogger(),
	}
}

// WorldOption configures a World at construction time.
type WorldOption func(*options)

// WithVersioning enables generational versioning with the given bit
// width (wrapping modulo 2^bits on recycle).
func WithVersioning(bits uint) WorldOption {
	return func(o *options) {
		o.versioning = true
		o.versionBits = bits
	}
}

// WithoutVersioning disables generational versioning: a recycled
// handle is identical, bit for bit, to the handle that freed it.
func WithoutVersioning() WorldOption {
	return func(o *options) {
		o.versioning = false
	}
}

// WithInitialSparseCapacity pre-reserves capacity in the entity index's
// sparse array. Values below 16 are clamped up to 16.
func WithInitialSparseCapacity(n int) WorldOption {
	return func(o *options) {
		o.initialSparseCapacity = n
	}
}

// WithRetainEmptyArchetypes controls whether an archetype that loses
// its last entity is kept around as a cache (default: true) or left to
// be garbage collected once the World drops its reference from the
// graph. Both are conforming per spec.md §3.
func WithRetainEmptyArchetypes(retain bool) WorldOption {
	return func(o *options) { o.retainEmptyArchetypes = retain }
}

// WithLogger installs a structured logger. Only system timing (via
// Scheduler) is logged through it; invariant violations panic without
// logging.
func WithLogger(l *Logger) WorldOption {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
