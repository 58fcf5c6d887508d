package transcoder

import (
	"github.com/wippyai/scriptvalue/keycase"
	"go.uber.org/zap"
)

// DateStrategy selects how time.Time crosses the boundary.
type DateStrategy uint8

const (
	// DateRFC3339 encodes times as RFC 3339 strings with nanoseconds.
	DateRFC3339 DateStrategy = iota
	// DateUnixMilli encodes times as milliseconds since the Unix epoch,
	// the representation of a script Date.
	DateUnixMilli
)

func (s DateStrategy) String() string {
	if s == DateUnixMilli {
		return "unix-milli"
	}
	return "rfc3339"
}

// Config is the per-coder configuration. A Config is read-only once a
// coder has been built from it.
type Config struct {
	// KeyStrategy transforms keys. On encode it maps each key before it is
	// stored; on decode it maps stored object keys before lookup. Nil means
	// identity.
	KeyStrategy keycase.Func
	// UserInfo is opaque context handed to Marshaler and Unmarshaler hooks.
	UserInfo map[string]any
	Logger   *zap.Logger
	Compiler *Compiler
	Dates    DateStrategy
	// IntegerKeyObjects encodes integer-keyed maps as objects with decimal
	// string keys instead of [key, value] pair arrays.
	IntegerKeyObjects bool
}

type Option func(*Config)

func DefaultConfig() Config {
	return Config{
		Compiler: defaultCompiler,
	}
}

func WithKeyStrategy(f keycase.Func) Option {
	return func(c *Config) { c.KeyStrategy = f }
}

func WithUserInfo(info map[string]any) Option {
	return func(c *Config) { c.UserInfo = info }
}

func WithDateStrategy(s DateStrategy) Option {
	return func(c *Config) { c.Dates = s }
}

func WithIntegerKeyObjects() Option {
	return func(c *Config) { c.IntegerKeyObjects = true }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func WithCompiler(comp *Compiler) Option {
	return func(c *Config) { c.Compiler = comp }
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Compiler == nil {
		cfg.Compiler = defaultCompiler
	}
	return cfg
}

func (c *Config) key(k string) string {
	if c.KeyStrategy == nil {
		return k
	}
	return c.KeyStrategy(k)
}

func (c *Config) log() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return Logger()
}
