// Package mock generates plausible random values for compiled schemas and
// builds executable GraphQL schemas whose resolvers return them.
package mock

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/broady/mockql/schema"
)

// DefaultListLength is the number of elements mocked for list fields.
const DefaultListLength = 2

// Generator produces one value for a scalar kind. Generators must not
// block; r is never shared with another goroutine while they run.
type Generator func(r *rand.Rand) any

// DefaultGenerators returns the built-in generator for each scalar kind.
func DefaultGenerators() map[schema.ScalarKind]Generator {
	return map[schema.ScalarKind]Generator{
		schema.ScalarInt:     func(r *rand.Rand) any { return r.IntN(201) - 100 },
		schema.ScalarFloat:   func(r *rand.Rand) any { return r.Float64()*200 - 100 },
		schema.ScalarString:  func(*rand.Rand) any { return "Hello World" },
		schema.ScalarBoolean: func(r *rand.Rand) any { return r.IntN(2) == 1 },
		schema.ScalarJSON:    func(*rand.Rand) any { return map[string]any{} },
	}
}

// Mocker produces mock values from seeded generators. It is safe for
// concurrent use.
type Mocker struct {
	mu         sync.Mutex
	rng        *rand.Rand
	generators map[schema.ScalarKind]Generator
	listLength int
	logger     *slog.Logger
}

// Option configures a Mocker.
type Option func(*Mocker)

// WithSeed seeds the random source so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Mocker) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithGenerator replaces the generator for one scalar kind.
func WithGenerator(kind schema.ScalarKind, gen Generator) Option {
	return func(m *Mocker) {
		m.generators[kind] = gen
	}
}

// WithListLength sets how many elements list fields mock. Negative values
// are treated as zero.
func WithListLength(n int) Option {
	return func(m *Mocker) {
		m.listLength = max(n, 0)
	}
}

// WithLogger sets the logger used to report failing generators.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mocker) {
		m.logger = logger
	}
}

// New creates a Mocker. Without WithSeed the source is seeded with zero.
func New(opts ...Option) *Mocker {
	m := &Mocker{
		generators: DefaultGenerators(),
		listLength: DefaultListLength,
	}
	WithSeed(0)(m)
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// ListLength returns the number of elements mocked for lists.
func (m *Mocker) ListLength() int { return m.listLength }

// Scalar generates a value for kind. A missing or panicking generator
// yields nil, which resolves to null.
func (m *Mocker) Scalar(kind schema.ScalarKind) (v any) {
	gen, ok := m.generators[kind]
	if !ok || gen == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Warn("mock generator failed",
				slog.String("scalar", kind.String()),
				slog.Any("panic", rec))
			v = nil
		}
	}()
	return gen(m.rng)
}

// Value generates a complete value for t. Objects become maps with every
// field mocked; lists hold ListLength elements.
func (m *Mocker) Value(t schema.TypeDescriptor) any {
	switch d := t.(type) {
	case *schema.ScalarDescriptor:
		return m.Scalar(d.Scalar)
	case *schema.ListDescriptor:
		out := make([]any, m.listLength)
		for i := range out {
			out[i] = m.Value(d.Element)
		}
		return out
	case *schema.ObjectDescriptor:
		if len(d.Fields) == 0 {
			return m.Scalar(schema.ScalarJSON)
		}
		out := make(map[string]any, len(d.Fields))
		for _, f := range d.Fields {
			out[f.Name] = m.Value(f.Type)
		}
		return out
	default:
		return nil
	}
}
