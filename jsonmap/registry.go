package jsonmap

import (
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
)

// TypeWitness identifies a mappable type at runtime and knows how to build its
// mapper. Generic types carry the identities of their actual arguments, so
// Page[int] and Page[string] are distinct.
type TypeWitness[T any] struct {
	id    string
	build func(res *Resolution) (Mapper[T], error)
}

// NewTypeWitness returns a witness with the given identity and constructor.
func NewTypeWitness[T any](id string, build func(res *Resolution) (Mapper[T], error)) TypeWitness[T] {
	return TypeWitness[T]{id: id, build: build}
}

// ID returns the type identity.
func (w TypeWitness[T]) ID() string {
	return w.id
}

// GenericID formats the identity of a generic type instantiated with args.
func GenericID(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}

	return name + "[" + strings.Join(args, ",") + "]"
}

// Observer receives registry events.
type Observer interface {
	ObserveLookup(hit bool)
	ObserveBuild(ids []string, elapsed time.Duration)
}

// Stats is a snapshot of registry counters.
type Stats struct {
	Mappers int
	Built   int64
	Hits    int64
	Misses  int64
}

// Registry caches one mapper per type identity.
//
// Construction of missing mappers is serialized per registry. A mapper graph
// is built privately and published only once every mapper in it is fully
// constructed, so readers never observe a partially built mapper.
type Registry struct {
	mu       sync.RWMutex
	build    sync.Mutex
	mappers  map[string]any
	observer Observer

	built  atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Registry.
type Option func(*Registry)

// WithObserver reports lookups and builds to o.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{mappers: make(map[string]any)}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Len returns the number of published mappers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.mappers)
}

// Stats returns the current counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Mappers: r.Len(),
		Built:   r.built.Load(),
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
	}
}

func (r *Registry) lookup(id string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappers[id]

	return m, ok
}

func (r *Registry) publish(res *Resolution) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	published := make([]string, 0, len(res.order))

	for _, id := range res.order {
		if _, ok := r.mappers[id]; ok {
			continue
		}

		r.mappers[id] = res.pending[id]
		published = append(published, id)
	}

	r.built.Add(int64(len(published)))

	return published
}

// Resolution is the set of mappers under construction during one lookup.
// Generated constructors register themselves before resolving any dependency,
// which is what terminates recursion through self-referential types.
type Resolution struct {
	registry *Registry
	pending  map[string]any
	order    []string
}

func newResolution(r *Registry) *Resolution {
	return &Resolution{registry: r, pending: make(map[string]any)}
}

// Register adds a mapper under construction. Registering an identity twice
// keeps the first mapper.
func (res *Resolution) Register(id string, m any) {
	if _, ok := res.pending[id]; ok {
		return
	}

	res.pending[id] = m
	res.order = append(res.order, id)
}

// Pending returns the identities registered so far, in registration order.
func (res *Resolution) Pending() []string {
	return append([]string(nil), res.order...)
}

// Resolve returns the mapper for w, reusing a published or in-flight mapper
// when one exists and building it otherwise.
func Resolve[T any](res *Resolution, w TypeWitness[T]) (Mapper[T], error) {
	if m, ok := res.registry.lookup(w.id); ok {
		return cast[T](w.id, m)
	}

	if m, ok := res.pending[w.id]; ok {
		return cast[T](w.id, m)
	}

	if w.build == nil {
		return nil, errors.Newf("jsonmap: no constructor for %s", w.id)
	}

	m, err := w.build(res)
	if err != nil {
		return nil, errors.Wrapf(err, "build mapper %s", w.id)
	}

	res.Register(w.id, m)

	return m, nil
}

// ResolveObject is Resolve for types with a generated object mapper.
func ResolveObject[T any](res *Resolution, w TypeWitness[T]) (ObjectMapper[T], error) {
	m, err := Resolve(res, w)
	if err != nil {
		return nil, err
	}

	om, ok := m.(ObjectMapper[T])
	if !ok {
		return nil, errors.Wrapf(ErrWitnessMismatch, "%s is not an object mapper", w.id)
	}

	return om, nil
}

// MapperFor returns the mapper for w from reg, building and publishing it and
// everything it depends on when missing.
//
// Constructors run with the registry's build lock held and must resolve their
// dependencies through the Resolution they are given, never through MapperFor.
func MapperFor[T any](reg *Registry, w TypeWitness[T]) (Mapper[T], error) {
	if m, ok := reg.lookup(w.id); ok {
		reg.observeLookup(true)
		return cast[T](w.id, m)
	}

	reg.build.Lock()
	defer reg.build.Unlock()

	if m, ok := reg.lookup(w.id); ok {
		reg.observeLookup(true)
		return cast[T](w.id, m)
	}

	reg.observeLookup(false)

	start := time.Now()
	res := newResolution(reg)

	m, err := Resolve(res, w)
	if err != nil {
		return nil, err
	}

	published := reg.publish(res)
	if reg.observer != nil {
		reg.observer.ObserveBuild(published, time.Since(start))
	}

	return m, nil
}

// ObjectMapperFor is MapperFor for types with a generated object mapper.
func ObjectMapperFor[T any](reg *Registry, w TypeWitness[T]) (ObjectMapper[T], error) {
	m, err := MapperFor(reg, w)
	if err != nil {
		return nil, err
	}

	om, ok := m.(ObjectMapper[T])
	if !ok {
		return nil, errors.Wrapf(ErrWitnessMismatch, "%s is not an object mapper", w.id)
	}

	return om, nil
}

// MustMapperFor is MapperFor that panics on failure. It is meant for package
// level variables.
func MustMapperFor[T any](reg *Registry, w TypeWitness[T]) Mapper[T] {
	m, err := MapperFor(reg, w)
	if err != nil {
		panic(err)
	}

	return m
}

func (r *Registry) observeLookup(hit bool) {
	if hit {
		r.hits.Inc()
	} else {
		r.misses.Inc()
	}

	if r.observer != nil {
		r.observer.ObserveLookup(hit)
	}
}

func cast[T any](id string, m any) (Mapper[T], error) {
	typed, ok := m.(Mapper[T])
	if !ok {
		return nil, errors.Wrapf(ErrWitnessMismatch, "%s is bound to %T", id, m)
	}

	return typed, nil
}
