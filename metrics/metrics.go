// Package metrics counts the traffic of iterator stages with prometheus counters.
package metrics

import (
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/adamluzsi/streams/iterators"
)

const (
	namespace  = "streams"
	stageLabel = "stage"
)

type Collector struct {
	elements  *prometheus.CounterVec
	exhausted *prometheus.CounterVec
}

// NewCollector registers the stream counters on reg.
// When the counters are already registered there, the existing ones are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	elements, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "elements_total",
		Help:      "number of elements delivered by a stage.",
	}, []string{stageLabel}))
	if err != nil {
		return nil, err
	}
	exhausted, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exhausted_total",
		Help:      "number of times a stage reported that it has no more elements.",
	}, []string{stageLabel}))
	if err != nil {
		return nil, err
	}
	return &Collector{elements: elements, exhausted: exhausted}, nil
}

func register(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return cv, nil
}

// Instrument wraps i, and counts every element taken through it under the stage label.
// The exhaustion is counted once, the first time HasNext reports false.
func Instrument[T any](c *Collector, i iterators.Iterator[T], stage string) iterators.Iterator[T] {
	return &instrumented[T]{
		Iterator:  i,
		elements:  c.elements.WithLabelValues(stage),
		exhausted: c.exhausted.WithLabelValues(stage),
	}
}

type instrumented[T any] struct {
	iterators.Iterator[T]
	elements  prometheus.Counter
	exhausted prometheus.Counter
	reported  bool
}

func (i *instrumented[T]) HasNext() bool {
	if i.Iterator.HasNext() {
		return true
	}
	if !i.reported {
		i.reported = true
		i.exhausted.Inc()
	}
	return false
}

func (i *instrumented[T]) Take() (T, error) {
	v, err := i.Iterator.Take()
	if err == nil {
		i.elements.Inc()
	}
	return v, err
}

func (i *instrumented[T]) Remove() error { return iterators.Remove(i.Iterator) }

// WriteText writes what g gathers in the prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
