package metrics

import (
	"sync/atomic"
	"time"
)

// EvaluationMetric summarises the work an evaluator did since Start.
type EvaluationMetric struct {
	Duration     time.Duration
	Propagations int64 // full or differential propagation rounds
	Recomputed   int64 // component values recomputed across all rounds
	CacheHits    int64 // state queries answered from the state's cached bundle
	Transitions  int64 // next-state computations
}

type Collector interface {
	Start()
	AddPropagation()
	AddRecomputed(n int)
	AddCacheHit()
	AddTransition()
	Complete() EvaluationMetric
}

type collector struct {
	startTime    time.Time
	propagations atomic.Int64
	recomputed   atomic.Int64
	cacheHits    atomic.Int64
	transitions  atomic.Int64
}

// NewCollector returns a collector safe to share between forked machines.
func NewCollector() Collector {
	return &collector{startTime: time.Now()}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.propagations.Store(0)
	m.recomputed.Store(0)
	m.cacheHits.Store(0)
	m.transitions.Store(0)
}

func (m *collector) AddPropagation() {
	m.propagations.Add(1)
}

func (m *collector) AddRecomputed(n int) {
	m.recomputed.Add(int64(n))
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddTransition() {
	m.transitions.Add(1)
}

func (m *collector) Complete() EvaluationMetric {
	return EvaluationMetric{
		Duration:     time.Since(m.startTime),
		Propagations: m.propagations.Load(),
		Recomputed:   m.recomputed.Load(),
		CacheHits:    m.cacheHits.Load(),
		Transitions:  m.transitions.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                     {}
func (m *dummyCollector) AddPropagation()            {}
func (m *dummyCollector) AddRecomputed(n int)        {}
func (m *dummyCollector) AddCacheHit()               {}
func (m *dummyCollector) AddTransition()             {}
func (m *dummyCollector) Complete() EvaluationMetric { return EvaluationMetric{} }
