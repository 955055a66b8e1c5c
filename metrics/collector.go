package metrics

import (
	"sync/atomic"
	"time"
)

type RunMetric struct {
	Goroutines   int
	Scheme       string
	StartTime    time.Time
	Duration     time.Duration
	Hands        int
	Events       int
	Faults       int
	NodesCreated int
}

// HandsPerSecond is zero for an empty run.
func (m RunMetric) HandsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Hands) / m.Duration.Seconds()
}

type Collector interface {
	Start(goroutines int, scheme string)
	AddHand()
	AddEvent()
	AddNode(kind string)
	AddFault(kind string)
	Complete() RunMetric
}

type collector struct {
	goroutines   int
	scheme       string
	startTime    time.Time
	hands        atomic.Int64
	events       atomic.Int64
	faults       atomic.Int64
	nodesCreated atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, scheme string) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.scheme = scheme
}

func (m *collector) AddHand() {
	m.hands.Add(1)
}

func (m *collector) AddEvent() {
	m.events.Add(1)
}

func (m *collector) AddNode(kind string) {
	m.nodesCreated.Add(1)
}

func (m *collector) AddFault(kind string) {
	m.faults.Add(1)
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Goroutines:   m.goroutines,
		Scheme:       m.scheme,
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Hands:        int(m.hands.Load()),
		Events:       int(m.events.Load()),
		Faults:       int(m.faults.Load()),
		NodesCreated: int(m.nodesCreated.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, scheme string) {}
func (m *dummyCollector) AddHand()                            {}
func (m *dummyCollector) AddEvent()                           {}
func (m *dummyCollector) AddNode(kind string)                 {}
func (m *dummyCollector) AddFault(kind string)                {}
func (m *dummyCollector) Complete() RunMetric                 { return RunMetric{} }
