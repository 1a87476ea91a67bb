package metrics

import (
	"othello/game"
	"time"
)

type SearchMetric struct {
	Depth       int
	Duration    time.Duration
	NodesBuilt  int // Nodes added while restoring full depth
	TreeSize    int // Nodes evaluated by minimax
	Value       int
	IsTreeReset bool
}

type MoveMetric struct {
	Step   int
	Player game.Stone
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Stone
	Result         game.Result
	Blacks         int
	Whites         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int)
	SetTreeReset(value bool)
	AddNodesBuilt(n int)
	SetTreeSize(n int)
	SetValue(v int)
	Complete() SearchMetric
}

type collector struct {
	depth       int
	startTime   time.Time
	nodesBuilt  int
	treeSize    int
	value       int
	isTreeReset bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodesBuilt = 0
	m.treeSize = 0
	m.value = 0
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset = value
}

func (m *collector) AddNodesBuilt(n int) {
	m.nodesBuilt += n
}

func (m *collector) SetTreeSize(n int) {
	m.treeSize = n
}

func (m *collector) SetValue(v int) {
	m.value = v
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		NodesBuilt:  m.nodesBuilt,
		TreeSize:    m.treeSize,
		Value:       m.value,
		IsTreeReset: m.isTreeReset,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)         {}
func (m *dummyCollector) SetTreeReset(value bool) {}
func (m *dummyCollector) AddNodesBuilt(n int)     {}
func (m *dummyCollector) SetTreeSize(n int)       {}
func (m *dummyCollector) SetValue(v int)          {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
