package delaygraph

import (
	"fmt"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// DelayGraph narrows Graph to the scheduling domain: it adds reserved
// source/terminus/maintenance vertices (tagged via model's sentinel
// JobIDs, the same scheme the original C++ delayGraph class uses with
// JobId::max()/max()-1/max()-2) and the predicates and accessors
// graphbuild, longestpath, partial, forward, and dd query against them.
type DelayGraph struct {
	*Graph

	sources     map[model.MachineID]VertexID
	terminus    VertexID
	hasTerminus bool
	maint       map[VertexID]bool
	nextMaintOp model.OperationID
}

// NewDelayGraph returns an empty DelayGraph.
func NewDelayGraph() *DelayGraph {
	return &DelayGraph{
		Graph:   NewGraph(),
		sources: make(map[model.MachineID]VertexID),
		maint:   make(map[VertexID]bool),
	}
}

// AddSource creates the synthetic source vertex for machine, returning
// ErrDuplicateSource if one already exists.
func (dg *DelayGraph) AddSource(machine model.MachineID) (VertexID, error) {
	if _, exists := dg.sources[machine]; exists {
		return 0, fmt.Errorf("%w: machine=%d", ErrDuplicateSource, machine)
	}
	id, err := dg.AddVertex(model.Operation{Job: model.SourceJobID, Op: model.OperationID(machine)})
	if err != nil {
		return 0, err
	}
	dg.sources[machine] = id
	return id, nil
}

// AddTerminus creates the single synthetic terminal vertex shared by
// every machine's final operations. Calling it twice is a no-op that
// returns the existing terminus.
func (dg *DelayGraph) AddTerminus() (VertexID, error) {
	if dg.hasTerminus {
		return dg.terminus, nil
	}
	id, err := dg.AddVertex(model.Operation{Job: model.TerminalJobID})
	if err != nil {
		return 0, err
	}
	dg.terminus = id
	dg.hasTerminus = true
	return id, nil
}

// AddMaint creates a synthetic maintenance vertex tagging op with
// actionID, mirroring the original's practice of letting a maintenance
// vertex carry the real operation id it is inserted in front of.
func (dg *DelayGraph) AddMaint(op model.OperationID, actionID uint32) (VertexID, error) {
	id, err := dg.AddVertex(model.Operation{Job: model.MaintJobID, Op: op, MaintClass: actionID})
	if err != nil {
		return 0, err
	}
	dg.maint[id] = true
	return id, nil
}

// IsSource reports whether v is a synthetic machine-source vertex.
func (dg *DelayGraph) IsSource(v VertexID) bool {
	vtx, err := dg.GetVertex(v)
	return err == nil && vtx.Op.Job == model.SourceJobID
}

// IsTerminus reports whether v is the synthetic terminal vertex.
func (dg *DelayGraph) IsTerminus(v VertexID) bool {
	vtx, err := dg.GetVertex(v)
	return err == nil && vtx.Op.Job == model.TerminalJobID
}

// IsMaint reports whether v is a synthetic maintenance vertex.
func (dg *DelayGraph) IsMaint(v VertexID) bool {
	return dg.maint[v]
}

// IsVisible reports whether v represents a real operation, i.e. neither
// source, terminus, nor maintenance.
func (dg *DelayGraph) IsVisible(v VertexID) bool {
	return !dg.IsSource(v) && !dg.IsTerminus(v) && !dg.IsMaint(v)
}

// Source returns the synthetic source vertex id for machine.
func (dg *DelayGraph) Source(machine model.MachineID) (VertexID, bool) {
	id, ok := dg.sources[machine]
	return id, ok
}

// Sources returns every machine-source vertex.
func (dg *DelayGraph) Sources() []Vertex {
	out := make([]Vertex, 0, len(dg.sources))
	for _, id := range dg.sources {
		v, err := dg.GetVertex(id)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Terminus returns the synthetic terminal vertex. The second return
// value is false if AddTerminus has not yet been called.
func (dg *DelayGraph) Terminus() (Vertex, bool) {
	if !dg.hasTerminus {
		return Vertex{}, false
	}
	v, err := dg.GetVertex(dg.terminus)
	return v, err == nil
}

// MaintVertices returns every synthetic maintenance vertex.
func (dg *DelayGraph) MaintVertices() []Vertex {
	out := make([]Vertex, 0, len(dg.maint))
	for id := range dg.maint {
		v, err := dg.GetVertex(id)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}
