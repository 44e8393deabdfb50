package sequencer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lockstep/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the sequencer Graft node.
const NodeID graft.ID = "engine.sequencer"

func init() {
	graft.Register(graft.Node[*Sequencer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Sequencer, error) {
			publisher, err := graft.Dep[ports.Publisher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(publisher, log), nil
		},
	})
}
