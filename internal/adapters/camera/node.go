package camera

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scango/internal/adapters/logger"
	"go.trai.ch/scango/internal/core/ports"
)

// NodeID is the unique identifier for the camera factory Graft node.
const NodeID graft.ID = "adapter.camera_factory"

// Factory builds decoders for a configured command.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// New returns a camera that runs command. An empty command yields a camera
// whose Open always fails with domain.ErrCameraCommandMissing.
func (f *Factory) New(command []string) *Decoder {
	return NewDecoder(command, f.logger)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
