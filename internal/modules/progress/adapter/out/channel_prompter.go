package out

import (
	"go.uber.org/zap"

	progressout "stepone/internal/modules/progress/port/out"
	"stepone/internal/platform/logging"
)

// ChannelPrompter delivers conversion prompts on a buffered channel. A prompt
// that finds the channel full is dropped; one pending prompt is enough.
type ChannelPrompter struct {
	ch     chan struct{}
	logger *zap.Logger
}

func NewChannelPrompter(logger *zap.Logger) *ChannelPrompter {
	return &ChannelPrompter{ch: make(chan struct{}, 1), logger: logging.OrNop(logger)}
}

var _ progressout.ConversionPrompter = (*ChannelPrompter)(nil)

func (p *ChannelPrompter) PromptConversion() {
	select {
	case p.ch <- struct{}{}:
		p.logger.Debug("conversion prompt queued")
	default:
		p.logger.Debug("conversion prompt already pending")
	}
}

func (p *ChannelPrompter) Prompts() <-chan struct{} {
	return p.ch
}
