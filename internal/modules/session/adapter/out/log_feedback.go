package out

import (
	"go.uber.org/zap"

	sessionout "stepone/internal/modules/session/port/out"
	"stepone/internal/platform/logging"
)

// LogFeedback records feedback cues in the log. A terminal has no vibration
// motor.
type LogFeedback struct {
	logger *zap.Logger
}

func NewLogFeedback(logger *zap.Logger) sessionout.Feedback {
	return LogFeedback{logger: logging.OrNop(logger).Named("feedback")}
}

func (f LogFeedback) Success() { f.logger.Debug("feedback", zap.String("cue", "success")) }
func (f LogFeedback) Warning() { f.logger.Debug("feedback", zap.String("cue", "warning")) }
func (f LogFeedback) Light()   { f.logger.Debug("feedback", zap.String("cue", "light")) }
