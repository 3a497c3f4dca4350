package render

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogSink emits each line as a log entry at Level, Info when unset.
type LogSink struct {
	Logger *zap.Logger
	Level  zapcore.Level
}

func (s LogSink) PrintLine(line string) {
	if ce := s.Logger.Check(s.Level, line); ce != nil {
		ce.Write()
	}
}

// Discard drops everything.
var Discard LineSink = SinkFunc(func(string) {})
