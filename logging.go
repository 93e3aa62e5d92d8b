package imgmosaic

import "github.com/willibrandon/mtlog/core"

// Logger is the structured logging sink used throughout a Session. It
// is exactly mtlog's core.Logger, not a narrower interface of our own,
// so a caller can pass any mtlog-configured logger (file sink,
// console sink, seq sink) straight through.
//
// A nil Logger is valid: every call site in this package goes through
// the logDebug/logInfo/logWarn/logError helpers below, which no-op on a nil
// Session.logger rather than requiring every caller to construct one
// just to run a conversion.
type Logger = core.Logger

func (s *Session) logDebug(msg string, args ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, args...)
}

func (s *Session) logInfo(msg string, args ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Information(msg, args...)
}

func (s *Session) logWarn(msg string, args ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Warning(msg, args...)
}

func (s *Session) logError(msg string, args ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, args...)
}
