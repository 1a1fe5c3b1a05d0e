package cli

import (
	"fmt"

	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
)

// sdkLogger adapts the structured logger to the SDK's printf-style Logger.
type sdkLogger struct {
	l logging.Logger
}

func (s sdkLogger) Debugf(format string, args ...interface{}) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s sdkLogger) Infof(format string, args ...interface{})  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s sdkLogger) Errorf(format string, args ...interface{}) { s.l.Error(fmt.Sprintf(format, args...)) }

//Personal.AI order the ending
