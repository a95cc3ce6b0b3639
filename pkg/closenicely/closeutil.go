package closenicely

import (
	"io"

	"go.uber.org/zap"
)

// OrDebug closes `closer`, logging a failure at debug level. `what` names the resource in the log.
func OrDebug(closer io.Closer, what string) {
	FuncOrDebug(closer.Close, what)
}

func FuncOrDebug(closer func() error, what string) {
	if err := closer(); err != nil {
		zap.L().Debug("Failed to close resource", zap.String("resource", what), zap.Error(err))
	}
}
