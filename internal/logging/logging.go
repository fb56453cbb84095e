package logging

import (
	"go.uber.org/zap"
)

var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

func init() {
	// Default so packages can log before Init runs (tests, tools).
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

func Init(debug bool) error {
	var (
		logger *zap.Logger
		err    error
	)

	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	Log = logger
	SLog = logger.Sugar()
	return nil
}

func Sync() {
	_ = Log.Sync()
}
