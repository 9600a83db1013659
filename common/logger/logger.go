package logger

import (
	"fmt"
	"sync"

	glog "github.com/Laisky/go-utils/v5/log"

	"github.com/nanokit/bedrock-relay/common/config"
)

var (
	Logger      glog.Logger
	initLogOnce sync.Once
)

// init initializes the logger automatically when the package is imported
func init() {
	initLogger()
}

func initLogger() {
	initLogOnce.Do(func() {
		var err error
		level := glog.LevelInfo
		if config.DebugEnabled {
			level = glog.LevelDebug
		}

		Logger, err = glog.NewConsoleWithName("bedrock-relay", level)
		if err != nil {
			panic(fmt.Sprintf("failed to create logger: %+v", err))
		}
	})
}
