package commands

import (
	"os"

	"uploadgate/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("uploadgate error", "err", err.Error())
	os.Exit(1)
}
