package main

import (
	"os"

	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

func main() {
	zl, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer zl.Sync()
	logger = zl.Sugar()

	if err := rootCmd.Execute(); err != nil {
		logger.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
