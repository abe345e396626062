package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Rakhulsr/go-cart/app/cmd"
	"github.com/Rakhulsr/go-cart/app/configs"
	"go.uber.org/zap"
)

func main() {
	env := configs.LoadEnv()

	logger, err := configs.NewLogger(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cmd.RunCli(context.Background(), os.Args, env, logger); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}
