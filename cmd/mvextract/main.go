package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/tauraamui/mvextract/pkg/config"
	"github.com/tauraamui/mvextract/pkg/configdef"
	"github.com/tauraamui/mvextract/pkg/log"
)

const usage = "Usage: mvextract <input> | setup | probe <media> | segment <media> | features <motion.json>"

var errUsage = errors.New(usage)

type Command struct {
	args     []string
	resolver configdef.Resolver
	creator  configdef.Creator
}

// Setup writes the default config and creates the run database.
func (cmd *Command) Setup() (string, error) {
	log.Info("Setting up mvextract...")

	err := cmd.creator.Create()
	if err != nil {
		if !errors.Is(err, configdef.ErrConfigAlreadyExists) {
			return "", err
		}
		log.Error(err.Error())
	}

	values, err := cmd.resolver.Resolve()
	if err != nil {
		return "", err
	}
	s, err := openStore(values.DatabasePath)
	if err != nil {
		return "", err
	}
	if err := s.Close(); err != nil {
		return "", err
	}

	return "Setup successful...", nil
}

func (cmd *Command) Manage(ctx context.Context) (string, error) {
	if len(cmd.args) < 1 {
		return "", errUsage
	}

	command := cmd.args[0]
	switch command {
	case "setup":
		return cmd.Setup()
	case "probe", "segment", "features":
		if len(cmd.args) < 2 {
			return "", errUsage
		}
	case "help", "-h", "--help":
		return usage, nil
	}

	values, err := cmd.resolver.Resolve()
	if err != nil {
		return "", err
	}
	if values.Debug {
		log.SetLevel("debug")
	}

	switch command {
	case "probe":
		return probeMedia(cmd.args[1])
	case "segment":
		return segmentMedia(ctx, cmd.args[1], values.Segment)
	case "features":
		return extractFeatures(cmd.args[1], values.Features)
	default:
		return extractMotion(ctx, command, values)
	}
}

// interruptible cancels the returned context on SIGINT or SIGTERM.
func interruptible() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case killSignal := <-interrupt:
			fmt.Print("\r")
			log.Error("Received signal: %s", killSignal)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(interrupt)
		cancel()
	}
}

func init() {
	log.SetLevel(os.Getenv("MVEXTRACT_LOGGING_LEVEL"))
}

func main() {
	ctx, stop := interruptible()

	cmd := &Command{
		args:     os.Args[1:],
		resolver: config.DefaultResolver(),
		creator:  config.DefaultCreator(),
	}
	status, err := cmd.Manage(ctx)
	stop()
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	fmt.Println(status)
}
