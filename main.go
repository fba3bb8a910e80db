package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/reversi/internal"
	"github.com/rocketscienceinc/reversi/internal/config"
)

const version = "1.0.0"

// main - is the entry point of the application. It parses flags, initializes the configuration, logger, and runs the game.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	cmd := &cli.Command{
		Name:    "reversi",
		Usage:   "play Reversi for two players in the terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yml",
				Usage:   "path to the yaml config file",
				Sources: cli.EnvVars("REVERSI_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "override the save storage: file, sqlite or redis",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	conf := initConfig(cmd.String("config"), cmd.String("storage"))
	logger := initLogger(conf)

	return app.RunApp(ctx, logger, conf, os.Stdin, os.Stdout)
}

// initialize config.
func initConfig(path, storage string) *config.Config {
	conf := config.MustLoad(path)

	if storage != "" {
		conf.Storage = storage
		if err := conf.Validate(); err != nil {
			panic(fmt.Errorf("invalid --storage flag: %w", err))
		}
	}

	return conf
}

// initialize logger. Logs go to stderr so they do not mix with the board.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
