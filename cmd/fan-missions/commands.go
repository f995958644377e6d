package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/justestif/go-fan-missions/internal/config"
	"github.com/justestif/go-fan-missions/internal/db"
	"github.com/justestif/go-fan-missions/internal/logging"
	"github.com/justestif/go-fan-missions/internal/seed"
	"github.com/justestif/go-fan-missions/internal/web"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Migrate the database and start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "seed",
				Usage: "Load the demo data set before serving",
			},
		},
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create or update the database schema",
		Action: migrate,
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:   "seed",
		Usage:  "Load the demo users, tracks and missions",
		Action: seedData,
	}
}

// env is what every command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	db     *db.DB
}

// setup loads configuration, builds the logger, connects and migrates.
// Callers must call close on the returned env.
func setup(ctx context.Context, cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"), cmd.String("env-file"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(nil, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	database, err := db.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	logger.Debug("schema up to date")

	return &env{cfg: cfg, logger: logger, db: database}, nil
}

func (e *env) close() {
	e.db.Close()
}

func serve(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if cmd.Bool("seed") {
		if _, err := seed.Run(ctx, e.db, seed.Default, e.logger); err != nil {
			return err
		}
	}

	addr := e.cfg.Server.Addr
	if v := cmd.String("addr"); v != "" {
		addr = v
	}

	server := web.NewServer(web.ServerConfig{
		Addr:       addr,
		CORSOrigin: e.cfg.Server.CORSOrigin,
		Logger:     e.logger,
		Store:      web.NewStore(e.db),
	})
	return server.Run(ctx)
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	e.logger.Info("migrations applied")
	return nil
}

func seedData(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	_, err = seed.Run(ctx, e.db, seed.Default, e.logger)
	return err
}
