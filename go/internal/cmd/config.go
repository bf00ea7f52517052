package main

import (
	"io"

	"github.com/mcdev12/playclock/go/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	envFile    string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "playclock",
		Short: "Track how long each player has been on the field",
		Long: `playclock keeps a master game clock and one clock per player. ` +
			`Active players accumulate time while the master clock runs. ` +
			`Rosters can be saved, loaded, exported and imported as named lists.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a yaml config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to a .env file")

	root.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newSummaryCmd(opts),
	)
	return root
}

func (o *rootOptions) load(logOut io.Writer) error {
	setupLogging(logOut, zerolog.InfoLevel)

	if err := config.LoadDotEnv(o.envFile); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	setupLogging(logOut, cfg.Level())
	return nil
}

func setupLogging(out io.Writer, level zerolog.Level) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	zerolog.SetGlobalLevel(level)
}
