package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nlstn/go-stafilter"
)

var (
	Version    = "develop"
	CommitHash = "n/a"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v      *viper.Viper
	cfg    *Config
	logger *slog.Logger
	opts   []stafilter.Option
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, v: viper.New()}
	setDefaults(a.v)

	root := &cobra.Command{
		Use:           "stafilter",
		Short:         "Check and evaluate SensorThings temporal filters",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Root().PersistentFlags().Lookup("config").Value.String())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate("stafilter version: " + Version + " git_commit: " + CommitHash + "\n")

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the config file (default ./stafilter.yaml)")
	flags.StringP("schema", "s", "observation", "Property schema: observation, datastream or any")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	_ = a.v.BindPFlag("schema", flags.Lookup("schema"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(newCheckCommand(a), newEvalCommand(a))
	return root
}

func (a *app) init(configFile string) error {
	cfg, err := loadConfig(a.v, configFile)
	if err != nil {
		return err
	}
	logger, err := cfg.logger(a.errOut)
	if err != nil {
		return err
	}
	schema, err := cfg.schema()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.opts = []stafilter.Option{
		stafilter.WithSchema(schema),
		stafilter.WithLogger(logger),
		stafilter.WithCache(stafilter.NewCache(cfg.Cache.Size)),
		stafilter.WithWorkers(cfg.Workers),
	}
	logger.Debug("configuration loaded",
		slog.String("file", a.v.ConfigFileUsed()),
		slog.String("schema", cfg.Schema),
		slog.Int("workers", cfg.Workers),
	)
	return nil
}

// fail logs err with its code and hands it back to cobra.
func (a *app) fail(msg string, err error) error {
	a.logger.Error(msg,
		slog.String("code", string(stafilter.ErrorCodeOf(err))),
		slog.Any("error", err),
	)
	return err
}
