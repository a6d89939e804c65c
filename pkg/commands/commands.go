package commands

import (
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/logging"
	"tableflip.dev/daily/pkg/store"
)

func New() *cobra.Command {
	rt := &session{flags: &options.LogOptions{}}

	cmd := &cobra.Command{
		Use:   "daily",
		Short: base.Wrap80("A personal journal on the command line: dated entries, filters, batch edits and upcoming reminders."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			rt.setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, rt.flags)
	addCommands(cmd, rt)
	return cmd
}

func addCommands(topLevel *cobra.Command, rt *session) {
	addAdd(topLevel, rt)
	addShow(topLevel, rt)
	addEdit(topLevel, rt)
	addDone(topLevel, rt)
	addUpcoming(topLevel, rt)
	addRefresh(topLevel, rt)
	addInfo(topLevel, rt)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// session resolves config and opens the journal for a single invocation.
type session struct {
	flags *options.LogOptions
	cfg   store.Config
	// today is fixed on first use so every date in one run agrees.
	today entry.Date
}

type pathOverride struct {
	store.Config
	path string
}

func (p pathOverride) BasePath() string { return p.path }

func (rt *session) config() (store.Config, error) {
	if rt.cfg != nil {
		return rt.cfg, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if rt.flags != nil && rt.flags.Path != "" {
		cfg = pathOverride{Config: cfg, path: rt.flags.Path}
	}
	rt.cfg = cfg
	return cfg, nil
}

func (rt *session) setupLogging() {
	level := rt.flags.Level
	if level == "" {
		if cfg, err := rt.config(); err == nil {
			level = cfg.LogLevel()
		}
	}
	logging.Setup(os.Stderr, level)
	log.Debug().Str("level", level).Msg("logging configured")
}

func (rt *session) service() (*app.Service, error) {
	cfg, err := rt.config()
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(cfg)
	if err != nil {
		return nil, err
	}
	svc.Today = rt.Today
	return svc, nil
}

func (rt *session) Today() entry.Date {
	if rt.today.IsZero() {
		rt.today = entry.Today()
	}
	return rt.today
}
