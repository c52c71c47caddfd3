// Package cli wires configuration, logging and the planner into the timebox
// command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sadopc/timebox/internal/clock"
	"github.com/sadopc/timebox/internal/config"
	"github.com/sadopc/timebox/internal/export"
	"github.com/sadopc/timebox/internal/logging"
	"github.com/sadopc/timebox/internal/schedule"
)

type options struct {
	configPath string
	target     string
	zone       string
	format     string
	output     string
	now        string
	withClock  bool
	verbose    bool
	logFile    string
}

// env is everything a command needs once flags and config are merged.
type env struct {
	log     zerolog.Logger
	zone    *clock.Location
	planner *schedule.Planner
	target  schedule.TargetTime
	format  export.Format
}

// NewRootCmd builds the timebox command tree.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "timebox",
		Short: "Plan work and rest intervals until a target time",
		Long: `timebox splits the time left until a target time of day into
25 minute work blocks, each followed by a 5 minute rest. Any leftover
shorter than a full interval becomes a final work block.

Examples:
  # Print today's plan until 16:00 London time
  timebox

  # Plan until 17:30 in New York and print JSON
  timebox --target 17:30 --zone America/New_York --format json

  # Follow the plan in the terminal
  timebox watch
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default ~/.config/timebox/config.yaml)")
	flags.StringVarP(&opts.target, "target", "t", "", "Target time of day, HH:MM or HH:MM:SS (default 16:00)")
	flags.StringVarP(&opts.zone, "zone", "z", "", "IANA time zone (default Europe/London)")
	flags.StringVar(&opts.now, "now", "", "Plan from this RFC 3339 time instead of the current time")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, csv or json (default text)")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "Write to this file instead of stdout")
	root.Flags().BoolVar(&opts.withClock, "clock", false, "Prefix text output with each activity's start time")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the schedule in an interactive terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
	watchCmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file while the view is open")
	root.AddCommand(watchCmd)

	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func setup(log zerolog.Logger, opts *options) (*env, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Debug().Err(err).Msg("no user config dir, using defaults")
		}
		path = p
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.target != "" {
		cfg.Target = opts.target
	}
	if opts.zone != "" {
		cfg.Zone = opts.zone
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}

	target, err := schedule.ParseTarget(cfg.Target)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	zone, err := clock.Load(cfg.Zone)
	if err != nil {
		return nil, err
	}
	if opts.now != "" {
		now, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return nil, fmt.Errorf("parse --now: %w", err)
		}
		zone = clock.Fixed(zone.Location(), now)
	}

	planner, err := schedule.NewPlanner(zone, schedule.DefaultConfig())
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("config", path).
		Str("target", target.String()).
		Str("zone", zone.Name()).
		Str("format", string(format)).
		Msg("settings resolved")

	return &env{
		log:     log,
		zone:    zone,
		planner: planner,
		target:  target,
		format:  format,
	}, nil
}

func runPrint(cmd *cobra.Command, opts *options) error {
	log := logging.Setup(cmd.ErrOrStderr(), opts.verbose)
	e, err := setup(log, opts)
	if err != nil {
		return err
	}

	s, err := e.planner.Plan(e.target)
	if err != nil {
		return fmt.Errorf("plan schedule: %w", err)
	}
	log.Debug().
		Time("start", s.StartTime).
		Time("end", s.EndTime).
		Int("activities", len(s.Timetable.Entries)).
		Dur("remaining", s.Remaining).
		Msg("schedule planned")

	if opts.output != "" {
		if err := export.ToFile(opts.output, e.format, s); err != nil {
			return err
		}
		log.Info().Str("path", opts.output).Str("format", string(e.format)).Msg("schedule written")
		return nil
	}

	if e.format == export.FormatText && opts.withClock {
		return export.ToText(cmd.OutOrStdout(), s, true)
	}
	return export.Write(cmd.OutOrStdout(), e.format, s)
}

func runWatch(cmd *cobra.Command, opts *options) error {
	// The view owns the terminal, so logs only go to an explicit file.
	log := zerolog.Nop()
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log = logging.Setup(f, opts.verbose)
	}

	e, err := setup(log, opts)
	if err != nil {
		return err
	}
	return watch(e)
}
