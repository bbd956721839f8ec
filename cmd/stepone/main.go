package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stepone/internal/bootstrap"
	progressdto "stepone/internal/modules/progress/dto"
	sessiondto "stepone/internal/modules/session/dto"
	"stepone/internal/platform/config"
	apperrors "stepone/internal/platform/errors"
	"stepone/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "stepone",
		Short:         "One small mission a day toward your big ambition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "directory holding progress, passport and logs")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newOnboardCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newMissionsCmd(opts))
	root.AddCommand(newStartCmd(opts))
	root.AddCommand(newVisionCmd(opts))
	root.AddCommand(newAmbitionCmd(opts))
	root.AddCommand(newStampsCmd(opts))
	root.AddCommand(newPassportCmd(opts))
	root.AddCommand(newAccountCmd(opts))
	root.AddCommand(newUpgradeCmd(opts))
	root.AddCommand(newRestoreCmd(opts))
	root.AddCommand(newResetCmd(opts))
	return root
}

func defaultDataDir() string {
	if dir := os.Getenv("STEPONE_DATA_DIR"); dir != "" {
		return dir
	}
	return ".stepone"
}

// withApp loads config, logger and app, runs fn and releases everything.
func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) error {
	cfg, err := config.Load(opts.dataDir)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogPath, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close app", zap.Error(closeErr))
		}
	}()
	return fn(app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the StepOne terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, bootstrap.RunTUI)
		},
	}
}

func newOnboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard <travel|business|hobby|health>",
		Short: "Pick your ambition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Onboard(context.Background(), args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "ambition set: %s\n", out.Progress.Ambition)
				if out.Effects.PaywallOffer {
					_, _ = fmt.Fprintln(w, "unlock the full 30-day journey with `stepone upgrade --tier subscription|lifetime`")
				}
				return nil
			})
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streak, journey and account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				p, err := app.ProgressCLI.Status(ctx)
				if err != nil {
					return err
				}
				account, err := app.EntitlementCLI.Status(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if !p.Onboarded {
					_, _ = fmt.Fprintln(w, "not onboarded: run `stepone onboard <ambition>`")
					return nil
				}
				last := "never"
				if p.LastCompletion != nil {
					last = p.LastCompletion.Local().Format("2006-01-02 15:04")
				}
				_, _ = fmt.Fprintf(w, "ambition: %s\nstreak: %d\nlast completion: %s\njourney day: %d\nfoundation today: %s\nstamps: %d\n",
					p.Ambition, p.StreakCount, last, p.CompletedJourneyIndex, strings.Join(p.CompletedFoundationIDs, ","), p.StampCount)
				_, _ = fmt.Fprintf(w, "account: %s %s\nplan: %s %s\n", account.Account, account.AccountID, account.Paid, account.Tier)
				return nil
			})
		},
	}
}

func newMissionsCmd(opts *rootOptions) *cobra.Command {
	var ambition string
	missions := &cobra.Command{
		Use:   "missions",
		Short: "List foundation and journey missions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				p, err := app.ProgressCLI.Status(ctx)
				if err != nil {
					return err
				}
				if ambition == "" {
					if !p.Onboarded {
						return apperrors.ErrNotOnboarded
					}
					ambition = p.Ambition
				}
				plan, err := app.CatalogCLI.MissionsFor(ctx, ambition)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s foundation\n", plan.Ambition)
				for _, m := range plan.Foundation {
					marker := " "
					for _, done := range p.CompletedFoundationIDs {
						if done == m.ID {
							marker = "x"
						}
					}
					_, _ = fmt.Fprintf(w, "  [%s] %s\t%s\t%ds\n", marker, m.ID, m.Title, m.DurationSeconds)
				}
				_, _ = fmt.Fprintln(w, "journey")
				for _, m := range plan.Journey {
					marker := " "
					switch {
					case m.Position < p.CompletedJourneyIndex:
						marker = "x"
					case m.Position == p.CompletedJourneyIndex:
						marker = ">"
					}
					pro := ""
					if m.IsPremium {
						pro = "\tpro"
					}
					_, _ = fmt.Fprintf(w, "  [%s] %s\t%s\t%ds%s\n", marker, m.ID, m.Title, m.DurationSeconds, pro)
				}
				return nil
			})
		},
	}
	missions.Flags().StringVar(&ambition, "ambition", "", "ambition to list (defaults to your current one)")
	return missions
}

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start <mission-id>",
		Short: "Start a mission and run its timer in this terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				started, err := app.SessionCLI.Start(context.Background(), args[0])
				if err != nil {
					return err
				}
				return runTimer(cmd.OutOrStdout(), app, started.Title)
			})
		},
	}
}

func newVisionCmd(opts *rootOptions) *cobra.Command {
	var intent string
	var seconds, minutes int
	vision := &cobra.Command{
		Use:   "vision --intent <text> [--seconds 120|240|360 | --minutes N]",
		Short: "Run a vision session (Pro)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("minutes") && !cmd.Flags().Changed("seconds") {
				seconds = 0
			}
			return withApp(opts, func(app *bootstrap.App) error {
				started, err := app.SessionCLI.StartVision(context.Background(), intent, seconds, minutes)
				if err != nil {
					return err
				}
				return runTimer(cmd.OutOrStdout(), app, started.Intent)
			})
		},
	}
	vision.Flags().StringVar(&intent, "intent", "", "what you are picturing")
	vision.Flags().IntVar(&seconds, "seconds", 240, "preset length: 120, 240 or 360")
	vision.Flags().IntVar(&minutes, "minutes", 0, "custom length in whole minutes")
	return vision
}

// runTimer ticks the active session until it completes or a signal ends it.
func runTimer(w io.Writer, app *bootstrap.App, label string) error {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	_, _ = fmt.Fprintf(w, "%s: stay here until the timer ends (ctrl+c cancels)\n", label)
	out, err := app.SessionCLI.Run(ctx, func(tick sessiondto.TickOutput) {
		_, _ = fmt.Fprintf(w, "\r%d:%02d ", tick.Session.RemainingSeconds/60, tick.Session.RemainingSeconds%60)
	})
	_, _ = fmt.Fprintln(w)
	switch {
	case errors.Is(err, apperrors.ErrSessionCancelled), errors.Is(err, apperrors.ErrSessionAbandoned):
		_, _ = fmt.Fprintf(w, "session %s, timer reset\n", out.Session.CancelReason)
		return nil
	case err != nil:
		return err
	}
	if out.Recorded != nil {
		printStamp(w, *out.Recorded)
	}
	return nil
}

func printStamp(w io.Writer, recorded progressdto.MutationOutput) {
	_, _ = fmt.Fprintf(w, "stamp earned! streak %d, %d stamps\n", recorded.Progress.StreakCount, recorded.Progress.StampCount)
	if recorded.Effects.ConversionPrompt {
		_, _ = fmt.Fprintln(w, "keep your passport safe: `stepone account link`")
	}
}

func newAmbitionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ambition <travel|business|hobby|health>",
		Short: "Switch ambition (Pro)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				p, err := app.ProgressCLI.SwitchAmbition(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ambition: %s (journey day %d kept)\n", p.Ambition, p.CompletedJourneyIndex)
				return nil
			})
		},
	}
}

func newStampsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stamps",
		Short: "List passport stamps, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				stamps, err := app.ProgressCLI.Stamps(context.Background())
				if err != nil {
					return err
				}
				if len(stamps) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no stamps yet")
					return nil
				}
				for _, s := range stamps {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tx%d\t%s\t%s\n", s.EarnedAt.Local().Format("2006-01-02 15:04"), s.MissionTitle, s.MissionCount, s.BadgeIcon, s.BadgeColor)
				}
				return nil
			})
		},
	}
}

func newPassportCmd(opts *rootOptions) *cobra.Command {
	passport := &cobra.Command{Use: "passport", Short: "Passport operations"}
	passport.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write stamps as markdown notes with an index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.ExportPassport(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "passport exported: written=%d kept=%d index=%s\n", out.Written, out.Skipped, out.IndexPath)
				return nil
			})
		},
	})
	return passport
}

func newAccountCmd(opts *rootOptions) *cobra.Command {
	account := &cobra.Command{Use: "account", Short: "Account operations"}
	account.AddCommand(&cobra.Command{
		Use:   "link",
		Short: "Sign in and link this guest profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				status, err := app.EntitlementCLI.LinkAccount(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", status.AccountID)
				return nil
			})
		},
	})
	return account
}

func newUpgradeCmd(opts *rootOptions) *cobra.Command {
	var tier string
	upgrade := &cobra.Command{
		Use:   "upgrade --tier <subscription|lifetime>",
		Short: "Purchase StepOne Pro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				status, err := app.EntitlementCLI.Upgrade(context.Background(), tier)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welcome to Pro (%s)\n", status.Tier)
				return nil
			})
		},
	}
	upgrade.Flags().StringVar(&tier, "tier", "subscription", "subscription or lifetime")
	return upgrade
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore previous purchases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.EntitlementCLI.Restore(context.Background())
				if err != nil {
					return err
				}
				if !out.Restored {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no purchases to restore")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored: %s\n", out.Status.Tier)
				return nil
			})
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	reset := &cobra.Command{
		Use:   "reset --yes",
		Short: "Erase streak, stamps and journey progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset erases all progress; pass --yes to confirm")
			}
			return withApp(opts, func(app *bootstrap.App) error {
				if _, err := app.ProgressCLI.Reset(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
				return nil
			})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return reset
}
