package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/aitrainer/pkg/client"
)

type app struct {
	apiURL    string
	tokenFile string
	timeout   time.Duration
	api       *client.Client
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			color.Red("session expired or invalid, run: coachctl login")
		} else {
			color.Red("error: %s", err)
		}
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	defaultAPI := os.Getenv("AITRAINER_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8000"
	}

	root := &cobra.Command{
		Use:           "coachctl",
		Short:         "AI Trainer command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.api = client.New(a.apiURL, nil, client.NewFileTokenStore(a.tokenFile))
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", defaultAPI, "AI Trainer API base url (or AITRAINER_API)")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", client.DefaultTokenPath(), "where the session token is kept")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 90*time.Second, "request timeout")

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.meCmd(),
		a.passwordCmd(),
		a.avatarCmd(),
		a.workoutCmd(),
		a.dietCmd(),
		a.tipsCmd(),
		a.contactCmd(),
		bmiCmd(),
		bmrCmd(),
	)
	return root
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func printOK(format string, args ...any) {
	color.Green(format, args...)
}

func printHeader(format string, args ...any) {
	color.New(color.FgCyan, color.Bold).Printf(format+"\n", args...)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			return fmt.Errorf("--%s is required", name)
		}
	}
	return nil
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
