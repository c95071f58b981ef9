package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenaterhood/dnschat/app"
	"github.com/thenaterhood/dnschat/chat"
	"github.com/thenaterhood/dnschat/transport"
)

func buildClient(conffile string) (*chat.Client, *app.AppConfig, error) {
	config, err := app.GetConfig(conffile)
	if err != nil && conffile != "" {
		fmt.Fprintf(os.Stderr, "config %s not loaded - starting with defaults: %v\n", conffile, err)
	}

	stdoutLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(config.LogLevel),
	}))

	state, err := app.NewAppState(config, stdoutLogger)
	if err != nil {
		return nil, nil, err
	}

	if err := state.Metrics.Start(); err != nil {
		stdoutLogger.Warn("metrics failed to start", "err", err)
	}

	return chat.NewClient(config, state), config, nil
}

func main() {
	var conffile string

	rootCmd := &cobra.Command{
		Use:   "dnschat",
		Short: "Chat with a language model over DNS TXT queries",
		Long: "dnschat sends a message as a DNS TXT query and prints the answer, " +
			"falling back across the platform resolver, raw UDP and TCP so it " +
			"works on networks where plain HTTPS APIs do not.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&conffile, "config", "c", "./dnschat.json", "path to a JSON or YAML config file")

	askCmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(conffile)
			if err != nil {
				return err
			}

			answer, err := client.Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(answer)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Probe each transport in the configured order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, config, err := buildClient(conffile)
			if err != nil {
				return err
			}

			opts := transport.DefaultOrderOptions()
			opts.Preference = config.Preference()
			opts.PreferHTTPS = config.PreferHttps
			opts.MockEnabled = config.EnableMockDns
			opts.ExperimentalAllowed = config.AllowExperimentalTransports

			failures := 0
			for _, kind := range transport.Order(opts) {
				outcome, err := client.TestTransport(cmd.Context(), kind)
				if err != nil {
					failures++
					fmt.Printf("%-8s failed: %s\n", kind, err)
					continue
				}
				fmt.Printf("%-8s ok (%s)\n", kind, outcome.Duration.Round(time.Millisecond))
			}

			if failures > 0 {
				return fmt.Errorf("%d transport(s) failed", failures)
			}
			return nil
		},
	}

	rootCmd.AddCommand(askCmd, statusCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
