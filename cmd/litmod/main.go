// Command litmod works with Literate Model documents from the terminal.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/DiscordGophers/dr-literate/literate"
	"github.com/DiscordGophers/dr-literate/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Every flag is bound to viper, so
// LITMOD_FORMAT=json works like --format json.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LITMOD")
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "litmod",
		Short:        "Inspect Literate Model documents",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), v.GetBool("verbose"))
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "timeout for fetching URLs")
	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	v.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(
		newMarkupCmd(v),
		newParseCmd(v),
		newSearchCmd(v),
		newShowCmd(v),
		newReplCmd(v),
	)
	return rootCmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}

// openDocument loads a document from a path, a URL or "-" for stdin.
func openDocument(cmd *cobra.Command, v *viper.Viper, location string) (*source.Document, error) {
	if location == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return source.FromText("stdin", string(data))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration("timeout"))
	defer cancel()

	d, err := source.Open(ctx, nil, location)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("model", d.Name).Str("location", d.Location).Msg("loaded document")
	return d, nil
}

// readLines reads the raw lines of a notation file or of stdin.
func readLines(cmd *cobra.Command, location string) ([]string, error) {
	var data []byte
	var err error
	if location == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, err
	}
	return literate.SplitLines(string(data)), nil
}
