package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const replHelp = `Enter a query to search, or one of:
  :show doc/Path   render a component
  :models          list loaded models
  :help            print this help
Ctrl-D exits.`

func newReplCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "repl FILE...",
		Short: "Search loaded documents interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := source.NewLibrary()
			for _, loc := range args {
				d, err := openDocument(cmd, v, loc)
				if err != nil {
					return fmt.Errorf("load %s: %w", loc, err)
				}
				lib.Add(d)
			}
			return repl(cmd.OutOrStdout(), lib, v)
		},
	}
}

func repl(w io.Writer, lib *source.Library, v *viper.Viper) error {
	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetMultiLineMode(true)
	lin.SetCompleter(completer(lib))

	fmt.Fprintln(w, replHelp)
	for {
		got, err := lin.Prompt("> ")
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(w)
				return nil
			}
			log.Error().Err(err).Msg("unexpected error reading prompt")
			continue
		}
		got = strings.TrimSpace(got)
		if got == "" {
			continue
		}
		lin.AppendHistory(got)

		if err := evalLine(w, lib, v, got); err != nil {
			log.Error().Err(err).Str("input", got).Msg("could not evaluate")
		}
	}
}

// evalLine runs one line of repl input.
func evalLine(w io.Writer, lib *source.Library, v *viper.Viper, line string) error {
	switch {
	case line == ":help":
		_, err := fmt.Fprintln(w, replHelp)
		return err
	case line == ":models":
		for _, d := range lib.Documents() {
			fmt.Fprintf(w, "%s\t%s\n", d.Name, d.Location)
		}
		return nil
	case strings.HasPrefix(line, ":show "):
		return showQuery(w, lib, v, strings.TrimPrefix(line, ":show "))
	case strings.HasPrefix(line, ":"):
		return fmt.Errorf("unknown command %q", line)
	}

	results := lib.Search(line)
	if len(results) == 0 {
		_, err := fmt.Fprintf(w, "no matches for %q\n", line)
		return err
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s/%s (%s)\n", strings.ToLower(r.Document.Name), r.Node.Title(), r.Node.Kind)
	}
	return nil
}

func showQuery(w io.Writer, lib *source.Library, v *viper.Viper, query string) error {
	name, path := "", strings.TrimSpace(query)
	if i := strings.IndexByte(path, '/'); i >= 0 {
		name, path = path[:i], path[i+1:]
	}

	var md string
	if parts := splitPath(path); len(parts) > 0 {
		_, n := lib.Lookup(name, parts...)
		if n == nil {
			return fmt.Errorf("no component %q", query)
		}
		md, _ = n.Markdown(noLimit)
	} else {
		d := lib.Find(name)
		if d == nil {
			return fmt.Errorf("no model %q", name)
		}
		md, _ = d.Model.Markdown(noLimit)
	}

	r, err := newRenderer(v.GetString("style"), v.GetInt("width"))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// completer completes ":show" arguments with component titles.
func completer(lib *source.Library) liner.Completer {
	return func(line string) []string {
		prefix, ok := strings.CutPrefix(line, ":show ")
		if !ok {
			return nil
		}
		var c []string
		for _, d := range lib.Documents() {
			for _, n := range d.Index.Nodes {
				full := strings.ToLower(d.Name) + "/" + n.Title()
				if strings.HasPrefix(strings.ToLower(full), strings.ToLower(prefix)) {
					c = append(c, ":show "+full)
				}
			}
		}
		return c
	}
}
