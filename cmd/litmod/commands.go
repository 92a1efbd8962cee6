package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/DiscordGophers/dr-literate/literate"
	"github.com/DiscordGophers/dr-literate/source"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// noLimit renders whole components; the terminal has no size cap.
const noLimit = math.MaxInt32

func newMarkupCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "markup FILE",
		Short: "Print notation with free text markers inserted",
		Long: "Runs the preprocessor over FILE (or stdin for -) and prints the result.\n" +
			"Each input line produces exactly one output line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			p := literate.NewPreprocessor()
			for _, l := range lines {
				p.Feed(l)
			}
			out := p.Close()
			log.Debug().Strs("headers", p.Headers()).Strs("annotations", p.Annotations()).Msg("markup done")

			w := cmd.OutOrStdout()
			for _, l := range out {
				fmt.Fprintln(w, l)
			}
			return nil
		},
	}
}

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a document and print its model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd, v, args[0])
			if err != nil {
				return err
			}
			return printModel(cmd.OutOrStdout(), d, v.GetString("format"))
		},
	}
	cmd.Flags().StringP("format", "f", "summary", "output format: summary, json, yaml or pp")
	v.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func printModel(w io.Writer, d *source.Document, format string) error {
	switch format {
	case "summary":
		return printSummary(w, d)
	case "json":
		data, err := json.MarshalIndent(d.Model, "", "  ")
		if err != nil {
			return errors.Wrap(err, "could not encode model")
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.Model); err != nil {
			return errors.Wrap(err, "could not encode model")
		}
		return enc.Close()
	case "pp":
		_, err := pp.Fprintln(w, d.Model)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func printSummary(w io.Writer, d *source.Document) error {
	var subjects, classes, attributes int
	d.Model.Walk(func(s *literate.Subject) {
		subjects++
		classes += len(s.Classes)
		for _, c := range s.Classes {
			attributes += len(c.AllAttributes())
		}
	})

	fmt.Fprintf(w, "Model %s\n", d.Name)
	if d.Model.OneLiner != "" {
		fmt.Fprintf(w, "  %s\n", d.Model.OneLiner)
	}
	fmt.Fprintf(w, "  %s, %s, %s\n",
		plural(subjects, "subject"), plural(classes, "class"), plural(attributes, "attribute"))
	_, err := fmt.Fprintf(w, "  loaded from %s\n", d.Location)
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "s") {
		return humanize.Comma(int64(n)) + " " + word + "es"
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func newSearchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "search FILE QUERY...",
		Short: "Search a document for components",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd, v, args[0])
			if err != nil {
				return err
			}
			return printSearch(cmd.OutOrStdout(), d, strings.Join(args[1:], " "))
		},
	}
}

func printSearch(w io.Writer, d *source.Document, query string) error {
	nodes := d.Index.Search(query)
	if len(nodes) == 0 {
		_, err := fmt.Fprintf(w, "no matches for %q\n", query)
		return err
	}
	for _, n := range nodes {
		line := fmt.Sprintf("%-10s %s", n.Kind, n.Title())
		if one := n.OneLiner(); one != "" {
			line += ": " + string(one)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func newShowCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE [PATH]",
		Short: "Render a component as Markdown in the terminal",
		Long: "Renders the model, or the component PATH names, such as Employee.name.\n" +
			"The style is a glamour style name; \"auto\" picks one for the terminal.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd, v, args[0])
			if err != nil {
				return err
			}

			md, _ := d.Model.Markdown(noLimit)
			if len(args) == 2 {
				n := d.Index.Lookup(splitPath(args[1])...)
				if n == nil {
					return fmt.Errorf("%s has no component %q", d.Name, args[1])
				}
				md, _ = n.Markdown(noLimit)
			}

			r, err := newRenderer(v.GetString("style"), v.GetInt("width"))
			if err != nil {
				return err
			}
			out, err := r.Render(md)
			if err != nil {
				return errors.Wrap(err, "could not render markdown")
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("style", "auto", "glamour style")
	cmd.Flags().Int("width", 80, "word wrap width")
	v.BindPFlag("style", cmd.Flags().Lookup("style"))
	v.BindPFlag("width", cmd.Flags().Lookup("width"))
	return cmd
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opt := glamour.WithAutoStyle()
	if style != "auto" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, errors.Wrap(err, "could not create renderer")
	}
	return r, nil
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == ' ' || r == '\t'
	})
}
