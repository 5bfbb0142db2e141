package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/nameparser/pkg/nameparser"
	"github.com/cognicore/nameparser/pkg/nameparser/record"
)

type parseOptions struct {
	format         string
	prefixInFamily bool
	dbPath         string
}

func newParseCmd(g *globalOptions) *cobra.Command {
	o := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [NAME...]",
		Short: "Parse names given as arguments, or one per line on stdin",
		Example: `  nameparser parse "Herr Dr. Otto von Bismarck"
  nameparser parse --format vcard "Bismarck, Otto von"
  cat names.txt | nameparser parse --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWriter(o.format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			logger, err := newLogger(g.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			components, st, cleanup, err := buildParser(cmd.Context(), g, o.dbPath, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			prefixInFamily := components.Config.PrefixInFamily
			if cmd.Flags().Changed("prefix-in-family") {
				prefixInFamily = o.prefixInFamily
			}

			records := record.New()
			handle := func(input string) error {
				n := components.Parser.Parse(input)
				if st != nil {
					rec := records.Build(input, components.Config.Languages, n)
					if err := st.UpsertRecord(cmd.Context(), rec); err != nil {
						return fmt.Errorf("store %q: %w", input, err)
					}
					logger.Debug("stored parse result", zap.String("input", input))
				}
				return w.write(input, n, prefixInFamily)
			}

			if len(args) > 0 {
				for _, input := range args {
					if err := handle(input); err != nil {
						return err
					}
				}
				return w.flush()
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if err := handle(input); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			return w.flush()
		},
	}

	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text, json, yaml or vcard")
	cmd.Flags().BoolVar(&o.prefixInFamily, "prefix-in-family", false, "Keep the lastname prefix in the vCard family name")
	cmd.Flags().StringVar(&o.dbPath, "db", os.Getenv("NAMEPARSER_DB"), "SQLite database to store parse results in")
	return cmd
}

// parseOutput is one result in the json and yaml formats
type parseOutput struct {
	Input   string                   `json:"input" yaml:"input"`
	Name    *nameparser.Name         `json:"name" yaml:"name"`
	Contact nameparser.ContactRecord `json:"contact" yaml:"contact"`
}

type resultWriter interface {
	write(input string, n *nameparser.Name, prefixInFamily bool) error
	flush() error
}

func newWriter(format string, out io.Writer) (resultWriter, error) {
	switch format {
	case "text":
		return &textWriter{
			out:   out,
			title: color.New(color.FgWhite, color.Bold),
			key:   color.New(color.FgCyan),
			warn:  color.New(color.FgYellow),
		}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(out)}, nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	case "vcard":
		return &vcardWriter{out: out}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json, yaml or vcard)", format)
	}
}

type textWriter struct {
	out   io.Writer
	title *color.Color
	key   *color.Color
	warn  *color.Color
	count int
}

func (w *textWriter) write(input string, n *nameparser.Name, prefixInFamily bool) error {
	if w.count > 0 {
		fmt.Fprintln(w.out)
	}
	w.count++

	w.title.Fprintln(w.out, input)
	for _, f := range n.Fields() {
		w.key.Fprintf(w.out, "  %-12s", f.Key)
		fmt.Fprintln(w.out, f.Value)
	}
	if rest := n.Unclassified(); len(rest) > 0 {
		w.warn.Fprintf(w.out, "  %-12s", "unclassified")
		fmt.Fprintln(w.out, strings.Join(rest, " "))
	}
	if vn := n.ContactRecord(prefixInFamily).N(); vn != "" {
		w.key.Fprintf(w.out, "  %-12s", "n")
		fmt.Fprintln(w.out, vn)
	}
	return nil
}

func (w *textWriter) flush() error { return nil }

type jsonWriter struct {
	enc *json.Encoder
}

func (w *jsonWriter) write(input string, n *nameparser.Name, prefixInFamily bool) error {
	return w.enc.Encode(parseOutput{Input: input, Name: n, Contact: n.ContactRecord(prefixInFamily)})
}

func (w *jsonWriter) flush() error { return nil }

type yamlWriter struct {
	enc *yaml.Encoder
}

func (w *yamlWriter) write(input string, n *nameparser.Name, prefixInFamily bool) error {
	return w.enc.Encode(parseOutput{Input: input, Name: n, Contact: n.ContactRecord(prefixInFamily)})
}

func (w *yamlWriter) flush() error { return w.enc.Close() }

type vcardWriter struct {
	out io.Writer
}

func (w *vcardWriter) write(input string, n *nameparser.Name, prefixInFamily bool) error {
	_, err := io.WriteString(w.out, n.ContactRecord(prefixInFamily).VCard())
	return err
}

func (w *vcardWriter) flush() error { return nil }
