package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/javadoc2html/internal/config"
	"github.com/phobologic/javadoc2html/internal/discover"
	"github.com/phobologic/javadoc2html/internal/outline"
	"github.com/phobologic/javadoc2html/internal/parse"
)

// newParseCmd implements `javadoc2html parse`, which prints the
// documentation model of one source file as YAML.
func newParseCmd(o *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.java>",
		Short: "Print the parsed documentation model of a Java file as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if filepath.Ext(path) != ".java" {
				return fmt.Errorf("%s: not a Java source file", path)
			}
			root, err := discover.Root(path)
			if err != nil {
				return err
			}
			cfg, err := config.NewLoader(root, o.configFile).Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cfg, o, cmd.Flags(), root); err != nil {
				return err
			}
			logger := newLogger(stderr, cfg.Log, o.verbose)

			sf, err := parse.File(path, cfg.ParseOptions())
			if err != nil {
				return err
			}
			for _, d := range sf.Diagnostics {
				logger.Warn().Str("file", path).Int("line", d.Line).Str("reason", d.Reason).
					Msg("skipped malformed declaration")
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			ol, err := outline.NewParser().Parse(cmd.Context(), src)
			if err != nil {
				logger.Debug().Err(err).Str("file", path).Msg("outline unavailable")
			} else {
				sf.Package, sf.Imports = ol.Package, ol.Imports
				if ol.Partial {
					logger.Warn().Str("file", path).Msg("outline recovered from syntax errors and may be incomplete")
				}
				for _, t := range ol.Folded() {
					logger.Warn().Str("file", path).Str("type", t.Kind).Str("name", t.Name).Int("line", t.Line).
						Msg("top-level type folded into the first declaration")
				}
			}

			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(sf); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		},
	}
}
