package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/javadoc2html/internal/config"
)

const (
	sentinelStart = "# javadoc2html:start"
	sentinelEnd   = "# javadoc2html:end"
)

// newInitCmd implements `javadoc2html init`, which writes a default config
// file and keeps the output directory out of git.
func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName + " and ignore the output directory",
		Long: `Write a default ` + config.FileName + ` to dir (default: the current directory)
unless one exists, and add the generated documentation directory to
dir/.gitignore. The .gitignore entry is wrapped in sentinel comments so it can
be updated in place on subsequent runs without touching surrounding content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir, dryRun, stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying any file")
	return cmd
}

func runInit(dir string, dryRun bool, stdout, stderr io.Writer) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}

	cfgData, err := config.Default().YAML()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	cfgPath := filepath.Join(abs, config.FileName)
	_, err = os.Stat(cfgPath)
	writeConfig := errors.Is(err, fs.ErrNotExist)

	ignorePath := filepath.Join(abs, ".gitignore")
	existing, err := os.ReadFile(ignorePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", ignorePath, err)
	}
	updated := applySection(string(existing), generateSection(filepath.Base(abs)))

	if dryRun {
		if writeConfig {
			_, _ = fmt.Fprintf(stdout, "%s:\n%s\n", config.FileName, cfgData)
		}
		_, _ = fmt.Fprintf(stdout, ".gitignore:\n%s", updated)
		return nil
	}

	if writeConfig {
		if err := os.WriteFile(cfgPath, cfgData, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfgPath, err)
		}
		_, _ = fmt.Fprintf(stderr, "wrote %s\n", cfgPath)
	} else {
		_, _ = fmt.Fprintf(stderr, "kept existing %s\n", cfgPath)
	}

	if err := os.WriteFile(ignorePath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ignorePath, err)
	}
	_, _ = fmt.Fprintf(stderr, "updated %s\n", ignorePath)
	return nil
}

// generateSection returns the sentinel-wrapped .gitignore block for the
// default output directory of project.
func generateSection(project string) string {
	out := filepath.Base(config.DefaultOutput("", project))
	return sentinelStart + "\n/" + out + "/\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if len(content) > 0 {
		content += "\n"
	}
	return content + section + "\n"
}
