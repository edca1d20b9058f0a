package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-rulegen/pkg/conformance"
	"github.com/goliatone/go-rulegen/pkg/orchestrator"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(logger, os.Args[2:])
	case "check":
		err = runCheck(logger, os.Args[2:])
	case "new":
		err = runNew(logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: rulegen-cli <command> [flags]

commands:
  generate   render every rule document matching a glob
  check      run the structural conformance checker over generated files
  new        scaffold a starter rule document interactively`)
}

func runGenerate(logger zerolog.Logger, args []string) error {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	docs := flags.String("docs", "rules/**/*.yaml", "glob matching rule documents")
	template := flags.String("template", "", "template program path (embedded default if empty)")
	schemaPath := flags.String("schema", "", "schema path (validation skipped if empty)")
	outDir := flags.String("out", ".", "output directory")
	ext := flags.String("ext", ".md", "output extension (.md or .mdc)")
	verify := flags.Bool("check", false, "run the conformance checker on each artifact")
	if err := flags.Parse(args); err != nil {
		return err
	}

	matches, err := doublestar.FilepathGlob(*docs)
	if err != nil {
		return fmt.Errorf("resolve glob %q: %w", *docs, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no rule documents match %q", *docs)
	}

	templatePath := *template
	if templatePath == "" {
		path, cleanup, err := materializeEmbeddedProgram()
		if err != nil {
			return err
		}
		defer cleanup()
		templatePath = path
	}

	gen := orchestrator.New(orchestrator.WithLogger(logger))
	ctx := context.Background()

	// Per-file failures are reported and skipped; the batch keeps going.
	failed := 0
	for _, docPath := range matches {
		output, err := gen.Generate(ctx, orchestrator.Request{
			DocumentPath: docPath,
			TemplatePath: templatePath,
			SchemaPath:   *schemaPath,
		})
		if err != nil {
			failed++
			logger.Error().Err(err).Str("document", docPath).Msg("generation failed")
			continue
		}

		if *verify {
			if violations := conformance.Check(output); len(violations) > 0 {
				failed++
				for _, violation := range violations {
					logger.Error().Str("document", docPath).Str("rule", violation.Rule).Msg(violation.Message)
				}
				continue
			}
		}

		target := filepath.Join(*outDir, ruleID(docPath)+*ext)
		if err := os.WriteFile(target, []byte(output), 0o644); err != nil {
			failed++
			logger.Error().Err(err).Str("document", docPath).Msg("write artifact")
			continue
		}
		logger.Info().Str("document", docPath).Str("artifact", target).Msg("rule generated")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d rules failed", failed, len(matches))
	}
	return nil
}

func runCheck(logger zerolog.Logger, args []string) error {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	glob := flags.String("glob", "**/*.md", "glob matching generated artifacts")
	if err := flags.Parse(args); err != nil {
		return err
	}

	matches, err := doublestar.FilepathGlob(*glob)
	if err != nil {
		return fmt.Errorf("resolve glob %q: %w", *glob, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no artifacts match %q", *glob)
	}

	failed := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			failed++
			logger.Error().Err(err).Str("artifact", path).Msg("read artifact")
			continue
		}

		violations := conformance.Check(string(data))
		if len(violations) == 0 {
			logger.Info().Str("artifact", path).Msg("conforms")
			continue
		}

		failed++
		for _, violation := range violations {
			event := logger.Error().Str("artifact", path).Str("rule", violation.Rule)
			if violation.Line > 0 {
				event = event.Int("line", violation.Line)
			}
			event.Msg(violation.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d artifacts failed conformance", failed, len(matches))
	}
	return nil
}

// ruleID derives the artifact base name from the document path by
// convention: the file name without its extension.
func ruleID(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
