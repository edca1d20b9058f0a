package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rulegen/pkg/model"
)

// runNew interactively collects the required rule fields and writes a
// starter document the generate command can consume immediately.
func runNew(logger zerolog.Logger, args []string) error {
	flags := flag.NewFlagSet("new", flag.ExitOnError)
	out := flags.String("out", "", "output file (stdout if empty)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	doc, err := promptRule()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode rule document: %w", err)
	}

	if *out == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write rule document: %w", err)
	}
	logger.Info().Str("document", *out).Msg("rule scaffolded")
	return nil
}

func promptRule() (model.RuleDocument, error) {
	var doc model.RuleDocument

	prompts := []struct {
		prompt survey.Prompt
		target any
		opts   []survey.AskOpt
	}{
		{&survey.Input{Message: "Rule name:"}, &doc.Metadata.Name, []survey.AskOpt{survey.WithValidator(survey.Required)}},
		{&survey.Input{Message: "Description:"}, &doc.Metadata.Description, []survey.AskOpt{survey.WithValidator(survey.Required)}},
		{&survey.Multiline{Message: "Role:"}, &doc.Role, []survey.AskOpt{survey.WithValidator(survey.Required)}},
		{&survey.Multiline{Message: "Goal:"}, &doc.Goal, []survey.AskOpt{survey.WithValidator(survey.Required)}},
	}
	for _, p := range prompts {
		if err := survey.AskOne(p.prompt, p.target, p.opts...); err != nil {
			return model.RuleDocument{}, err
		}
	}

	var globs string
	if err := survey.AskOne(&survey.Input{Message: "Globs (comma separated):"}, &globs); err != nil {
		return model.RuleDocument{}, err
	}
	for _, glob := range strings.Split(globs, ",") {
		if trimmed := strings.TrimSpace(glob); trimmed != "" {
			doc.Metadata.Globs = append(doc.Metadata.Globs, trimmed)
		}
	}

	if err := survey.AskOne(&survey.Confirm{Message: "Always apply?"}, &doc.Metadata.AlwaysApply); err != nil {
		return model.RuleDocument{}, err
	}

	return doc, nil
}
