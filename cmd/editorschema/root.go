package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyz/editorschema/internal/config"
	"github.com/toyz/editorschema/internal/utils"
	"github.com/toyz/editorschema/pkg/editor"
)

// globalOptions are shared by every subcommand
type globalOptions struct {
	verbose bool
	quiet   bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "editorschema",
		Short: "Generate JSON editor schemas for controller actions",
		Long: `editorschema builds JSON Schema documents describing the parameters of
controller actions, for use by a JSON editor form.

Actions are declared in a YAML controller definition. The schema for a route
can be printed, served over HTTP, or migrated from @editor doc comments.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("editorschema v%s\n", version))

	f := root.PersistentFlags()
	f.BoolVar(&opts.verbose, "verbose", false, "show detailed diagnostics")
	f.BoolVar(&opts.quiet, "quiet", false, "suppress all output except errors")

	root.AddCommand(
		newRenderCmd(opts),
		newServeCmd(opts),
		newScanCmd(opts),
	)

	return root
}

// diagnostics returns the diagnostic system selected by the global flags
func (o *globalOptions) diagnostics(cmd *cobra.Command) (*utils.DiagnosticSystem, error) {
	if o.verbose && o.quiet {
		return nil, errors.New("--verbose and --quiet cannot be used together")
	}

	level := utils.DiagnosticWarn
	switch {
	case o.quiet:
		level = utils.DiagnosticError
	case o.verbose:
		level = utils.DiagnosticDebug
	}

	return utils.NewWriterDiagnostics(level, cmd.ErrOrStderr()), nil
}

// loadGenerator reads the controller definition at path and builds a generator for it
func loadGenerator(path string, logger editor.Logger) (*editor.Generator, *config.Definition, error) {
	def, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	registry := editor.NewInMemoryActionRegistry()
	registry.SetLogger(logger)

	g, err := def.NewGenerator(registry, logger)
	if err != nil {
		return nil, nil, err
	}

	return g, def, nil
}
