package main

import (
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/toyz/editorschema/internal/config"
	"github.com/toyz/editorschema/internal/scanner"
	"github.com/toyz/editorschema/internal/utils"
)

func newScanCmd(opts *globalOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scan [packages...]",
		Short: "Extract @editor annotations from Go source",
		Long: `Scan Go packages for <action>ActionParam<Param> functions and print their
@editor doc comment annotations as a YAML actions fragment that can be merged
into a controller definition.

Examples:
  editorschema scan ./controllers/...
  editorschema scan --dir ../shop ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			diag, err := opts.diagnostics(cmd)
			if err != nil {
				return err
			}

			patterns := args
			if len(patterns) == 0 {
				patterns = []string{"./..."}
			}

			result, err := scanner.New(dir, diag).Scan(patterns...)
			if err != nil {
				return err
			}

			diag.Summary("Scan complete", map[string]any{
				"module":    result.Module,
				"functions": len(result.Findings),
			})

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(fragment(result)); err != nil {
				return utils.WrapEncodeError("actions fragment", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory the package patterns are resolved from")

	return cmd
}

type actionsFragment struct {
	Actions []config.ActionDef `yaml:"actions"`
}

// fragment converts scan findings into config actions, sorted by id
func fragment(result *scanner.Result) actionsFragment {
	overrides := result.Overrides()

	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := actionsFragment{Actions: make([]config.ActionDef, 0, len(ids))}
	for _, id := range ids {
		action := config.ActionDef{ID: id, Overrides: make(map[string]config.OverrideDef)}
		for param, fields := range overrides[id] {
			action.Overrides[param] = config.OverrideDef{Fields: config.FieldList(fields)}
		}
		out.Actions = append(out.Actions, action)
	}

	return out
}
