package main

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/toyz/editorschema/internal/utils"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath string
		pretty     bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "render <route>",
		Short: "Print the schema for a route",
		Long: `Print the editor schema generated for a route.

Examples:
  # Schema of the default action
  editorschema render --config product.yaml product

  # Indented output
  editorschema render --config product.yaml product/detail --pretty

  # Fail instead of printing the fallback schema
  editorschema render --config product.yaml product/missing --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			diag, err := opts.diagnostics(cmd)
			if err != nil {
				return err
			}

			g, _, err := loadGenerator(configPath, diag)
			if err != nil {
				return err
			}

			route := args[0]
			diag.Verbose("resolving %q to action %q", route, g.ResolveActionID(route))

			var schema string
			if strict {
				if schema, err = g.Generate(route); err != nil {
					return err
				}
			} else {
				schema = g.JSONFromAction(route)
			}

			if pretty {
				var out bytes.Buffer
				if err := jsonIndent(&out, schema); err != nil {
					return utils.WrapEncodeError("schema", err)
				}
				schema = out.String()
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), schema)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "editorschema.yaml", "controller definition file")
	f.BoolVar(&pretty, "pretty", false, "indent the JSON output")
	f.BoolVar(&strict, "strict", false, "return an error instead of the fallback schema")

	return cmd
}

// jsonIndent re-encodes schema with two-space indentation, keeping key order
func jsonIndent(out *bytes.Buffer, schema string) error {
	iter := jsoniter.ParseString(jsoniter.ConfigCompatibleWithStandardLibrary, schema)
	stream := jsoniter.NewStream(jsoniter.Config{IndentionStep: 2}.Froze(), out, 512)

	copyValue(iter, stream)
	if iter.Error != nil {
		return iter.Error
	}
	return stream.Flush()
}

func copyValue(iter *jsoniter.Iterator, stream *jsoniter.Stream) {
	empty := true

	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
			if empty {
				stream.WriteObjectStart()
			} else {
				stream.WriteMore()
			}
			empty = false
			stream.WriteObjectField(key)
			copyValue(iter, stream)
			return true
		})
		if empty {
			stream.WriteEmptyObject()
		} else {
			stream.WriteObjectEnd()
		}
	case jsoniter.ArrayValue:
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			if empty {
				stream.WriteArrayStart()
			} else {
				stream.WriteMore()
			}
			empty = false
			copyValue(iter, stream)
			return true
		})
		if empty {
			stream.WriteEmptyArray()
		} else {
			stream.WriteArrayEnd()
		}
	default:
		stream.WriteRaw(string(iter.SkipAndReturnBytes()))
	}
}
