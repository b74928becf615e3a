package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/toyz/editorschema/pkg/editor/adapters"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath string
		addr       string
		engine     string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schemas over HTTP",
		Long: `Serve editor schemas at GET <prefix>/<route>.

Examples:
  editorschema serve --config product.yaml --addr :8080
  editorschema serve --config product.yaml --engine fiber --prefix /api/schema`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diag, err := opts.diagnostics(cmd)
			if err != nil {
				return err
			}

			g, def, err := loadGenerator(configPath, diag)
			if err != nil {
				return err
			}

			server, err := newServer(engine, g)
			if err != nil {
				return err
			}
			server.Mount(prefix)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			diag.Section("editorschema")
			diag.Info("serving controller %q with %s on %s%s", def.Controller.ID, server.Name(), addr, prefix)
			for _, action := range def.Actions {
				diag.List("%s (%d params)", action.ID, len(action.Params))
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(addr)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			diag.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				return err
			}

			diag.Success("server stopped")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "editorschema.yaml", "controller definition file")
	f.StringVar(&addr, "addr", ":8080", "listen address")
	f.StringVar(&engine, "engine", "echo", "web framework: echo, gin or fiber")
	f.StringVar(&prefix, "prefix", "/schema", "route prefix")

	return cmd
}

// newServer builds the adapter for engine
func newServer(engine string, source adapters.SchemaSource) (adapters.Server, error) {
	switch engine {
	case "echo":
		return adapters.NewDefaultEchoAdapter(source), nil
	case "gin":
		gin.SetMode(gin.ReleaseMode)
		return adapters.NewDefaultGinAdapter(source), nil
	case "fiber":
		return adapters.NewDefaultFiberAdapter(source), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want echo, gin or fiber)", engine)
	}
}
