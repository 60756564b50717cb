package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dna-group/puzzled/pkg/config"
	"github.com/dna-group/puzzled/pkg/export"
	"github.com/dna-group/puzzled/pkg/state"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only view of the current session",
		Long: `Serve exposes the current session over HTTP: the state as JSON, the raw
token, an SVG rendering, and a redirect to the shareable URL. Nothing is
persisted server-side; the state always travels inside the URL fragment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}

			r := chi.NewRouter()
			r.Get("/", redirectHandler(cfg))
			r.Get("/state", stateHandler(cfg))
			r.Get("/token", tokenHandler(cfg))
			r.Get("/view.svg", svgHandler(cfg))

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving session view", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8642", "listen address")
	return cmd
}

// redirectHandler sends the browser to the shareable URL form, fragment and
// all, so the receiving page restores the state client-side.
func redirectHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())
		_, st, err := loadStoredState(req.Context(), cfg, logger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		base, err := url.Parse(cfg.Share.BaseURL)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		u, err := state.BuildShareURL(base, *st)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, req, u, http.StatusTemporaryRedirect)
	}
}

func stateHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())
		_, st, err := loadStoredState(req.Context(), cfg, logger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(st)
	}
}

func tokenHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())
		_, st, err := loadStoredState(req.Context(), cfg, logger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tok, err := state.Encode(*st)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(tok))
	}
}

func svgHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())
		graph, _, err := loadStoredState(req.Context(), cfg, logger)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(export.RenderSVG(graph))
	}
}
