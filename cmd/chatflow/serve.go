package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	chatflow "github.com/markdavemanansala/Chat-To-Flow-sub001"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/internal/logging"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/file"
	httpAdapter "github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/http"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/memory"
	redisStore "github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/redis"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/observability"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/planner"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editing server",
	Long:  `Starts the graph engine behind a JSON API for the canvas, forms and chat surfaces.`,
	Run: func(cmd *cobra.Command, args []string) {
		docPath, _ := cmd.Flags().GetString("file")
		port, _ := cmd.Flags().GetString("port")
		name, _ := cmd.Flags().GetString("name")
		storeKind, _ := cmd.Flags().GetString("store")
		storePath, _ := cmd.Flags().GetString("store-path")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")

		store := chatflow.New(name,
			chatflow.WithLogger(logging.New(slog.LevelInfo)),
			chatflow.WithPlanner(planner.NewRuleBased()),
			chatflow.WithMetrics(observability.New(prometheus.DefaultRegisterer)),
		)
		defer store.Close()

		if docPath != "" {
			g, err := loadDocument(docPath)
			if err != nil {
				fmt.Printf("Error loading graph: %v\n", err)
				os.Exit(1)
			}
			store.Load(g)
		}

		var graphs ports.GraphStore
		switch storeKind {
		case "memory":
			graphs = memory.NewStore()
		case "file":
			graphs = file.New(storePath)
		case "redis":
			graphs = redisStore.New(redisAddr, "", 0)
		default:
			fmt.Printf("Unknown store backend %q (want memory, file or redis)\n", storeKind)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpAdapter.NewHandler(store, httpAdapter.WithStore(graphs)),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting chatflow server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("name", "untitled", "Name for a fresh workflow when no file is given")
	serveCmd.Flags().String("store", "file", "Document library backend: memory, file or redis")
	serveCmd.Flags().String("store-path", "", "Base directory for the file store (default .chatflow/graphs)")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	rootCmd.AddCommand(serveCmd)
}
