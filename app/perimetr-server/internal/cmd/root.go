package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/hashworks/perimetr/app/perimetr-server/internal/route"
	"github.com/hashworks/perimetr/internal/config"
	"github.com/hashworks/perimetr/internal/log"
	"github.com/hashworks/perimetr/internal/orchestrator"
	"github.com/hashworks/perimetr/internal/shares"
)

var rootCmd = &cobra.Command{
	Use:   "perimetr-server",
	Short: "Webservice that accepts VSSS shares for perimetr layers and decrypts them when enough shares are received.",
	RunE:  run,
}

var (
	layerPath   string
	layerSuffix string
	databaseURL string
	bindHost    string
)

func init() {
	rootCmd.Flags().StringVarP(&layerPath, "layer-path", "p", config.DefaultLayerPath, "Path to layer files")
	rootCmd.Flags().StringVarP(&layerSuffix, "layer-suffix", "s", config.DefaultLayerSuffix, "Suffix of layer files")
	rootCmd.Flags().StringVarP(&databaseURL, "database-url", "d", config.DefaultDatabaseURL, "PostgreSQL database URL")
	rootCmd.Flags().StringVarP(&bindHost, "bind-host", "b", config.DefaultBindHost, "Host to bind to")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database, please provide a proper --database-url: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database, please provide a proper --database-url: %w", err)
	}

	if err := shares.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	store := shares.NewPostgresStore(db)
	o := &orchestrator.Orchestrator{
		LayerPath:   layerPath,
		LayerSuffix: layerSuffix,
		Store:       store,
	}

	mux := route.NewMux(route.Config{Orchestrator: o, LayerPath: layerPath})

	log.Log().Info("perimetr-server", "msg", "starting server", "bind_host", bindHost)
	fmt.Printf("Starting server on %s …\n", bindHost)

	return http.ListenAndServe(bindHost, mux)
}
