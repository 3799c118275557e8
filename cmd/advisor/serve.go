package main

import (
	"fmt"

	"github.com/danielpatrickdp/storage-advisor/internal/httpapi"
	"github.com/danielpatrickdp/storage-advisor/internal/session"
	"github.com/danielpatrickdp/storage-advisor/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the advisor API over HTTP",
	Long: `Start the HTTP API exposing process, feedback, stats, and decay.

Example:
  advisor serve --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(dbPath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eng, err := session.NewEngine(st)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	router := gin.Default()
	httpapi.SetupRoutes(router, eng)

	fmt.Printf("Advisor API listening on %s (db: %s, session: %s)\n", serveAddr, dbPath(), eng.ID())
	return router.Run(serveAddr)
}
