/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/elicaapp/elicappWeb/config"
	"github.com/elicaapp/elicappWeb/internal/logging"
	"github.com/elicaapp/elicappWeb/internal/server"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the elicapp backend server",
	Long: `Starts the elicapp backend server. Usage:

	elicapp server
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()

		log := logging.New(logging.Options{
			Environment:    cfg.Environment,
			ManagedRuntime: cfg.ManagedRuntime,
			Dir:            cfg.LogDir,
		})
		defer log.Close()

		srv, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
			os.Exit(1)
		}
		if err := srv.Start(); err != nil {
			log.Error("server error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
