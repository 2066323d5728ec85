package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/mockmate/mockmate/internal/config"
	"github.com/mockmate/mockmate/internal/interview"
	"github.com/mockmate/mockmate/internal/llm"
	"github.com/mockmate/mockmate/internal/quota"
	"github.com/mockmate/mockmate/internal/server"
	"github.com/mockmate/mockmate/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.Oracle, st.OracleLogs())
	if err != nil {
		return err
	}

	oracle := interview.NewOracle(provider, cfg.Oracle.Timeout, interview.DefaultParserDefaults())
	gate := quota.NewGate(st.Users(), cfg.Quota.DailyCap)
	engine := interview.NewEngine(st.Sessions(), st.Users(), gate, oracle)

	h := server.New(engine, st.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("starting server on %s (oracle: %s)", addr, provider.ModelID())
	return h.Router().Run(addr)
}
