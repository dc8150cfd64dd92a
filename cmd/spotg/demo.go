package main

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"spotgarbage.org/internal/config"
	"spotgarbage.org/internal/kv"
	"spotgarbage.org/internal/notify"
	"spotgarbage.org/internal/obs"
	"spotgarbage.org/internal/state"
	"spotgarbage.org/internal/verify"
)

// demoCmd walks the full report lifecycle against a configured backing store:
// login as the demo citizen, file a report through the verification
// heuristic, then collect it as the demo worker.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed a store and walk a report from submission to collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			obs.Init()
			cfg := config.Load()

			kvs, cleanup, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			stream := notify.NewStream(100)
			toasts, unsubscribe := stream.Subscribe(32)
			defer unsubscribe()

			store := state.New(kvs, state.WithSink(stream))

			citizen := store.Login("user@example.com", "password")
			if citizen == nil {
				return fmt.Errorf("demo citizen login failed")
			}

			verifier := verify.NewHeuristic(verify.WithDelay(cfg.VerifyDelay))
			res, err := verifier.Verify(context.Background(), verify.Input{
				Title:       "Construction debris on the riverbank",
				Description: "Broken glass and rusted metal sheets dumped overnight.",
				WasteType:   string(state.WasteMixed),
			})
			if err != nil {
				return err
			}

			report := store.AddComplaint(state.ComplaintDraft{
				Title:        "Construction debris on the riverbank",
				Description:  "Broken glass and rusted metal sheets dumped overnight.",
				Lat:          13.0475,
				Lng:          80.2824,
				WasteType:    state.WasteMixed,
				Toxicity:     state.ToxicityMedium,
				Verified:     res.Verified,
				ReporterID:   citizen.ID,
				ReporterName: citizen.Name,
			})
			fmt.Printf("filed %s (status=%s confidence=%d)\n", report.ID, report.Status, res.Confidence)

			store.Logout()
			if worker := store.Login("worker@example.com", "password"); worker == nil {
				return fmt.Errorf("demo worker login failed")
			}
			store.UpdateComplaintStatus(report.ID, state.StatusInProgress)
			store.CollectComplaint(report.ID, []string{"after-cleanup.jpg"})

			for _, c := range store.Complaints() {
				fmt.Printf("%-12s %-40s %s\n", c.Status, c.Title, c.ReporterName)
			}
			if last := store.LastPersist(); last.Outcome != state.Persisted {
				fmt.Printf("persistence degraded: %s (%s)\n", last.Outcome, last.Reason)
			}

			unsubscribe()
			for ev := range toasts {
				fmt.Printf("[%s] %s\n", ev.Severity, ev.Message)
			}
			return nil
		},
	}
}

func openBackend(cfg config.Config) (kv.Store, func(), error) {
	switch cfg.Backend {
	case "memory":
		return kv.NewMemory(cfg.QuotaBytes), func() {}, nil
	case "sqlite":
		db, err := sql.Open("sqlite", filepath.Join(cfg.DataDir, "spotg.db"))
		if err != nil {
			return nil, nil, err
		}
		store, err := kv.NewSQL(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		store, err := kv.NewFile(filepath.Join(cfg.DataDir, "spotg_state.json"), cfg.QuotaBytes)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
