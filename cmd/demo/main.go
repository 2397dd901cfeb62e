package main

import (
	"context"
	"fmt"
	"os"

	"go-employee/internal/directory"
	"go-employee/internal/eventbus"
	"go-employee/internal/events"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Mode offline/demo: Directory yang sama dengan backend remote, tapi
// dilayani dari snapshot lokal dengan data demo.
func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	bus := eventbus.New(eventbus.WithLogger(logger))

	snap, err := directory.NewSnapshot(directory.SnapshotConfig{
		Path: os.Getenv("SNAPSHOT_PATH"),
	}, bus, logger)
	if err != nil {
		logger.Fatal("load snapshot failed", zap.Error(err))
	}

	ctx := context.Background()

	if divs, _ := snap.ListDivisions(ctx, ""); len(divs) == 0 {
		snap.SeedDemo()
		logger.Info("snapshot seeded with demo data")
	}

	unsubscribe := bus.Subscribe(events.EmployeesKey, func(ev eventbus.Event) {
		logger.Info("employees collection changed", zap.Any("value", ev.Value))
	})
	defer unsubscribe()

	page, err := snap.ListEmployees(ctx, directory.Filter{}, directory.PageRequest{Page: 1, Limit: 6})
	if err != nil {
		logger.Fatal("list employees failed", zap.Error(err))
	}

	fmt.Printf("Karyawan (halaman %d/%d, total %d):\n", page.CurrentPage, page.LastPage, page.Total)
	for _, e := range page.Items {
		fmt.Printf("  %-22s %-20s %s\n", e.Name, e.Position, e.Division.Name)
	}

	id, err := snap.CreateEmployee(ctx, directory.EmployeeInput{
		Name:     "Dewi Lestari",
		Phone:    "081234567896",
		Division: "div-002",
		Position: "QA Engineer",
	})
	if err != nil {
		logger.Fatal("create employee failed", zap.Error(err))
	}
	fmt.Printf("\nKaryawan baru dibuat: %s\n", id)

	filtered, err := snap.ListEmployees(ctx,
		directory.Filter{DivisionID: "div-002"},
		directory.PageRequest{Page: 1, Limit: 6},
	)
	if err != nil {
		logger.Fatal("list employees failed", zap.Error(err))
	}

	fmt.Printf("\nDivisi QA (total %d):\n", filtered.Total)
	for _, e := range filtered.Items {
		fmt.Printf("  %-22s %s\n", e.Name, e.Position)
	}
}
