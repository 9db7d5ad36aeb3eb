package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/TheSilent01/ryanair-bot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestStore_AlertLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	const chatID int64 = 42

	if _, err := store.GetAlert(ctx, chatID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("GetAlert() before insert error = %v, want ErrNotFound", err)
	}

	if err := store.UpsertAlert(ctx, chatID, 150); err != nil {
		t.Fatalf("UpsertAlert() error = %v", err)
	}

	alert, err := store.GetAlert(ctx, chatID)
	if err != nil {
		t.Fatalf("GetAlert() error = %v", err)
	}
	if alert.TargetPrice != 150 || !alert.Active {
		t.Errorf("GetAlert() = %+v, want active alert at 150", alert)
	}

	// Upsert replaces the target and reactivates.
	if err := store.UpsertAlert(ctx, chatID, 200); err != nil {
		t.Fatalf("UpsertAlert() update error = %v", err)
	}
	alert, err = store.GetAlert(ctx, chatID)
	if err != nil {
		t.Fatalf("GetAlert() after update error = %v", err)
	}
	if alert.TargetPrice != 200 {
		t.Errorf("TargetPrice after upsert = %v, want 200", alert.TargetPrice)
	}

	if err := store.DeactivateAlert(ctx, chatID); err != nil {
		t.Fatalf("DeactivateAlert() error = %v", err)
	}
	alert, err = store.GetAlert(ctx, chatID)
	if err != nil {
		t.Fatalf("GetAlert() after deactivate error = %v", err)
	}
	if alert.Active {
		t.Error("alert still active after DeactivateAlert()")
	}

	// Setting a new target reactivates the same row.
	if err := store.UpsertAlert(ctx, chatID, 100); err != nil {
		t.Fatalf("UpsertAlert() reactivate error = %v", err)
	}
	alert, err = store.GetAlert(ctx, chatID)
	if err != nil {
		t.Fatalf("GetAlert() after reactivate error = %v", err)
	}
	if !alert.Active || alert.TargetPrice != 100 {
		t.Errorf("GetAlert() after reactivate = %+v, want active alert at 100", alert)
	}
}

func TestStore_DeactivateAlert_NotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.DeactivateAlert(context.Background(), 999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("DeactivateAlert() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ActiveAlerts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	for chatID, target := range map[int64]float64{1: 150, 2: 200, 3: 99} {
		if err := store.UpsertAlert(ctx, chatID, target); err != nil {
			t.Fatalf("UpsertAlert(%d) error = %v", chatID, err)
		}
	}
	if err := store.DeactivateAlert(ctx, 2); err != nil {
		t.Fatalf("DeactivateAlert() error = %v", err)
	}

	alerts, err := store.ActiveAlerts(ctx)
	if err != nil {
		t.Fatalf("ActiveAlerts() error = %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("ActiveAlerts() returned %d alerts, want 2", len(alerts))
	}
	for _, a := range alerts {
		if a.ChatID == 2 {
			t.Error("ActiveAlerts() includes a deactivated alert")
		}
	}
}

func TestStore_Snapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		snap := &database.PriceSnapshot{
			Origin:      "AGA",
			Destination: "FEZ",
			Price:       float64(100 + i),
			Currency:    "MAD",
			FareDate:    "2026-09-10",
			CheckedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}
	// A snapshot for another route must not show up.
	other := &database.PriceSnapshot{Origin: "STN", Destination: "FEZ", Price: 50, Currency: "GBP", FareDate: "2026-09-10"}
	if err := store.SaveSnapshot(ctx, other); err != nil {
		t.Fatalf("SaveSnapshot() other route error = %v", err)
	}

	snaps, err := store.RecentSnapshots(ctx, "AGA", "FEZ", 3)
	if err != nil {
		t.Fatalf("RecentSnapshots() error = %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("RecentSnapshots() returned %d, want 3", len(snaps))
	}
	if snaps[0].Price != 104 {
		t.Errorf("newest snapshot price = %v, want 104", snaps[0].Price)
	}
	if !snaps[0].CheckedAt.After(snaps[1].CheckedAt) {
		t.Error("RecentSnapshots() not ordered newest first")
	}
}

func TestStore_SaveSnapshot_DefaultsCheckedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	snap := &database.PriceSnapshot{Origin: "AGA", Destination: "FEZ", Price: 99, Currency: "MAD", FareDate: "2026-09-10"}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if snap.CheckedAt.IsZero() {
		t.Error("SaveSnapshot() left CheckedAt zero")
	}
}

func TestStore_PruneSnapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now().UTC()
	old := &database.PriceSnapshot{
		Origin: "AGA", Destination: "FEZ", Price: 100, Currency: "MAD",
		FareDate: "2026-09-10", CheckedAt: now.Add(-100 * 24 * time.Hour),
	}
	fresh := &database.PriceSnapshot{
		Origin: "AGA", Destination: "FEZ", Price: 110, Currency: "MAD",
		FareDate: "2026-09-11", CheckedAt: now,
	}
	for _, s := range []*database.PriceSnapshot{old, fresh} {
		if err := store.SaveSnapshot(ctx, s); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}

	removed, err := store.PruneSnapshots(ctx, now.Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("PruneSnapshots() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("PruneSnapshots() removed %d rows, want 1", removed)
	}

	snaps, err := store.RecentSnapshots(ctx, "AGA", "FEZ", 10)
	if err != nil {
		t.Fatalf("RecentSnapshots() error = %v", err)
	}
	if len(snaps) != 1 || snaps[0].Price != 110 {
		t.Errorf("remaining snapshots = %+v, want only the fresh one", snaps)
	}
}

func TestStore_RunMaintenance(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.RunMaintenance(context.Background()); err != nil {
		t.Errorf("RunMaintenance() error = %v", err)
	}
}
