package events

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.Exec(`CREATE TABLE billing_events (
		id BIGINT PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL DEFAULT '{}',
		dedupe_key TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX ux_billing_events_dedupe ON billing_events (dedupe_key)`).Error; err != nil {
		t.Fatalf("create index: %v", err)
	}
	return db
}

func newTestOutbox(t *testing.T, db *gorm.DB) *Outbox {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewOutbox(db, node)
}

func countEvents(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Raw(`SELECT COUNT(1) FROM billing_events`).Scan(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}

func TestPublishStoresEvent(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := newTestOutbox(t, db)

	payload := CyclePayload{Year: 2025, Month: 3, Rows: 4}
	err := outbox.Publish(context.Background(), Event{
		Type:      EventCycleCreated,
		Payload:   payload.ToMap(),
		DedupeKey: EventCycleCreated + ":2025-03",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := countEvents(t, db); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}

	var eventType string
	if err := db.Raw(`SELECT event_type FROM billing_events`).Scan(&eventType).Error; err != nil {
		t.Fatalf("read event: %v", err)
	}
	if eventType != EventCycleCreated {
		t.Fatalf("unexpected event type %q", eventType)
	}
}

func TestPublishDeduplicatesByKey(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := newTestOutbox(t, db)

	event := Event{
		Type:      EventCycleCreated,
		Payload:   CyclePayload{Year: 2025, Month: 3, Rows: 4}.ToMap(),
		DedupeKey: EventCycleCreated + ":2025-03",
	}
	for i := 0; i < 3; i++ {
		if err := outbox.Publish(context.Background(), event); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	if got := countEvents(t, db); got != 1 {
		t.Fatalf("expected a single deduped event, got %d", got)
	}
}

func TestPublishAllowsDistinctPeriods(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := newTestOutbox(t, db)

	for _, key := range []string{"cycle.created:2025-03", "cycle.created:2025-04"} {
		err := outbox.Publish(context.Background(), Event{Type: EventCycleCreated, DedupeKey: key})
		if err != nil {
			t.Fatalf("publish %s: %v", key, err)
		}
	}
	if got := countEvents(t, db); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
}

func TestPublishRejectsMissingType(t *testing.T) {
	db := setupOutboxTestDB(t)
	outbox := newTestOutbox(t, db)

	if err := outbox.Publish(context.Background(), Event{Type: "  "}); err == nil {
		t.Fatal("expected an error for a blank event type")
	}
}

func TestPublishOnNilOutbox(t *testing.T) {
	var outbox *Outbox
	if err := outbox.Publish(context.Background(), Event{Type: EventCycleCreated}); err == nil {
		t.Fatal("expected outbox_unavailable error")
	}
}

func TestCyclePayloadToMapOmitsEmptyFields(t *testing.T) {
	payload := CyclePayload{Year: 2025, Month: 3, Rows: 4}.ToMap()
	if _, ok := payload["trigger"]; ok {
		t.Fatal("empty trigger should be omitted")
	}
	if _, ok := payload["announce"]; ok {
		t.Fatal("false announce should be omitted")
	}

	payload = CyclePayload{Year: 2025, Month: 3, Rows: 4, Trigger: "scheduler", Announce: true}.ToMap()
	if payload["trigger"] != "scheduler" || payload["announce"] != true {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
