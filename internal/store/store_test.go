package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestVisitorsAndStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	visits := []struct {
		hash string
		at   time.Time
	}{
		{"aaaa", now.Add(-time.Hour)},
		{"aaaa", now.Add(-2 * time.Hour)},
		{"bbbb", now.Add(-3 * 24 * time.Hour)},
		{"cccc", now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v.hash, "test-agent", "/", v.at); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	stats, err := s.Stats(ctx, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 4 {
		t.Errorf("Expected 4 visitors, got %d", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 3 {
		t.Errorf("Expected 3 unique visitors, got %d", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 {
		t.Errorf("Expected 2 visitors today, got %d", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Errorf("Expected 3 visitors this week, got %d", stats.VisitorsThisWeek)
	}
	if len(stats.RecentVisitors) != 4 || stats.RecentVisitors[0].HashedIP != "aaaa" {
		t.Errorf("Expected newest visitor first, got %+v", stats.RecentVisitors)
	}

	removed, err := s.CleanupVisitors(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("CleanupVisitors: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 old visitor removed, got %d", removed)
	}
}

func TestMessagesLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Body: "hi"})
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if err := s.SetMessageStatus(ctx, id, StatusDelivered); err != nil {
		t.Fatalf("SetMessageStatus: %v", err)
	}
	if _, err := s.SaveMessage(ctx, Message{Name: "Bob", Email: "bob@example.com", Body: "yo", Status: StatusFailed}); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}

	msgs, err := s.Messages(ctx, 10)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}

	stats, err := s.Stats(ctx, time.Now())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMessages != 2 || stats.DeliveredMessages != 1 || stats.FailedMessages != 1 {
		t.Errorf("Expected 2/1/1 messages, got %d/%d/%d", stats.TotalMessages, stats.DeliveredMessages, stats.FailedMessages)
	}

	ok, err := s.DeleteMessage(ctx, id)
	if err != nil || !ok {
		t.Errorf("Expected delete to succeed, got %v %v", ok, err)
	}
	ok, err = s.DeleteMessage(ctx, id)
	if err != nil || ok {
		t.Errorf("Expected second delete to report missing, got %v %v", ok, err)
	}
}

func TestOpenFileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.SaveMessage(context.Background(), Message{Name: "A", Email: "a@b.co", Body: "x"}); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer s.Close()
	msgs, err := s.Messages(context.Background(), 10)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("Expected message to survive reopen, got %d", len(msgs))
	}
}
