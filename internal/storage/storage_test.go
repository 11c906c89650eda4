package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"uninews/internal/news"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return s
}

func testRecord(title string) news.Record {
	return news.Record{
		University: "上海大学",
		Title:      title,
		Date:       time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		Link:       "https://news.shu.edu.cn/news/1.htm",
		Category:   news.CategoryAdmissions,
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
}

func TestEnsureSchemaBackfillsCategory(t *testing.T) {
	// A table created before categorization existed has no category
	// column; EnsureSchema must add it rather than fail.
	path := filepath.Join(t.TempDir(), "legacy.db")
	legacy, err := sqlx.Connect("sqlite", path)
	if err != nil {
		t.Fatalf("opening legacy db: %v", err)
	}
	_, err = legacy.Exec(`CREATE TABLE news_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		university_name TEXT NOT NULL,
		title TEXT UNIQUE NOT NULL,
		date TEXT NOT NULL,
		link TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("creating legacy table: %v", err)
	}
	legacy.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer s.Close()

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema on legacy table failed: %v", err)
	}
	if _, err := s.Insert(context.Background(), testRecord("上海大学召开2024年招生工作会议")); err != nil {
		t.Fatalf("insert with category after backfill failed: %v", err)
	}
}

func TestInsertAndDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	outcome, err := s.Insert(ctx, testRecord("上海大学召开2024年招生工作会议"))
	if err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if outcome != Inserted {
		t.Fatalf("first insert outcome = %v, expected Inserted", outcome)
	}

	// Same title, different link: the unique constraint dedups it and
	// the stored count does not move.
	dup := testRecord("上海大学召开2024年招生工作会议")
	dup.Link = "https://news.shu.edu.cn/news/other.htm"
	outcome, err = s.Insert(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate insert returned error: %v", err)
	}
	if outcome != Duplicate {
		t.Fatalf("duplicate insert outcome = %v, expected Duplicate", outcome)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("stored count = %d, expected 1", n)
	}
}

func TestListLinksAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	titles := []string{
		"上海大学召开2024年招生工作会议",
		"同济大学举办校园开放日活动",
		"复旦大学发布最新科研成果公告",
	}
	for i, title := range titles {
		rec := testRecord(title)
		rec.Link = "https://example.edu.cn/news/" + string(rune('a'+i)) + ".htm"
		if _, err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("inserting %q: %v", title, err)
		}
	}

	links, err := s.ListLinks(ctx)
	if err != nil {
		t.Fatalf("listing links: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("got %d links, expected 3", len(links))
	}

	if err := s.DeleteRecords(ctx, []int64{links[0].ID, links[2].ID}); err != nil {
		t.Fatalf("deleting records: %v", err)
	}

	remaining, err := s.ListLinks(ctx)
	if err != nil {
		t.Fatalf("listing links after delete: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("got %d links after delete, expected 1", len(remaining))
	}
	if remaining[0].ID != links[1].ID {
		t.Errorf("wrong record survived: id %d, expected %d", remaining[0].ID, links[1].ID)
	}

	// Deleting nothing is a no-op.
	if err := s.DeleteRecords(ctx, nil); err != nil {
		t.Errorf("empty delete returned error: %v", err)
	}
}
