package repository

// Integration tests against a real MySQL instance. They are skipped unless
// TEST_DATABASE_DSN is set; the DSN must include parseTime=true&loc=UTC,
// e.g. "root:pw@tcp(localhost:3306)/trip_test?parseTime=true&loc=UTC".
// Every test starts from empty tables.

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/trip-planner/internal/database"
	"github.com/iliyamo/trip-planner/internal/model"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, tbl := range []string{"comments", "photos", "activities", "user_sessions", "auth"} {
		if _, err := db.Exec("DELETE FROM " + tbl); err != nil {
			t.Fatalf("clean %s: %v", tbl, err)
		}
	}
	return db
}

func mustCreate(t *testing.T, r *ActivityRepo, in ActivityInput) *model.Activity {
	t.Helper()
	act, err := r.Create(context.Background(), in, "ana")
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}
	return act
}

func assertCompletionConsistent(t *testing.T, a *model.Activity) {
	t.Helper()
	if a.Completed != (a.CompletedBy != nil) || a.Completed != (a.CompletedAt != nil) {
		t.Fatalf("completion fields inconsistent: completed=%v by=%v at=%v",
			a.Completed, a.CompletedBy, a.CompletedAt)
	}
}

func TestActivityTimeNormalizedRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewActivityRepo(db)

	act := mustCreate(t, repo, ActivityInput{
		Title:        "Hike",
		ActivityDate: "2026-09-01",
		ActivityTime: model.NormalizeTime("09:30"),
	})
	if act.ActivityTime == nil || *act.ActivityTime != "09:30:00" {
		t.Fatalf("activity_time = %v, want 09:30:00", act.ActivityTime)
	}

	untimed := mustCreate(t, repo, ActivityInput{Title: "Lazy day", ActivityDate: "2026-09-01"})
	if untimed.ActivityTime != nil {
		t.Fatalf("absent time must be stored as NULL, got %q", *untimed.ActivityTime)
	}
}

func TestListOrderingNullTimeFirst(t *testing.T) {
	db := testDB(t)
	repo := NewActivityRepo(db)

	late := mustCreate(t, repo, ActivityInput{
		Title: "Dinner", ActivityDate: "2026-09-01", ActivityTime: model.NormalizeTime("19:00"),
	})
	untimed := mustCreate(t, repo, ActivityInput{Title: "Open day", ActivityDate: "2026-09-01"})
	early := mustCreate(t, repo, ActivityInput{
		Title: "Hike", ActivityDate: "2026-09-01", ActivityTime: model.NormalizeTime("09:30"),
	})
	nextDay := mustCreate(t, repo, ActivityInput{Title: "Flight", ActivityDate: "2026-09-02"})

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []uint64{untimed.ID, early.ID, late.ID, nextDay.ID}
	if len(items) != len(want) {
		t.Fatalf("expected %d activities, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d (order: untimed first, then by time, then date)",
				i, items[i].ID, id)
		}
	}
}

func TestListCounts(t *testing.T) {
	db := testDB(t)
	acts := NewActivityRepo(db)
	photos := NewPhotoRepo(db)
	comments := NewCommentRepo(db)
	ctx := context.Background()

	withChildren := mustCreate(t, acts, ActivityInput{Title: "Hike", ActivityDate: "2026-09-01"})
	bare := mustCreate(t, acts, ActivityInput{Title: "Dinner", ActivityDate: "2026-09-02"})

	for i := 0; i < 2; i++ {
		if _, err := photos.Create(ctx, withChildren.ID, "aGk=", nil, "ana"); err != nil {
			t.Fatalf("photo: %v", err)
		}
	}
	if _, err := comments.Create(ctx, withChildren.ID, "nice", "bea"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	items, err := acts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, it := range items {
		switch it.ID {
		case withChildren.ID:
			if it.PhotoCount != 2 || it.CommentCount != 1 {
				t.Fatalf("counts = %d/%d, want 2/1", it.PhotoCount, it.CommentCount)
			}
		case bare.ID:
			if it.PhotoCount != 0 || it.CommentCount != 0 {
				t.Fatalf("bare activity counts = %d/%d, want 0/0", it.PhotoCount, it.CommentCount)
			}
		}
	}
}

func TestToggleCompleteRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewActivityRepo(db)
	ctx := context.Background()

	act := mustCreate(t, repo, ActivityInput{Title: "Hike", ActivityDate: "2026-09-01"})
	assertCompletionConsistent(t, act)

	done, err := repo.ToggleComplete(ctx, act.ID, "ana")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	assertCompletionConsistent(t, done)
	if !done.Completed || *done.CompletedBy != "ana" {
		t.Fatalf("first toggle: %+v", done)
	}

	back, err := repo.ToggleComplete(ctx, act.ID, "bea")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	assertCompletionConsistent(t, back)
	if back.Completed != act.Completed || back.CompletedBy != nil || back.CompletedAt != nil {
		t.Fatalf("double toggle must restore the pre-toggle trio: %+v", back)
	}
}

// Parallel toggles must never strand completed=true with completed_by NULL
// (or any other mismatched pair); the single-statement UPDATE is what
// guarantees it.
func TestToggleCompleteConcurrent(t *testing.T) {
	db := testDB(t)
	repo := NewActivityRepo(db)
	ctx := context.Background()

	act := mustCreate(t, repo, ActivityInput{Title: "Hike", ActivityDate: "2026-09-01"})

	const n = 16
	results := make([]*model.Activity, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.ToggleComplete(ctx, act.ID, "caller")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("toggle %d: %v", i, errs[i])
		}
		assertCompletionConsistent(t, results[i])
	}

	final, err := repo.GetByID(ctx, act.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertCompletionConsistent(t, final)
	if final.Completed { // n is even
		t.Fatalf("after %d toggles completed should be false", n)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := testDB(t)
	acts := NewActivityRepo(db)
	photos := NewPhotoRepo(db)
	comments := NewCommentRepo(db)
	ctx := context.Background()

	act := mustCreate(t, acts, ActivityInput{Title: "Hike", ActivityDate: "2026-09-01"})
	for i := 0; i < 2; i++ {
		if _, err := photos.Create(ctx, act.ID, "aGk=", nil, "ana"); err != nil {
			t.Fatalf("photo: %v", err)
		}
	}
	if _, err := comments.Create(ctx, act.ID, "nice", "bea"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := acts.Delete(ctx, act.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := acts.GetByID(ctx, act.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	var orphans int
	if err := db.QueryRow(
		"SELECT (SELECT COUNT(*) FROM photos WHERE activity_id=?) + (SELECT COUNT(*) FROM comments WHERE activity_id=?)",
		act.ID, act.ID).Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("%d orphaned child rows remain after cascade delete", orphans)
	}

	if err := acts.Delete(ctx, act.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat delete: expected ErrNotFound, got %v", err)
	}
}

func TestGalleryNewestFirst(t *testing.T) {
	db := testDB(t)
	acts := NewActivityRepo(db)
	photos := NewPhotoRepo(db)
	ctx := context.Background()

	first := mustCreate(t, acts, ActivityInput{Title: "Hike", ActivityDate: "2026-09-01"})
	second := mustCreate(t, acts, ActivityInput{Title: "Dinner", ActivityDate: "2026-09-02"})

	var ids []uint64
	for _, activityID := range []uint64{first.ID, second.ID, first.ID} {
		p, err := photos.Create(ctx, activityID, "aGk=", nil, "ana")
		if err != nil {
			t.Fatalf("photo: %v", err)
		}
		ids = append(ids, p.ID)
	}

	gallery, err := photos.Gallery(ctx)
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if len(gallery) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(gallery))
	}
	// Strictly newest first across activities; same-second inserts fall
	// back to descending id.
	for i, want := range []uint64{ids[2], ids[1], ids[0]} {
		if gallery[i].ID != want {
			t.Fatalf("gallery position %d: got id %d, want %d", i, gallery[i].ID, want)
		}
	}
	if gallery[0].ActivityTitle != "Hike" {
		t.Fatalf("gallery must join the activity title, got %q", gallery[0].ActivityTitle)
	}
}

func TestCommentsOldestFirst(t *testing.T) {
	db := testDB(t)
	acts := NewActivityRepo(db)
	comments := NewCommentRepo(db)
	ctx := context.Background()

	act := mustCreate(t, acts, ActivityInput{Title: "Hike", ActivityDate: "2026-09-01"})
	var ids []uint64
	for _, text := range []string{"first", "second", "third"} {
		c, err := comments.Create(ctx, act.ID, text, "ana")
		if err != nil {
			t.Fatalf("comment: %v", err)
		}
		ids = append(ids, c.ID)
	}

	list, err := comments.ListByActivity(ctx, act.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range ids {
		if list[i].ID != want {
			t.Fatalf("comments must read as a transcript, oldest first: position %d got %d", i, list[i].ID)
		}
	}
}

func TestChildCreateRejectsMissingActivity(t *testing.T) {
	db := testDB(t)
	photos := NewPhotoRepo(db)
	comments := NewCommentRepo(db)
	ctx := context.Background()

	if _, err := photos.Create(ctx, 424242, "aGk=", nil, "ana"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("photo for missing activity: expected ErrNotFound, got %v", err)
	}
	if _, err := comments.Create(ctx, 424242, "hi", "ana"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comment for missing activity: expected ErrNotFound, got %v", err)
	}
}

func TestCredentialAndSessionLog(t *testing.T) {
	db := testDB(t)
	creds := NewCredentialRepo(db)
	sessions := NewSessionRepo(db)
	ctx := context.Background()

	if _, err := db.Exec("INSERT INTO auth (username, password_hash) VALUES ('trip', 'x')"); err != nil {
		t.Fatalf("seed auth: %v", err)
	}

	cred, err := creds.GetByUsername(ctx, "trip")
	if err != nil {
		t.Fatalf("get credential: %v", err)
	}
	if cred.Username != "trip" {
		t.Fatalf("username = %q", cred.Username)
	}
	if _, err := creds.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown username: expected ErrNotFound, got %v", err)
	}

	if err := sessions.Append(ctx, "ana"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := sessions.Append(ctx, "bea"); err != nil {
		t.Fatalf("append: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM user_sessions").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 session events, got %d", n)
	}
}
