//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/shahedul-alam/the-hotel-server/internal/domain"
	mysqlrepo "github.com/shahedul-alam/the-hotel-server/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel?parseTime=true&clientFoundRows=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seedRoom(t *testing.T, repo *mysqlrepo.Repo, dates ...string) string {
	t.Helper()
	id := domain.NewID()
	if dates == nil {
		dates = []string{}
	}
	city := "Dhaka"
	err := repo.InsertRoom(context.Background(), domain.Room{
		ID:            id,
		Name:          "Deluxe " + id[:8],
		City:          &city,
		PricePerNight: 120,
		Images:        []string{"https://img.example/1.jpg"},
		BookedDates:   dates,
	})
	if err != nil {
		t.Fatalf("InsertRoom: %v", err)
	}
	return id
}

// ---------- the tests ----------

func TestRepo_MySQL_BookedDateArrayOps(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	roomID := seedRoom(t, repo)

	// append lands once
	res, err := repo.AppendBookedDate(ctx, roomID, "2024-05-01")
	if err != nil || res.Matched != 1 {
		t.Fatalf("append: res=%+v err=%v", res, err)
	}
	// appending the same date matches nothing
	res, err = repo.AppendBookedDate(ctx, roomID, "2024-05-01")
	if err != nil || res.Matched != 0 {
		t.Fatalf("duplicate append: res=%+v err=%v", res, err)
	}

	room, err := repo.GetRoom(ctx, roomID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if len(room.BookedDates) != 1 || room.BookedDates[0] != "2024-05-01" {
		t.Fatalf("bookedDates = %v", room.BookedDates)
	}

	// conditional replace keyed on the current date
	res, err = repo.ReplaceBookedDate(ctx, roomID, "2024-05-01", "2024-05-02")
	if err != nil || res.Matched != 1 {
		t.Fatalf("replace: res=%+v err=%v", res, err)
	}
	// stale current date matches nothing
	res, err = repo.ReplaceBookedDate(ctx, roomID, "2024-05-01", "2024-05-03")
	if err != nil || res.Matched != 0 {
		t.Fatalf("stale replace: res=%+v err=%v", res, err)
	}

	// remove exactly one occurrence
	res, err = repo.RemoveBookedDate(ctx, roomID, "2024-05-02")
	if err != nil || res.Matched != 1 {
		t.Fatalf("remove: res=%+v err=%v", res, err)
	}
	res, err = repo.RemoveBookedDate(ctx, roomID, "2024-05-02")
	if err != nil || res.Matched != 0 {
		t.Fatalf("second remove: res=%+v err=%v", res, err)
	}

	room, _ = repo.GetRoom(ctx, roomID)
	if len(room.BookedDates) != 0 {
		t.Fatalf("bookedDates after remove = %v", room.BookedDates)
	}
}

func TestRepo_MySQL_BookingsRoundTrip(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	roomID := seedRoom(t, repo)

	first := domain.Booking{
		ID: domain.NewID(), RoomID: roomID, OwnerEmail: "alice@example.com",
		Date: "2024-05-01", GuestInfo: map[string]any{"guestName": "Alice"},
	}
	second := domain.Booking{
		ID: domain.NewID(), RoomID: roomID, OwnerEmail: "alice@example.com",
		Date: "2024-05-02",
	}
	if err := repo.InsertBooking(ctx, first); err != nil {
		t.Fatalf("insert first: %v", err)
	}
	if err := repo.InsertBooking(ctx, second); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	got, err := repo.GetBooking(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.OwnerEmail != "alice@example.com" || got.GuestInfo["guestName"] != "Alice" {
		t.Fatalf("unexpected booking: %+v", got)
	}

	list, err := repo.ListBookingsByOwner(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("ListBookingsByOwner: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("not newest-first: %+v", list)
	}

	res, err := repo.SetBookingDate(ctx, first.ID, "2024-05-05")
	if err != nil || res.Matched != 1 {
		t.Fatalf("SetBookingDate: res=%+v err=%v", res, err)
	}
	res, err = repo.DeleteBooking(ctx, first.ID)
	if err != nil || res.Matched != 1 {
		t.Fatalf("DeleteBooking: res=%+v err=%v", res, err)
	}
	if _, err := repo.GetBooking(ctx, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestRepo_MySQL_InTxRollsBack(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	roomID := seedRoom(t, repo)
	boom := errors.New("boom")

	err := repo.InTx(ctx, func(st domain.Store) error {
		if err := st.InsertBooking(ctx, domain.Booking{
			ID: domain.NewID(), RoomID: roomID, OwnerEmail: "a@b.c", Date: "2024-05-01",
		}); err != nil {
			return err
		}
		if _, err := st.AppendBookedDate(ctx, roomID, "2024-05-01"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	room, err := repo.GetRoom(ctx, roomID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if len(room.BookedDates) != 0 {
		t.Fatalf("rollback leaked a date: %v", room.BookedDates)
	}
	list, _ := repo.ListBookingsByOwner(ctx, "a@b.c")
	if len(list) != 0 {
		t.Fatalf("rollback leaked a booking: %+v", list)
	}
}
