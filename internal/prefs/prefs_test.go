package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"light", ThemeLight, false},
		{" Dark ", ThemeDark, false},
		{"solarized", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidTheme) {
			t.Errorf("ParseTheme(%q) error = %v, want ErrInvalidTheme", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if got, _ := store.Theme(ctx, "c1"); got != DefaultTheme {
		t.Errorf("default theme = %q, want %q", got, DefaultTheme)
	}
	if err := store.SetTheme(ctx, "c1", ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if got, _ := store.Theme(ctx, "c1"); got != ThemeDark {
		t.Errorf("theme = %q, want dark", got)
	}
	if got, _ := store.Theme(ctx, "c2"); got != DefaultTheme {
		t.Errorf("other client theme = %q, want default", got)
	}
}

// fakeRow implements pgx.Row.
type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

// fakeDB records statements and serves rows from a map.
type fakeDB struct {
	rows  map[string]string
	execs []string
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if sql == upsertTheme {
		f.rows[args[0].(string)] = args[1].(string)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...interface{}) pgx.Row {
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{rows: map[string]string{}}
	store := NewPostgresStore(db)

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if got, err := store.Theme(ctx, "c1"); err != nil || got != DefaultTheme {
		t.Errorf("Theme = %q, %v; want default", got, err)
	}
	if err := store.SetTheme(ctx, "c1", ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if got, err := store.Theme(ctx, "c1"); err != nil || got != ThemeDark {
		t.Errorf("Theme = %q, %v; want dark", got, err)
	}
	if len(db.execs) != 2 || db.execs[0] != createThemeTable {
		t.Errorf("execs = %d, want schema then upsert", len(db.execs))
	}
}

func TestPostgresStore_QueryError(t *testing.T) {
	store := NewPostgresStore(errDB{})
	if _, err := store.Theme(context.Background(), "c1"); err == nil {
		t.Error("expected error")
	}
}

type errDB struct{}

func (errDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("connection refused")
}

func (errDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return fakeRow{err: errors.New("connection refused")}
}
