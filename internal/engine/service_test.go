package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lifedash/internal/storage"
)

var fixedNow = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db, Options{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func TestLoadDefaultsOnEmptyStore(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	st, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Resolutions) != 3 || st.Resolutions[0].Title != "ELITE PHYSIQUE" {
		t.Fatalf("resolutions=%+v", st.Resolutions)
	}
	if st.TargetDate != "" || st.TargetLabel != DefaultTargetLabel {
		t.Fatalf("target=%q/%q", st.TargetDate, st.TargetLabel)
	}
	if len(st.Transactions) != 0 {
		t.Fatalf("transactions=%v", st.Transactions)
	}
	if st.Profile != DefaultProfile() {
		t.Fatalf("profile=%+v", st.Profile)
	}
	if st.Appearance != DefaultAppearance() {
		t.Fatalf("appearance=%+v", st.Appearance)
	}
}

func TestRoundTripEveryPanel(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res := NewResolutions([]Resolution{{ID: "r1", Title: "RUN", Description: "5k", Priority: "CUSTOM", Stars: 2, Progress: 33}})
	if err := svc.SaveResolutions(ctx, res); err != nil {
		t.Fatalf("SaveResolutions: %v", err)
	}
	cd := NewCountdown("2030-05-01T08:00", "LAUNCH", time.UTC)
	if err := svc.SaveTarget(ctx, cd); err != nil {
		t.Fatalf("SaveTarget: %v", err)
	}
	l := NewLedger(nil)
	if _, err := l.Add("1250.50", TxIncome, CategorySalary, fixedNow); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := l.Add("99.99", TxExpense, CategoryFood, fixedNow); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.SaveLedger(ctx, l); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}
	prof := Profile{Name: "NEO", Description: "ONE", WeightKg: 72.5, HeightCm: 181, Image: "data:image/png;base64,AAAA"}
	if err := svc.SaveProfile(ctx, prof); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	look := Appearance{Acne: 1, Skin: 2, Hair: 3, Body: 4, Style: 5, Posture: 6}
	if err := svc.SaveAppearance(ctx, look); err != nil {
		t.Fatalf("SaveAppearance: %v", err)
	}

	st, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Resolutions) != 1 || st.Resolutions[0] != res.Items()[0] {
		t.Fatalf("resolutions=%+v", st.Resolutions)
	}
	if st.TargetDate != "2030-05-01T08:00" || st.TargetLabel != "LAUNCH" {
		t.Fatalf("target=%q/%q", st.TargetDate, st.TargetLabel)
	}
	want := l.Transactions()
	if len(st.Transactions) != len(want) {
		t.Fatalf("transactions=%v", st.Transactions)
	}
	for i := range want {
		got := st.Transactions[i]
		if !got.Amount.Equal(want[i].Amount) || got.Type != want[i].Type || got.Category != want[i].Category || !got.Date.Equal(want[i].Date) {
			t.Fatalf("tx %d=%+v, want %+v", i, got, want[i])
		}
	}
	if st.Profile != prof {
		t.Fatalf("profile=%+v, want %+v", st.Profile, prof)
	}
	if st.Appearance != look {
		t.Fatalf("appearance=%+v", st.Appearance)
	}

	mirror, ok, err := svc.KVRepo().Get(ctx, storage.KeyBalance)
	if err != nil || !ok {
		t.Fatalf("balance mirror missing: %v", err)
	}
	if mirror != "1150.51" {
		t.Fatalf("balance mirror=%q", mirror)
	}
}

func TestMalformedValuesFallBackPerPanel(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	kv := svc.KVRepo()

	if err := kv.Set(ctx, storage.KeyResolutions, "[{broken"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, storage.KeyOperatorWeight, "NaN-ish"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, storage.KeyOperatorName, "KEEP"); err != nil {
		t.Fatalf("set: %v", err)
	}

	st, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Resolutions) != 3 {
		t.Fatalf("expected default resolutions, got %d", len(st.Resolutions))
	}
	if st.Profile.WeightKg != DefaultWeightKg {
		t.Fatalf("weight=%v", st.Profile.WeightKg)
	}
	if st.Profile.Name != "KEEP" {
		t.Fatalf("name=%q", st.Profile.Name)
	}
}

func TestStoredLooksAreClampedOnLoad(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	raw := `{"acne":150,"skin":-5,"hair":70,"body":65,"style":55,"posture":60}`
	if err := svc.KVRepo().Set(ctx, storage.KeyAppearance, raw); err != nil {
		t.Fatalf("set: %v", err)
	}
	st, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Appearance.Acne != 100 || st.Appearance.Skin != 0 || st.Appearance.Hair != 70 {
		t.Fatalf("appearance=%+v", st.Appearance)
	}
}

func TestLegacyRecordsGetIDs(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	legacy := `[{"title":"OLD","description":"","priority":"HIGH","stars":5,"progress":60}]`
	if err := svc.KVRepo().Set(ctx, storage.KeyResolutions, legacy); err != nil {
		t.Fatalf("set: %v", err)
	}
	d, err := svc.OpenDashboard(ctx)
	if err != nil {
		t.Fatalf("OpenDashboard: %v", err)
	}
	items := d.Resolutions.Items()
	if len(items) != 1 || items[0].ID == "" {
		t.Fatalf("items=%+v", items)
	}
}

func TestSetResolutionProgressPersists(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	got, err := svc.SetResolutionProgress(ctx, "2", 90)
	if err != nil {
		t.Fatalf("SetResolutionProgress: %v", err)
	}
	if got.Title != "MASTER CODING" || got.Progress != 90 {
		t.Fatalf("got %+v", got)
	}
	if _, err := svc.SetResolutionProgress(ctx, "9", 10); !IsIndexError(err) {
		t.Fatalf("expected IndexError, got %v", err)
	}

	st, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Resolutions[1].Progress != 90 {
		t.Fatalf("progress not persisted: %+v", st.Resolutions[1])
	}
}

func TestAddTransactionUpdatesMirror(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, _, err := svc.AddTransaction(ctx, "100", TxIncome, CategoryGeneral); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	_, bal, err := svc.AddTransaction(ctx, "30", TxExpense, CategoryRent)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if !bal.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("balance=%s", bal)
	}
	if _, _, err := svc.AddTransaction(ctx, "", TxIncome, CategoryGeneral); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	mirror, _, _ := svc.KVRepo().Get(ctx, storage.KeyBalance)
	if mirror != "70" {
		t.Fatalf("mirror=%q", mirror)
	}
	// The ledger never touches other panels' keys.
	if _, ok, _ := svc.KVRepo().Get(ctx, storage.KeyResolutions); ok {
		t.Fatalf("ledger wrote resolutions key")
	}
}

func TestSetTargetAndLabel(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	label := "SHIP IT"
	c, err := svc.SetTarget(ctx, "2025-06-16T10:31:01", &label)
	if err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if c.State != CountdownCounting || c.Remaining != (Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}) {
		t.Fatalf("state=%s remaining=%+v", c.State, c.Remaining)
	}
	if _, err := svc.SetTarget(ctx, "garbage", nil); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
	c, err = svc.SetTargetLabel(ctx, "RENAMED")
	if err != nil {
		t.Fatalf("SetTargetLabel: %v", err)
	}
	if c.Timestamp != "2025-06-16T10:31:01" || c.Label != "RENAMED" {
		t.Fatalf("countdown=%+v", c)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

func TestProfileImage(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	dir := t.TempDir()

	good := filepath.Join(dir, "me.png")
	writePNG(t, good, 1024, 600)
	p, err := svc.SetProfileImage(ctx, good)
	if err != nil {
		t.Fatalf("SetProfileImage: %v", err)
	}
	if !strings.HasPrefix(p.Image, "data:image/png;base64,") {
		t.Fatalf("image=%.40s", p.Image)
	}

	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = svc.SetProfileImage(ctx, bad)
	var ie ImageError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImageError, got %v", err)
	}
	if _, err := svc.SetProfileImage(ctx, filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	st, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Profile.Image != p.Image {
		t.Fatalf("image replaced after failed load")
	}
}

func TestUpdateProfileRejectsBadMetric(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	w := -3.0
	if _, err := svc.UpdateProfile(ctx, ProfileUpdate{WeightKg: &w}); !errors.Is(err, ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}
	name := "TRINITY"
	h := 170.0
	p, err := svc.UpdateProfile(ctx, ProfileUpdate{Name: &name, HeightCm: &h})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.Name != "TRINITY" || p.HeightCm != 170 || p.WeightKg != DefaultWeightKg {
		t.Fatalf("profile=%+v", p)
	}
	if _, ok, _ := svc.KVRepo().Get(ctx, storage.KeyOperatorImage); ok {
		t.Fatalf("empty image must not be written")
	}
}

func TestAgeUsesInjectedClock(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	if got := svc.Age(); got != 21 {
		t.Fatalf("age=%d, want 21", got)
	}
}
