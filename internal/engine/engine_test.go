package engine

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestConvertSecondsTable(t *testing.T) {
	cases := []struct {
		seconds int64
		unit    Unit
		want    string
	}{
		{3600, UnitHours, "1.00"},
		{90, UnitMinutes, "1.50"},
		{86400, UnitDays, "1.00"},
		{30 * 86400, UnitMonths, "1.00"},
		{365 * 86400, UnitYears, "1.00"},
		{1234567, UnitSeconds, "1,234,567"},
		{1234, UnitMilliseconds, "1,234,000"},
		{0, UnitSeconds, "0"},
		{1234567, Unit("fortnights"), "1234567"},
	}
	for _, c := range cases {
		if got := ConvertSeconds(c.seconds, c.unit); got != c.want {
			t.Fatalf("ConvertSeconds(%d, %s)=%q, want %q", c.seconds, c.unit, got, c.want)
		}
	}
}

func TestConvertHoursAlwaysTwoDecimals(t *testing.T) {
	for _, s := range []int64{0, 1, 59, 3599, 3601, 7_200, 123_456_789} {
		want := fmt.Sprintf("%.2f", float64(s)/3600)
		if got := ConvertSeconds(s, UnitHours); got != want {
			t.Fatalf("hours(%d)=%q, want %q", s, got, want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	if u, ok := ParseUnit("ms"); !ok || u != UnitMilliseconds {
		t.Fatalf("ParseUnit(ms)=%s,%v", u, ok)
	}
	if u, ok := ParseUnit("whatever"); ok || u != DefaultUnit {
		t.Fatalf("ParseUnit(whatever)=%s,%v", u, ok)
	}
	for _, u := range SelectableUnits {
		if u == UnitMilliseconds {
			t.Fatalf("milliseconds must not be selectable")
		}
	}
}

func TestNearestUnitTieGoesToFirst(t *testing.T) {
	anchors := EvenAnchors([]Unit{UnitSeconds, UnitMinutes, UnitHours}, 10, 10)
	// centres at 5, 25, 45
	if u, _ := NearestUnit(anchors, 24); u != UnitMinutes {
		t.Fatalf("NearestUnit(24)=%s, want minutes", u)
	}
	if u, _ := NearestUnit(anchors, 15); u != UnitSeconds {
		t.Fatalf("NearestUnit(15)=%s, want seconds (tie)", u)
	}
	if u, _ := NearestUnit(anchors, 1000); u != UnitHours {
		t.Fatalf("NearestUnit(1000)=%s, want hours", u)
	}
	if _, ok := NearestUnit(nil, 3); ok {
		t.Fatalf("expected no unit for empty anchors")
	}
}

func TestElapsedSeconds(t *testing.T) {
	epoch := DefaultEpoch
	if got := ElapsedSeconds(epoch, epoch.Add(1999*time.Millisecond)); got != 1 {
		t.Fatalf("ElapsedSeconds=%d, want 1", got)
	}
	if got := ElapsedSeconds(epoch, epoch.Add(-time.Hour)); got != 0 {
		t.Fatalf("ElapsedSeconds before epoch=%d, want 0", got)
	}

	rt := NewRuntime(time.Time{})
	rt.Tick(epoch.Add(2 * time.Hour))
	if !rt.SetUnit(UnitHours) {
		t.Fatalf("SetUnit(hours) rejected")
	}
	if got := rt.Display(NewFormatter("en")); got != "2.00" {
		t.Fatalf("Display=%q, want 2.00", got)
	}
	if rt.SetUnit("weeks") {
		t.Fatalf("SetUnit(weeks) accepted")
	}
}

func TestAggregateProgress(t *testing.T) {
	r := NewResolutions(nil)
	if got := r.AggregateProgress(); got != 0 {
		t.Fatalf("empty aggregate=%v, want 0", got)
	}

	r = NewResolutions(DefaultResolutions())
	want := float64(60+45+70) / 3
	if got := r.AggregateProgress(); got != want {
		t.Fatalf("aggregate=%v, want %v", got, want)
	}
	for i := 0; i < r.Len(); i++ {
		if err := r.SetProgress(i, 100); err != nil {
			t.Fatalf("SetProgress: %v", err)
		}
	}
	if got := r.AggregateProgress(); got != 100 {
		t.Fatalf("aggregate=%v, want 100", got)
	}
}

func TestSetProgressChecksBounds(t *testing.T) {
	r := NewResolutions(DefaultResolutions())
	before := r.Items()

	err := r.SetProgress(3, 10)
	if !IsIndexError(err) {
		t.Fatalf("expected IndexError, got %v", err)
	}
	if err := r.SetProgress(-1, 10); err == nil {
		t.Fatalf("expected error for negative index")
	}
	after := r.Items()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("record %d changed on failed update", i)
		}
	}

	if err := r.SetProgress(0, 250); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if got := r.Items()[0].Progress; got != 100 {
		t.Fatalf("progress=%d, want clamped 100", got)
	}
	if err := r.SetProgressByID(r.Items()[1].ID, -5); err != nil {
		t.Fatalf("SetProgressByID: %v", err)
	}
	if got := r.Items()[1].Progress; got != 0 {
		t.Fatalf("progress=%d, want clamped 0", got)
	}
	if err := r.SetProgressByID("missing", 5); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestResolveRef(t *testing.T) {
	r := NewResolutions(DefaultResolutions())
	if i, err := r.Resolve("2"); err != nil || i != 1 {
		t.Fatalf("Resolve(2)=%d,%v", i, err)
	}
	id := r.Items()[2].ID
	if i, err := r.Resolve(id); err != nil || i != 2 {
		t.Fatalf("Resolve(id)=%d,%v", i, err)
	}
	if _, err := r.Resolve("0"); !IsIndexError(err) {
		t.Fatalf("Resolve(0) err=%v, want IndexError", err)
	}
}

func TestAddResolutionValidates(t *testing.T) {
	r := NewResolutions(nil)
	if _, err := r.Add(Resolution{Title: "  "}); err == nil {
		t.Fatalf("expected title required")
	}
	if _, err := r.Add(Resolution{Title: "READ", Stars: 9}); err == nil {
		t.Fatalf("expected stars validation")
	}
	got, err := r.Add(Resolution{Title: "READ", Priority: "low", Stars: 3})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ID == "" || got.Priority != PriorityLow {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestYearElapsedPercent(t *testing.T) {
	loc := time.FixedZone("test", 5*3600)
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, loc)
	if got := YearElapsedPercent(start); got != 0 {
		t.Fatalf("start of year=%v, want 0", got)
	}
	end := time.Date(2025, time.December, 31, 23, 59, 59, 0, loc)
	if got := YearElapsedPercent(end); got != 100 {
		t.Fatalf("end of year=%v, want 100", got)
	}
	mid := YearElapsedPercent(time.Date(2025, time.July, 2, 12, 0, 0, 0, loc))
	if mid < 49 || mid > 51 {
		t.Fatalf("mid year=%v", mid)
	}
}

func TestCountdownBreakdown(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	target := now.Add(90061000 * time.Millisecond)

	c := NewCountdown("", DefaultTargetLabel, time.UTC)
	if st := c.Tick(now); st != CountdownUnset {
		t.Fatalf("state=%s, want unset", st)
	}
	if err := c.SetTarget(target.Format(time.RFC3339), now); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if c.State != CountdownCounting {
		t.Fatalf("state=%s, want counting", c.State)
	}
	want := Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}
	if c.Remaining != want {
		t.Fatalf("remaining=%+v, want %+v", c.Remaining, want)
	}
}

func TestCountdownReachedIsSticky(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := NewCountdown("", "", time.UTC)
	if err := c.SetTarget("2025-03-01T12:00:05", now); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if c.State != CountdownCounting {
		t.Fatalf("state=%s, want counting", c.State)
	}
	for i := 5; i < 10; i++ {
		if st := c.Tick(now.Add(time.Duration(i) * time.Second)); st != CountdownReached {
			t.Fatalf("tick %d state=%s, want reached", i, st)
		}
	}

	// Past target goes straight to reached; a future one resumes counting.
	if err := c.SetTarget("2020-01-01", now); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if c.State != CountdownReached {
		t.Fatalf("state=%s, want reached", c.State)
	}
	if err := c.SetTarget("2025-03-02T12:00", now); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if c.State != CountdownCounting || c.Remaining.Days != 1 {
		t.Fatalf("state=%s remaining=%+v", c.State, c.Remaining)
	}
}

func TestCountdownSettingsAutoCollapseOnce(t *testing.T) {
	now := time.Now()
	c := NewCountdown("", "", time.UTC)
	if !c.SettingsOpen {
		t.Fatalf("settings should start open")
	}
	if err := c.SetTarget("2099-01-01", now); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if c.SettingsOpen {
		t.Fatalf("settings should collapse on first target")
	}
	c.ToggleSettings()
	if err := c.SetTarget("2098-01-01", now); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if !c.SettingsOpen {
		t.Fatalf("settings should stay open after manual toggle")
	}
	if err := c.SetTarget("not a date", now); err == nil {
		t.Fatalf("expected invalid timestamp")
	}
	if c.Timestamp != "2098-01-01" {
		t.Fatalf("timestamp changed on rejected input: %q", c.Timestamp)
	}
}

func TestLedgerBalance(t *testing.T) {
	now := time.Now()
	l := NewLedger(nil)
	if _, err := l.Add("100", TxIncome, CategorySalary, now); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := l.Add("30", TxExpense, CategoryFood, now); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := l.Balance(); !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("balance=%s, want 70", got)
	}

	txs := l.Transactions()
	reversed := NewLedger([]Transaction{txs[1], txs[0]})
	if !reversed.Balance().Equal(l.Balance()) {
		t.Fatalf("balance depends on order")
	}

	income, expense := l.Totals()
	if !income.Equal(decimal.NewFromInt(100)) || !expense.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("totals=%s/%s", income, expense)
	}
	cats := l.ByCategory()
	if len(cats) != 2 || cats[0].Category != CategoryFood || cats[1].Category != CategorySalary {
		t.Fatalf("by category=%+v", cats)
	}
}

func TestLedgerRejectsBadAmounts(t *testing.T) {
	l := NewLedger(nil)
	for _, raw := range []string{"", "   ", "abc", "-5"} {
		if _, err := l.Add(raw, TxIncome, CategoryGeneral, time.Now()); err != ErrInvalidAmount {
			t.Fatalf("Add(%q) err=%v, want ErrInvalidAmount", raw, err)
		}
	}
	if _, err := l.Add("5", TxType("gift"), CategoryGeneral, time.Now()); err == nil {
		t.Fatalf("expected type validation error")
	}
	if len(l.Transactions()) != 0 {
		t.Fatalf("ledger changed on rejected input")
	}
	tx, err := l.Add("12.345", TxExpense, CategoryRent, time.Now())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if tx.Amount.String() != "12.345" {
		t.Fatalf("amount=%s", tx.Amount)
	}
}

func TestEstimateTax(t *testing.T) {
	cases := map[int64]string{
		200_000:   "0",
		400_000:   "7500",
		800_000:   "72500",
		1_500_000: "262500",
	}
	for income, want := range cases {
		got := EstimateTax(decimal.NewFromInt(income))
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("EstimateTax(%d)=%s, want %s", income, got, want)
		}
	}
}

func TestAppearanceAverage(t *testing.T) {
	a := Appearance{Acne: 50, Skin: 60, Hair: 70, Body: 65, Style: 55, Posture: 60}
	if got := a.Average(); got != 60 {
		t.Fatalf("average=%d, want 60", got)
	}
	// 363/6 = 60.5 rounds up.
	a.Posture = 63
	if got := a.Average(); got != 61 {
		t.Fatalf("average=%d, want 61", got)
	}
	if err := a.SetScore("HAIR", 140); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	if got, _ := a.Score("hair"); got != 100 {
		t.Fatalf("hair=%d, want 100", got)
	}
	if err := a.SetScore("teeth", 10); err == nil {
		t.Fatalf("expected unknown score")
	}
}

func TestAge(t *testing.T) {
	birth := time.Date(2004, time.January, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2003, time.June, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC), 20},
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 21},
	}
	for _, c := range cases {
		if got := Age(birth, c.now); got != c.want {
			t.Fatalf("Age(%s)=%d, want %d", c.now.Format(time.DateOnly), got, c.want)
		}
	}
}

func TestProfileMetrics(t *testing.T) {
	p := DefaultProfile()
	if err := p.AdjustWeight(-80); err != ErrInvalidMetric {
		t.Fatalf("AdjustWeight err=%v", err)
	}
	if p.WeightKg != DefaultWeightKg {
		t.Fatalf("weight changed on rejected update")
	}
	if err := p.AdjustHeight(5); err != nil {
		t.Fatalf("AdjustHeight: %v", err)
	}
	if got := strconv.FormatFloat(p.BMI(), 'f', 1, 64); got != "21.6" {
		t.Fatalf("bmi=%s", got)
	}
	p.SetName("   ")
	if p.Name != DefaultOperatorName {
		t.Fatalf("blank name not defaulted")
	}
}

func TestFormatterMoney(t *testing.T) {
	f := NewFormatter("en")
	cases := map[string]string{
		"-1234.5": "-₹1,234.50",
		"1250000": "₹1,250,000",
		"0":       "₹0",
	}
	for in, want := range cases {
		if got := f.Money("₹", decimal.RequireFromString(in)); got != want {
			t.Fatalf("Money(%s)=%q want %q", in, got, want)
		}
	}
}

func TestFormatterAmountBeyondInt64(t *testing.T) {
	f := NewFormatter("en")
	if got := f.Amount(1e20); got != "100,000,000,000,000,000,000" {
		t.Fatalf("Amount(1e20)=%q", got)
	}
	huge := decimal.RequireFromString("100000000000000000000")
	if got := f.Money("₹", huge.Neg()); got != "-₹100,000,000,000,000,000,000" {
		t.Fatalf("Money(-1e20)=%q", got)
	}
}

func TestFormatterMoneyIndianGrouping(t *testing.T) {
	f := NewFormatter("en-IN")
	if got := f.Money("₹", decimal.NewFromInt(1234567)); got != "₹12,34,567" {
		t.Fatalf("Money(en-IN)=%q want ₹12,34,567", got)
	}
}

func TestAppearanceClamped(t *testing.T) {
	a := Appearance{Acne: 150, Skin: -5, Hair: 70, Body: 100, Style: 0, Posture: 101}.Clamped()
	want := Appearance{Acne: 100, Skin: 0, Hair: 70, Body: 100, Style: 0, Posture: 100}
	if a != want {
		t.Fatalf("Clamped=%+v want %+v", a, want)
	}
}
