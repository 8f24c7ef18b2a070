package ledger

import "testing"

func TestBudgetConservation(t *testing.T) {
	const budget = 5
	l := New(0, budget)
	for k := 1; k <= budget; k++ {
		if !l.Spend() {
			t.Fatalf("toggle %d refused with %d left", k, l.Steps())
		}
		if l.Steps() != budget-k {
			t.Fatalf("after %d toggles expected %d steps, got %d", k, budget-k, l.Steps())
		}
	}
	for i := 0; i < 3; i++ {
		if l.Spend() {
			t.Fatal("toggle beyond the budget must be refused")
		}
	}
	if l.Steps() != 0 {
		t.Fatalf("refused toggles must not change the budget, got %d", l.Steps())
	}
}

func TestLevelUpGrantsSteps(t *testing.T) {
	l := New(0, 0)
	if got := l.Add(LevelSize - 1); got != 0 || l.Steps() != 0 {
		t.Fatalf("no level crossed yet, granted %d steps=%d", got, l.Steps())
	}
	if got := l.Add(1); got != 1 || l.Steps() != 1 {
		t.Fatalf("crossing one level should grant 1, granted %d steps=%d", got, l.Steps())
	}
	if got := l.Add(3 * LevelSize); got != 3 || l.Steps() != 4 {
		t.Fatalf("crossing three levels should grant 3, granted %d steps=%d", got, l.Steps())
	}
	if l.Level() != 4 {
		t.Fatalf("expected level 4, got %d", l.Level())
	}
}

func TestScoreMonotonic(t *testing.T) {
	l := New(10, 1)
	l.Add(-50)
	if l.Score() != 10 {
		t.Fatalf("negative delta changed score to %d", l.Score())
	}
	l.Add(7)
	if l.Score() != 17 {
		t.Fatalf("expected 17, got %d", l.Score())
	}
}

func TestUnlimited(t *testing.T) {
	l := New(0, Unlimited)
	for i := 0; i < 1000; i++ {
		if !l.Spend() {
			t.Fatal("unlimited budget refused a toggle")
		}
	}
	l.Add(5 * LevelSize)
	if l.Steps() != Unlimited || !l.IsUnlimited() {
		t.Fatalf("unlimited budget reported %d", l.Steps())
	}
}

func TestResetRestoresInitialValues(t *testing.T) {
	l := New(0, 3)
	l.Spend()
	l.Add(2 * LevelSize)
	l.Reset()
	if l.Score() != 0 || l.Steps() != 3 {
		t.Fatalf("reset produced score=%d steps=%d", l.Score(), l.Steps())
	}
	l.Restore(12345, Unlimited)
	if l.Score() != 12345 || !l.IsUnlimited() {
		t.Fatal("restore should apply persisted values")
	}
	l.Reset()
	if l.IsUnlimited() || l.Steps() != 3 {
		t.Fatal("reset must return to the configured budget")
	}
}
