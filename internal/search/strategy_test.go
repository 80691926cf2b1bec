package search

import (
	"math/rand"
	"sort"
	"testing"

	"roomradar/internal/domain"
)

func priced(prices ...int) []domain.Room {
	out := make([]domain.Room, len(prices))
	for i, p := range prices {
		out[i] = domain.Room{ID: string(rune('a' + i)), Price: p, Available: true}
	}
	return out
}

func pricesOf(rooms []domain.Room) []int {
	out := make([]int, len(rooms))
	for i, r := range rooms {
		out[i] = r.Price
	}
	return out
}

func TestApplyStrategy_HighToLow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := applyStrategy(rng, StrategyHighToLow, priced(3000, 8000, 5000, 1000))
	want := []int{8000, 5000, 3000, 1000}
	for i, p := range pricesOf(got) {
		if p != want[i] {
			t.Fatalf("position %d: got %d want %d (full: %v)", i, p, want[i], pricesOf(got))
		}
	}
}

func TestApplyStrategy_PremiumFocused(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// high: 9000, 8000; mid: 7000, 5000; low: 4000, 1000, each tier descending
	got := applyStrategy(rng, StrategyPremiumFocused, priced(1000, 7000, 9000, 4000, 5000, 8000))
	want := []int{9000, 8000, 7000, 5000, 4000, 1000}
	for i, p := range pricesOf(got) {
		if p != want[i] {
			t.Fatalf("position %d: got %d want %d (full: %v)", i, p, want[i], pricesOf(got))
		}
	}
}

func TestApplyStrategy_PremiumMidFocus_LowTailSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := applyStrategy(rng, StrategyPremiumMidFocus, priced(1000, 7000, 9000, 4000, 5000, 8000))
	if len(got) != 6 {
		t.Fatalf("lost rooms: %v", pricesOf(got))
	}
	// first four are mid+high in some shuffled order
	upper := pricesOf(got[:4])
	sort.Ints(upper)
	for i, want := range []int{5000, 7000, 8000, 9000} {
		if upper[i] != want {
			t.Fatalf("upper group wrong members: %v", pricesOf(got))
		}
	}
	// low tail descending
	if got[4].Price != 4000 || got[5].Price != 1000 {
		t.Fatalf("low tail not descending: %v", pricesOf(got))
	}
}

func TestApplyStrategy_SmartPremiumMix_TierOrderHeld(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := applyStrategy(rng, StrategySmartPremiumMix, priced(1000, 7000, 9000, 4000, 5000, 8000))
	tier := func(p int) int {
		switch {
		case p > midTierMax:
			return 0
		case p > lowTierMax:
			return 1
		default:
			return 2
		}
	}
	last := -1
	for _, p := range pricesOf(got) {
		if tr := tier(p); tr < last {
			t.Fatalf("tier order violated: %v", pricesOf(got))
		} else {
			last = tr
		}
	}
}

func TestPromotedOrder_KeepsAllAndTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := priced(2000, 9000, 6000, 3000)
	got := promotedOrder(rng, in)
	if len(got) != 4 {
		t.Fatalf("lost rooms: %v", pricesOf(got))
	}
	if got[0].Price != 9000 {
		t.Fatalf("high tier must lead: %v", pricesOf(got))
	}
}

func TestPickStrategy_CoversAll(t *testing.T) {
	seen := map[Strategy]bool{}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		seen[pickStrategy(rng)] = true
	}
	if len(seen) != len(allStrategies) {
		t.Fatalf("expected all strategies to be drawable, saw %v", seen)
	}
}
