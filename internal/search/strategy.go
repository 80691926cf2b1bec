package search

import (
	"math/rand"
	"sort"

	"roomradar/internal/domain"
)

// Strategy names one of the four default-mode orderings. One is chosen at
// random per engine and held for the session, so results stay visually stable
// between searches while still varying across sessions.
type Strategy string

const (
	StrategyHighToLow       Strategy = "high_to_low"
	StrategyPremiumFocused  Strategy = "premium_focused"
	StrategyPremiumMidFocus Strategy = "premium_mid_focus"
	StrategySmartPremiumMix Strategy = "smart_premium_mix"
)

var allStrategies = []Strategy{
	StrategyHighToLow,
	StrategyPremiumFocused,
	StrategyPremiumMidFocus,
	StrategySmartPremiumMix,
}

// Price tier boundaries in rupees.
const (
	lowTierMax = 4000
	midTierMax = 7000
)

func pickStrategy(rng *rand.Rand) Strategy {
	return allStrategies[rng.Intn(len(allStrategies))]
}

// bucketByTier partitions rooms into high (> midTierMax), medium and
// low (<= lowTierMax) price tiers, preserving input order within each.
func bucketByTier(rooms []domain.Room) (high, mid, low []domain.Room) {
	for _, r := range rooms {
		switch {
		case r.Price > midTierMax:
			high = append(high, r)
		case r.Price > lowTierMax:
			mid = append(mid, r)
		default:
			low = append(low, r)
		}
	}
	return high, mid, low
}

func sortPriceDesc(rooms []domain.Room) {
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].Price > rooms[j].Price })
}

func shuffle(rng *rand.Rand, rooms []domain.Room) {
	rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })
}

// applyStrategy orders rooms according to s. The slice is reordered in place
// and returned.
func applyStrategy(rng *rand.Rand, s Strategy, rooms []domain.Room) []domain.Room {
	switch s {
	case StrategyPremiumFocused:
		high, mid, low := bucketByTier(rooms)
		sortPriceDesc(high)
		sortPriceDesc(mid)
		sortPriceDesc(low)
		return concat(high, mid, low)

	case StrategyPremiumMidFocus:
		high, mid, low := bucketByTier(rooms)
		upper := concat(high, mid)
		shuffle(rng, upper)
		sortPriceDesc(low)
		return concat(upper, low)

	case StrategySmartPremiumMix:
		high, mid, low := bucketByTier(rooms)
		shuffle(rng, high)
		shuffle(rng, mid)
		shuffle(rng, low)
		return concat(high, mid, low)

	default: // StrategyHighToLow
		sortPriceDesc(rooms)
		return rooms
	}
}

// promotedOrder arranges top-flagged rooms for the promoted prefix: tier
// buckets, each shuffled, concatenated high to low.
func promotedOrder(rng *rand.Rand, rooms []domain.Room) []domain.Room {
	high, mid, low := bucketByTier(rooms)
	shuffle(rng, high)
	shuffle(rng, mid)
	shuffle(rng, low)
	return concat(high, mid, low)
}

func concat(groups ...[]domain.Room) []domain.Room {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]domain.Room, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
