package service

// Left-join plumbing shared by the extract builders. Joins are key-map
// lookups: the left side is always preserved and a missed lookup leaves
// the right-side fields nil. Right sides must already be at one row per
// key (pre-aggregated or deduplicated) so left rows never fan out.

// indexBy builds a key map over rows, keeping the last row per key. Use it
// only for right sides that are already unique per key.
func indexBy[K comparable, V any](rows []V, key func(V) K) map[K]V {
	m := make(map[K]V, len(rows))
	for _, row := range rows {
		m[key(row)] = row
	}
	return m
}

// firstBy builds a key map keeping the first row per key in input order.
// Feeding it deterministically ordered rows makes the dedup deterministic;
// the review repository's ordering contract exists for exactly this call.
func firstBy[K comparable, V any](rows []V, key func(V) K) map[K]V {
	m := make(map[K]V, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, ok := m[k]; !ok {
			m[k] = row
		}
	}
	return m
}
