package calculator

// Aggregate collates the item names of several lists into a count of how
// many distinct lists want each item. Repeated names inside one list count
// once for that list.
func Aggregate(lists [][]string) map[string]int {
	counts := make(map[string]int)
	for _, items := range lists {
		seen := make(map[string]struct{}, len(items))
		for _, name := range items {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			counts[name]++
		}
	}
	return counts
}
