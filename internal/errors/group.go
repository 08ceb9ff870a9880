package errors

import "sort"

// DefaultMaxPerGroup is the bucket cap used when none is configured.
const DefaultMaxPerGroup = 10

// GroupStats describes what the grouper did with its input.
type GroupStats struct {
	Grouped  int // errors placed into a group
	Excluded int // errors dropped because their bucket was full
}

// codeBucket keeps symbol buckets for one code in first-seen order.
type codeBucket struct {
	code    string
	symbols []string
	groups  map[string]*Group
}

// GroupByCode partitions errors by code, then by symbol within each code.
//
// Each (code, symbol) bucket holds at most maxPerGroup errors. Errors that
// arrive after their bucket is full are excluded from the result entirely;
// they are not moved to an overflow group. Groups are returned ordered by
// descending count. Ties keep encounter order: codes by first appearance,
// then symbols by first appearance within their code.
//
// A maxPerGroup below 1 is treated as DefaultMaxPerGroup.
func GroupByCode(errs []*ExtractedError, maxPerGroup int) []*Group {
	groups, _ := GroupByCodeWithStats(errs, maxPerGroup)
	return groups
}

// GroupByCodeWithStats is GroupByCode that also reports how many errors
// were excluded by the bucket cap.
func GroupByCodeWithStats(errs []*ExtractedError, maxPerGroup int) ([]*Group, GroupStats) {
	if maxPerGroup < 1 {
		maxPerGroup = DefaultMaxPerGroup
	}

	var stats GroupStats
	var order []*codeBucket
	byCode := make(map[string]*codeBucket)

	for _, err := range errs {
		if err == nil {
			continue
		}

		bucket, ok := byCode[err.Code]
		if !ok {
			bucket = &codeBucket{code: err.Code, groups: make(map[string]*Group)}
			byCode[err.Code] = bucket
			order = append(order, bucket)
		}

		symbol := err.Symbol
		group, ok := bucket.groups[symbol]
		if !ok {
			group = &Group{ErrorCode: err.Code, Symbol: symbol}
			bucket.groups[symbol] = group
			bucket.symbols = append(bucket.symbols, symbol)
		}

		if len(group.Errors) >= maxPerGroup {
			stats.Excluded++
			continue
		}
		group.Errors = append(group.Errors, err)
		group.Count = len(group.Errors)
		stats.Grouped++
	}

	result := make([]*Group, 0, len(order))
	for _, bucket := range order {
		for _, symbol := range bucket.symbols {
			result = append(result, bucket.groups[symbol])
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result, stats
}
