package analyzer

import (
	"fmt"

	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/models"
)

// SkipFunc decides whether an object member disqualifies its whole object
// from the sum.
type SkipFunc func(key string, value models.Value) bool

// Stats summarizes a parsed tree.
type Stats struct {
	Objects  int
	Arrays   int
	Strings  int
	Ints     int
	Bools    int
	Nulls    int
	Members  int // object members, duplicates included
	MaxDepth int // deepest container nesting, 0 for a bare scalar

	// DuplicateKeys counts members shadowed by an earlier member with the
	// same key in the same object.
	DuplicateKeys int

	Sum            int64
	SkippedObjects int // objects excluded from Sum by the skip rules
}

// Analyzer walks parsed trees.
type Analyzer struct {
	skip     SkipFunc
	maxDepth int
}

// NewAnalyzer creates an Analyzer that never skips anything.
func NewAnalyzer() *Analyzer {
	return &Analyzer{maxDepth: models.DefaultMaxDepth}
}

// NewAnalyzerWithConfig creates an Analyzer whose skip rules and depth limit
// come from cfg.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	a := NewAnalyzer()
	a.maxDepth = cfg.Limits.Depth()
	if cfg.Skip.Enabled() {
		a.skip = cfg.ShouldSkip
	}
	return a
}

// SetSkip replaces the skip predicate. A nil predicate never skips.
func (a *Analyzer) SetSkip(skip SkipFunc) {
	a.skip = skip
}

// Sum adds up every integer leaf under v. Arrays are always descended.
// An object in which the skip predicate matches any member contributes
// nothing at all, including members that did not match. Booleans, strings
// and nulls never contribute.
func (a *Analyzer) Sum(v models.Value) (int64, error) {
	stats, err := a.Analyze(v)
	if err != nil {
		return 0, err
	}
	return stats.Sum, nil
}

// Analyze walks v once, collecting counts alongside the sum.
func (a *Analyzer) Analyze(v models.Value) (Stats, error) {
	var stats Stats
	if err := a.walk(v, 0, true, &stats); err != nil {
		return Stats{}, errors.NewAnalysisError("failed to walk tree", err)
	}
	return stats, nil
}

// walk accumulates v into stats. counted reports whether v lies outside
// every skipped object.
func (a *Analyzer) walk(v models.Value, depth int, counted bool, stats *Stats) error {
	switch v.Kind() {
	case models.KindInt:
		stats.Ints++
		if counted {
			n, _ := v.Int()
			sum := stats.Sum + n
			if (n > 0 && sum < stats.Sum) || (n < 0 && sum > stats.Sum) {
				return fmt.Errorf("%w: %d + %d", errors.ErrSumOverflow, stats.Sum, n)
			}
			stats.Sum = sum
		}
	case models.KindBool:
		stats.Bools++
	case models.KindString:
		stats.Strings++
	case models.KindNull:
		stats.Nulls++
	case models.KindArray:
		arr, _ := v.Array()
		if err := a.descend(depth, stats); err != nil {
			return err
		}
		stats.Arrays++
		for i, item := range arr.All() {
			if err := a.walk(item, depth+1, counted, stats); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case models.KindObject:
		obj, _ := v.Object()
		if err := a.descend(depth, stats); err != nil {
			return err
		}
		stats.Objects++
		stats.Members += obj.Len()
		stats.DuplicateKeys += duplicates(obj)

		if counted && a.skipsObject(obj) {
			stats.SkippedObjects++
			counted = false
		}
		for key, member := range obj.All() {
			if err := a.walk(member, depth+1, counted, stats); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

func (a *Analyzer) descend(depth int, stats *Stats) error {
	if depth >= a.maxDepth {
		return errors.ErrDepthExceeded
	}
	if depth+1 > stats.MaxDepth {
		stats.MaxDepth = depth + 1
	}
	return nil
}

func (a *Analyzer) skipsObject(obj *models.Object) bool {
	if a.skip == nil {
		return false
	}
	for key, member := range obj.All() {
		if a.skip(key, member) {
			return true
		}
	}
	return false
}

func duplicates(obj *models.Object) int {
	seen := make(map[string]struct{}, obj.Len())
	dup := 0
	for key := range obj.All() {
		if _, ok := seen[key]; ok {
			dup++
			continue
		}
		seen[key] = struct{}{}
	}
	return dup
}
