package functions

import (
	"fmt"
	"regexp"
	"runtime"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/errgroup"
)

// InvalidPatternError fails the whole batch. A pattern that doesn't compile
// indicates a malformed query, not a data condition.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regexp pattern '%s': %s", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// InvalidGroupIndexError fails the whole batch. Indices bigger than the
// pattern's capture group count are fine (they produce empty strings),
// negative ones are not.
type InvalidGroupIndexError struct {
	Index int64
}

func (e *InvalidGroupIndexError) Error() string {
	return fmt.Sprintf("invalid regexp capture group index: %d", e.Index)
}

// RegexpCache caches compiled regexps across batches, keyed by pattern text.
// It only ever changes performance, never results. A nil *RegexpCache is
// valid and compiles every time.
type RegexpCache struct {
	cache *ristretto.Cache
}

func NewRegexpCache() *RegexpCache {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 128,     // number of keys to track frequency of.
		MaxCost:     1 << 26, // maximum cost of cache (64MB).
		BufferItems: 64,      // number of keys per Get buffer.
	})
	if err != nil {
		panic(fmt.Errorf("couldn't initialize regexp cache: %w", err))
	}
	return &RegexpCache{cache: cache}
}

func (c *RegexpCache) Get(pattern string) (*regexp.Regexp, error) {
	if c == nil {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Err: err}
		}
		return re, nil
	}
	if out, ok := c.cache.Get(pattern); ok {
		return out.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	c.cache.Set(pattern, re, 1)
	return re, nil
}

// Batches at least this big get split into row ranges evaluated in parallel.
// Rows are independent, the only shared state are the read-only input arrays.
const parallelExtractThreshold = 4096

// RegexpExtract returns the regexp_extract kernel: it extracts the capture
// group chosen by the index column from each input string, using the pattern
// column. The group index and the pattern typically come from broadcast
// constants, but per-row columns work just as well.
//
// Null inputs produce null outputs. Non-matching rows and in-bounds-but-absent
// groups produce empty strings. The output always has exactly as many rows as
// the input.
func RegexpExtract(cache *RegexpCache) func([]arrow.Array) (arrow.Array, error) {
	return func(args []arrow.Array) (arrow.Array, error) {
		strs, ok := args[0].(*array.String)
		if !ok {
			return nil, fmt.Errorf("expected string array as regexp_extract input, got %s", args[0].DataType())
		}
		patterns, ok := args[1].(*array.String)
		if !ok {
			return nil, fmt.Errorf("expected string array as regexp_extract pattern, got %s", args[1].DataType())
		}
		indices, ok := args[2].(*array.Int64)
		if !ok {
			return nil, fmt.Errorf("expected int64 array as regexp_extract group index, got %s", args[2].DataType())
		}
		return regexpExtract(strs, patterns, indices, cache)
	}
}

func regexpExtract(strs, patterns *array.String, indices *array.Int64, cache *RegexpCache) (arrow.Array, error) {
	rows := strs.Len()
	if patterns.Len() != rows || indices.Len() != rows {
		return nil, fmt.Errorf("regexp_extract argument lengths don't match: %d, %d, %d", rows, patterns.Len(), indices.Len())
	}

	out := make([]string, rows)
	valid := make([]bool, rows)

	if rows >= parallelExtractThreshold {
		var g errgroup.Group
		workers := runtime.GOMAXPROCS(0)
		chunk := (rows + workers - 1) / workers
		for start := 0; start < rows; start += chunk {
			start := start
			end := start + chunk
			if end > rows {
				end = rows
			}
			g.Go(func() error {
				return extractRows(strs, patterns, indices, cache, out, valid, start, end)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else if err := extractRows(strs, patterns, indices, cache, out, valid, 0, rows); err != nil {
		return nil, err
	}

	builder := array.NewStringBuilder(memory.NewGoAllocator())
	defer builder.Release()
	builder.Reserve(rows)
	for i := 0; i < rows; i++ {
		if !valid[i] {
			builder.AppendNull()
			continue
		}
		builder.Append(out[i])
	}
	return builder.NewStringArray(), nil
}

func extractRows(strs, patterns *array.String, indices *array.Int64, cache *RegexpCache, out []string, valid []bool, start, end int) error {
	// The last compiled pattern is memoized, so a constant (broadcast) pattern
	// column compiles exactly once for the whole range and per-row patterns
	// recompile only when the text actually changes.
	var re *regexp.Regexp
	var rePattern string

	for i := start; i < end; i++ {
		if strs.IsNull(i) {
			// Null propagates no matter what the row's pattern and index are.
			continue
		}
		index := indices.Value(i)
		if index < 0 {
			return &InvalidGroupIndexError{Index: index}
		}
		pattern := patterns.Value(i)
		if re == nil || pattern != rePattern {
			var err error
			re, err = cache.Get(pattern)
			if err != nil {
				return err
			}
			rePattern = pattern
		}

		valid[i] = true
		matches := re.FindStringSubmatchIndex(strs.Value(i))
		if matches == nil {
			// No match is a data condition, the result is an empty string.
			continue
		}
		if index >= int64(len(matches)/2) {
			// So is a group index bigger than the pattern's group count.
			continue
		}
		group := int(index)
		from, to := matches[2*group], matches[2*group+1]
		if from == -1 {
			// The group didn't participate in the match.
			continue
		}
		out[i] = strs.Value(i)[from:to]
	}
	return nil
}
