/*
Package opcode classifies and evaluates byte-transform instructions.

An instruction is one short textual expression over a single variable n,
drawn from a small closed grammar used by streaming sites to obfuscate
URLs (e.g. "(n + 111) % 256", "n ^ 217", "~n & 255"). The package turns
such text into a typed operation and applies it to integer inputs.

# Architecture

The package has three pieces:

 1. Classifier
    - Classify matches text against anchored patterns for each shape
    - A structural fallback re-reads sloppier renditions of the same shapes
    - Unmatched text classifies to KindUnknown; Classify never fails

 2. Evaluator
    - Op.Eval dispatches on the kind and computes the transform
    - Results are wrapped into [0, 255] with explicit normalization so
      negative inputs cannot produce a negative byte
    - Evaluating a KindUnknown op returns an UNSUPPORTED_OPERATION error
      carrying the original text

 3. Cache
    - Cache memoizes text-to-Op lookups, keyed by trimmed text
    - Population races collapse to one classification via singleflight
    - Clear is the only invalidation; classification is pure, so entries
      never go stale

# Usage

	cache := opcode.NewCache()
	op := cache.GetOrClassify("n ^ 217")
	v, err := op.Eval(100)
	if err != nil {
		// only possible for KindUnknown
	}
	_ = v // 189

# Error Codes

The package defines two error codes:

  - INVALID_INPUT: a boundary value could not be read as an integer
  - UNSUPPORTED_OPERATION: instruction text matched no known shape

Errors unwrap to the sentinels in the errs package, so callers may use
errors.Is as well as the IsInvalidInput/IsUnsupportedOperation helpers.

# Thread Safety

Classify and Eval are pure functions. Cache is safe for concurrent use:
the read path takes an RWMutex read lock and hit/miss counters are
atomic. Redundant classification of the same text would be harmless
(identical text always classifies identically); singleflight merely makes
population at-most-once.
*/
package opcode
