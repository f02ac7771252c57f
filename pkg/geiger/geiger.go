// Package geiger provides static unsafe-code usage statistics for every
// package in a dependency tree, as reported by cargo-geiger.
//
// Gathering the report means compiling and scanning the whole tree, so a
// [Client] runs the scan once and answers every subsequent lookup from the
// indexed result.
package geiger

// Count tallies safe and unsafe occurrences of one syntactic category.
type Count struct {
	Safe   uint64 `json:"safe"`
	Unsafe uint64 `json:"unsafe"`
}

// Total returns the combined number of occurrences.
func (c Count) Total() uint64 { return c.Safe + c.Unsafe }

// PercentageUnsafe returns the unsafe share as a fraction in [0, 1].
// A zero total yields 0.
func (c Count) PercentageUnsafe() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Unsafe) / float64(total)
}

// Categories breaks usage counts down by syntactic category.
type Categories struct {
	Functions  Count `json:"functions"`
	Exprs      Count `json:"exprs"`
	ItemImpls  Count `json:"item_impls"`
	ItemTraits Count `json:"item_traits"`
	Methods    Count `json:"methods"`
}

// Total returns the per-field sum across all five categories.
func (c Categories) Total() Count {
	return Count{
		Safe:   c.Functions.Safe + c.Exprs.Safe + c.ItemImpls.Safe + c.ItemTraits.Safe + c.Methods.Safe,
		Unsafe: c.Functions.Unsafe + c.Exprs.Unsafe + c.ItemImpls.Unsafe + c.ItemTraits.Unsafe + c.Methods.Unsafe,
	}
}

// Add returns the per-field sum of two category sets.
func (c Categories) Add(o Categories) Categories {
	return Categories{
		Functions:  Count{Safe: c.Functions.Safe + o.Functions.Safe, Unsafe: c.Functions.Unsafe + o.Functions.Unsafe},
		Exprs:      Count{Safe: c.Exprs.Safe + o.Exprs.Safe, Unsafe: c.Exprs.Unsafe + o.Exprs.Unsafe},
		ItemImpls:  Count{Safe: c.ItemImpls.Safe + o.ItemImpls.Safe, Unsafe: c.ItemImpls.Unsafe + o.ItemImpls.Unsafe},
		ItemTraits: Count{Safe: c.ItemTraits.Safe + o.ItemTraits.Safe, Unsafe: c.ItemTraits.Unsafe + o.ItemTraits.Unsafe},
		Methods:    Count{Safe: c.Methods.Safe + o.Methods.Safe, Unsafe: c.Methods.Unsafe + o.Methods.Unsafe},
	}
}

// Unsafety is the complete unsafe-usage record for one package: counts for
// code the build actually uses, counts for code it does not, and whether the
// package forbids unsafe code outright.
type Unsafety struct {
	Used          Categories `json:"used"`
	Unused        Categories `json:"unused"`
	ForbidsUnsafe bool       `json:"forbids_unsafe"`
}

// Total returns the per-field sum of used and unused counts.
func (u Unsafety) Total() Categories { return u.Used.Add(u.Unused) }
