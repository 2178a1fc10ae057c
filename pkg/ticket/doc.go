// Package ticket generates randomized 3×9 bingo tickets and strips of tickets.
//
// Generation happens in three steps per ticket:
//
//  1. [MaskGenerator] draws an occupancy pattern: 15 occupied cells, exactly 5
//     per row and between 1 and 3 per column. Column capacities are drawn
//     first, then each column's cells are assigned to the least loaded rows.
//     Dead ends are discarded and retried within a bounded attempt budget.
//  2. [Selector] picks 15 distinct symbols from the alphabet, weighting every
//     symbol by 1/(1+uses) so symbols placed less often so far are favored.
//  3. [Build] shuffles the chosen symbols into the mask's occupied cells in
//     row-major order and records each placement in the [Usage] counter.
//
// [Generator] repeats the three steps for every ticket of a [Strip], threading
// one [Usage] counter through the whole strip. Symbols may repeat across the
// tickets of a strip; they never repeat within a ticket.
//
// All randomness comes from an injected [Rand], so a fixed seed reproduces
// the same strip:
//
//	gen := ticket.NewGenerator(alphabet.Greek(), ticket.NewRand(42))
//	strip, stats, err := gen.Generate(ticket.DefaultStripSize)
package ticket
