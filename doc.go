// Package idxwatch provides the core logic for tracking IDX (Indonesia
// Stock Exchange) market data over user-defined watchlists and portfolios.
//
// The core functionalities include:
//   - Symbol translation between IDX stock codes and the quote provider's
//     symbol convention, with index symbols passing through unchanged.
//   - A volatile quote cache holding the most recent quote per symbol,
//     replaced wholesale on each refresh with a last-known-value policy for
//     symbols absent from a response.
//   - Named collection management: multiple watchlists and multiple
//     portfolios, each an ordered set with an active pointer, persisted to a
//     JSON configuration file with migration from the legacy flat layout.
//   - A view pipeline deriving filtered and sorted projections of the active
//     collection, and a selection tracker keeping the cursor anchored to the
//     same underlying item across recomputations.
//   - Price alerts, CSV/JSON export, and derived holding metrics (value,
//     cost basis, profit and loss).
//
// This package serves as the foundational logic for the `idxw` command-line
// tool; network access to the quote provider lives in the yahoo subpackage.
package idxwatch
