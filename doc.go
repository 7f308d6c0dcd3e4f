// Package rebalance computes a target allocation of shares across a
// hierarchical portfolio of instruments.
//
// A portfolio is a tree of holdings: leaves are tradable instruments
// identified by a ticker, groups are named weighted collections of
// sub-holdings. Starting from a snapshot of current share counts and live
// prices, the engine runs a fixed sequence of passes over the tree:
//
//   - Valuation: computes the current value of every node, bottom-up.
//   - Restrictions: derives per-node value floors and ceilings from
//     per-leaf sell/buy locks.
//   - Weight correction: redistributes target weights among siblings so
//     restricted subtrees receive exactly their floor or ceiling value.
//   - Rebalancing: converts corrected weights into whole share counts,
//     charging commissions and blocking trades that violate restrictions
//     or the minimum trade volume.
//   - Free assets distribution: spends leftover cash on additional whole
//     shares, most underfunded holdings first.
//
// All monetary arithmetic is exact decimal; fractional shares are never
// produced, share counts are always rounded down.
//
// This package is the core of the `prc` command-line tool. Quote providers,
// report rendering and the CLI surface live in their own packages.
package rebalance
