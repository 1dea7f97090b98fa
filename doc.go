// Package cashflow provides the calculation core of a personal finance
// tracker: multi-currency conversion and a forward cash-flow projection.
//
// The core functionalities include:
//   - Currency conversion: an immutable Snapshot of current and historical
//     exchange rates converts amounts between EUR, CLP, USD and UF, using EUR
//     as the pivot currency and the closest prior historical rate for dated
//     conversions.
//   - Cash-flow projection: budget categories, debts, income and one-off
//     scheduled events are projected over the next 12 months under a scenario
//     (realistic, optimistic, pessimistic) and an investment contribution
//     policy (fixed, flexible, none), with monthly compounding of invested
//     balances.
//   - Statistics and comparisons: summary figures for a projection and
//     side-by-side comparisons across scenarios or investment modes.
//
// All operations are pure functions over their inputs. Records are plain
// values supplied by the caller, who is responsible for storing them and for
// storing the snapshots returned by rate updates.
//
// This package serves as the foundational logic for the `cfp` command-line
// tool.
package cashflow
