// Package ui is the flowdeck terminal dashboard, built on Bubble Tea.
//
// # Screens
//
// Navigation is a three level stack:
//
//   - Environments: every environment the token can see
//   - Flows: the flows of the opened environment
//   - Flow detail: a summary line plus tabs for runs, trigger history,
//     connections and trigger metadata
//
// Every list is a gridView, the interactive wrapper around grid.Grid. It
// owns the row and column cursors and the search box; search, filter, sort
// and paging go through grid events so the same rules apply here and in the
// non-interactive "flows list" command.
//
// # Data flow
//
// Lists are never polled. A screen loads its resource the first time it is
// shown and again on R. Loads run as tea.Cmds through state.Loader, which
// allows one in-flight refresh per resource; a loadedMsg carries the cached
// entry back to Update, and only the grid bound to the same state.Key takes
// the records.
//
// Flow and run commands (run, enable, disable, delete, cancel, resubmit) go
// through flowapi.Commander. A command is refused with a warning while its
// resource is loading or while an earlier command on the same subject is
// still running. Every outcome lands in the alerts.Queue drawn above the
// main box.
//
// # Key Bindings
//
// See keys.go; "?" shows the full list grouped by purpose.
package ui
