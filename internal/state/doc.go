// Package state holds the picker's record set, filter query and selection.
//
// # Overview
//
// A Controller is the single owner of everything the UI renders: the fetch
// phase, the fetched skips, the filter query and the selected skip. All
// transitions are plain method calls; the Bubble Tea update loop is the
// only caller, so no locking is involved.
//
// # Fetch Lifecycle
//
//	idle ──BeginLoad──→ loading ──Complete(records, nil)──→ ready
//	                           └─Complete(nil, err)──────→ failed
//
// A controller issues one fetch. BeginLoad outside idle returns
// ErrLoadStarted; Complete outside loading returns ErrNotLoading. There is
// no way back from failed: recovering means building a new Controller,
// which is what the UI's reload key does.
//
// # Filtering
//
// Filter is a pure function. A skip is visible when the decimal string of
// its size contains the query, ignoring case. The empty query keeps every
// skip. Input order is preserved and nothing is re-sorted:
//
//	Filter([4yd, 8yd, 18yd], "8")  → [8yd, 18yd]
//	Filter([4yd, 8yd, 18yd], "")   → [4yd, 8yd, 18yd]
//	Filter([4yd, 8yd, 18yd], "99") → []
//
// Visible is recomputed on every call; the lists are small.
//
// # Selection
//
// Select(id) toggles: selecting a different skip replaces the selection,
// selecting the selected skip clears it. Deselect always clears. The
// selection is independent of the filter: a skip stays selected while the
// query hides it, and changing the query never changes the selection.
//
// Selecting an id that is not in the current record set (including any
// select before the fetch succeeded) fails fast with
// *InvalidSelectionError and leaves the selection unchanged.
//
// # Snapshots
//
// Snapshot copies the record slices and the selected skip so the renderer
// can hold on to it without seeing later transitions.
package state
