// Package notify delivers batches of changed paths to subscribers.
//
// A [Hub] maps each change-set to its subscribers. Delivery happens when
// the propagation engine broadcasts a change-set that gained new paths.
// Every batch a subscriber sees is the full cumulative dirty state of the
// change-set at delivery time, not a diff.
//
// Two consumption styles are offered:
//
//   - push: [Hub.Subscribe] registers a callback invoked synchronously on
//     every broadcast;
//   - pull: [Hub.Watch] returns a [Watcher] whose Next call returns the
//     most recent undelivered batch, suspending when none is pending.
//
// A Watcher holds only the single most recent undelivered batch. A new
// broadcast overwrites an unconsumed one; no unbounded buffering exists.
package notify
