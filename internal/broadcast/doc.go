// Package broadcast fans event frames out to connected viewers.
//
// A Hub keeps the registry of viewers behind one mutex. Publish encodes a
// frame once and appends it to every registered viewer's queue while holding
// that mutex, so a viewer sees batches in publish order and a viewer added
// after Publish returns never sees that batch. Queues are unbounded and
// enqueue never blocks; the viewer's session drains its own queue.
package broadcast
