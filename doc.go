/*
Package wirebench provides a small dataflow engine for benches of virtual
hardware: power supplies, switches, splitters, motherboards, screens, LEDs and
sensors, wired together with typed cables.

A Bench owns the current Document (nodes and cables), a bounded undo/redo
History through which every mutation goes, and the signal table computed by
Propagate once per tick.

Signal propagation is not topological: nodes are updated in document order,
and a node reads the values produced by its upstream nodes during the same
pass. A node stored before one of its upstream nodes therefore sees that
node's previous value, and a chain of depth d needs up to d ticks to settle.

*/
package wirebench
