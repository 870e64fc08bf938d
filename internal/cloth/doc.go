// Package cloth defines the mesh topology of the simulation: a point arena
// with stable indices, distance constraints referencing points by index, and
// the grid builder that wires them together.
//
//   - [Point]: mass node with current and previous position
//   - [Constraint]: rest-length relationship between two point indices
//   - [Topology]: single owner of one mesh's points and constraints
//
// Removal retires point indices instead of compacting the arena, which keeps
// constraint endpoint indices valid for the lifetime of the topology.
package cloth
