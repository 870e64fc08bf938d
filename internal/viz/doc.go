// Package viz renders the cloth in the terminal: a braille sub-pixel canvas
// for the mesh and a bubbletea model that drives the engine live, with
// mouse-drag tearing. It consumes only the topology's read accessors; all
// coordinate translation between terminal cells and cloth space happens
// here, outside the simulation core.
package viz
