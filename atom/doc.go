// Package atom implements the leaf primitives of the modra kernel.
//
// Atoms have no dependency on any other kernel part. The package
// provides the state Cell, the event Bus, the lifecycle hook table,
// the Guard validation rules and small functional composition helpers
// that the molecule layer (store, module, pipeline) is assembled from.
package atom
