// Package scheduler decides which ready task runs next.
//
// Ready tasks are identified by their registration position. The queue
// always yields the lowest position first, so that among tasks whose
// dependencies are all satisfied the one registered earliest wins. This makes
// execution order a pure function of the registry contents.
package scheduler
