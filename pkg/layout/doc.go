// Package layout assigns 2D positions to topology nodes under four
// interchangeable strategies: hierarchical layering for ownership trees,
// an iterative force simulation for dense interconnection, and circular
// and grid placements. Strategies read edges for structure only and never
// touch semantic node or edge data.
package layout
