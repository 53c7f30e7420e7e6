// Package render draws river figures to image files.
//
// A [Figure] carries the cycle-by-phase grid, its axis ticks, a colormap
// name and the (vmin, vmax) display bounds. [Heatmap] is the [Renderer] used
// by the CLI: it draws the grid with gonum/plot and writes PNG, with a
// colorbar panel to the right of the heatmap.
//
// Colormaps are looked up by name with [LookupColormap]; a trailing "_r"
// reverses any of them.
package render
