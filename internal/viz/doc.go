// Package viz draws folds in the terminal.
//
//   - [Preview]: colored block rows, one per cycle, using the plot colormap
//   - [Profile]: ASCII chart of the mean flux per phase sample
//   - [Browser]: interactive Bubble Tea model for scrolling through cycles
//
// # Key Bindings
//
//	↑/k ↓/j  - Select previous/next cycle
//	[ ]      - Page up/down
//	g G      - First/last cycle
//	t        - Cycle themes
//	q        - Quit
package viz
