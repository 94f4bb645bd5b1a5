package game

import "time"

// Options configures a Game at construction time.
type Options struct {
	Seed        int64
	OutputDir   string        // Telemetry directory; empty disables file output
	ExportDir   string        // PNG export directory; empty disables export
	Headless    bool          // Skip texture setup; drive with RunHeadless
	AutoAdvance time.Duration // Viewer advances on its own after this long; 0 waits for input
}
