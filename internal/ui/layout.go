package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160

	// ListPaneMinWidth is the narrowest the collection list may get.
	ListPaneMinWidth = 24
)

// Log panel limits.
const (
	// DefaultLogPanelHeight is used until the user resizes the panel.
	DefaultLogPanelHeight = 8

	// MinLogPanelHeight and MaxLogPanelHeight bound resizing.
	MinLogPanelHeight = 4
	MaxLogPanelHeight = 30

	// LogTailLines is how many trailing lines of the log file are read.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// FlashDuration is how long a status message stays in the header.
	FlashDuration = 4 * time.Second
)

// guideWelcome names the one-time popup shown after the first connect to an
// endpoint.
const guideWelcome = "welcome"
