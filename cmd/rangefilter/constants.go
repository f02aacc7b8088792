package main

// Filter defaults, matching the ERS preset of the library
const (
	defaultSensor     = "ers"
	defaultNLMean     = 15
	defaultThreshold  = 5.0
	defaultAlpha      = 0.75
	defaultOversample = 2
)

// Window command defaults
const (
	defaultWindowPixels = 64
)

// Sample formats of raw block files
const (
	formatCpxFloat32 = "cpxfloat32"
	formatCpxInt16   = "cpxint16"
)

// Report formats
const (
	reportYAML  = "yaml"
	reportTable = "table"
)

// Unit conversion
const (
	hzPerMHz = 1e6
)

// Table layout
const (
	tabMinWidth = 0
	tabWidth    = 8
	tabPadding  = 2
)

const envPrefix = "RANGEFILTER"
