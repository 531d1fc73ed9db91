// Package types defines the core types shared across picsort.
// This includes the SourceRecord produced by discovery, the Move unit
// that flows from planning into execution, and the Report returned to
// the command layer.
package types
