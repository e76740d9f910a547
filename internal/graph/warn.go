package graph

import "fmt"

const (
	WarnUnknownTag      = "unknown_tag"
	WarnUnknownAttr     = "unknown_attr"
	WarnZeroCrew        = "zero_crew"
	WarnEmptyChoice     = "empty_choice"
	WarnChoicesAndFight = "choices_and_fight"
)

// Warning is a recoverable input irregularity. Warnings are collected
// during the build and surfaced together once it completes.
type Warning struct {
	Code    string
	Message string
}

func warnf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
