package types

import "github.com/ZanzyTHEbar/errbuilder-go"

// ErrorKind classifies an installation failure.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindResolution    ErrorKind = "resolution"
	KindAcquisition   ErrorKind = "acquisition"
	KindPatch         ErrorKind = "patch"
	KindPlacement     ErrorKind = "placement"
	KindInternal      ErrorKind = "internal"
)

// Each kind is carried by exactly one errbuilder code.
var (
	CodeConfiguration = errbuilder.CodeInvalidArgument
	CodeResolution    = errbuilder.CodeNotFound
	CodeAcquisition   = errbuilder.CodeUnavailable
	CodePatch         = errbuilder.CodeAborted
	CodePlacement     = errbuilder.CodeFailedPrecondition
)

// KindOf recovers the ErrorKind of an error built with one of the codes above.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	switch errbuilder.CodeOf(err) {
	case CodeConfiguration:
		return KindConfiguration
	case CodeResolution:
		return KindResolution
	case CodeAcquisition:
		return KindAcquisition
	case CodePatch:
		return KindPatch
	case CodePlacement:
		return KindPlacement
	default:
		return KindInternal
	}
}
