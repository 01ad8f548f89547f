package application

// RequestContext carries mutable per-request diagnostic fields (request id,
// which optional score fields were supplied, how many client ids were
// processed). Handlers write into it; the transport logs it. It is part of
// the handler contract, not a convenience.
type RequestContext map[string]any
