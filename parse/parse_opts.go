package parse

type parseOpts struct {
	allowDuplicateKeys bool
	trace              bool
}

type ParseOption func(*parseOpts)

// AllowDuplicateKeys turns off DuplicateKey diagnostics.  Duplicate
// properties are kept in the result either way.
func AllowDuplicateKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.allowDuplicateKeys = v }
}

// Trace logs parser decisions to stderr.  It is also enabled by setting
// LAX_DEBUG_PARSE.
func Trace(v bool) ParseOption {
	return func(o *parseOpts) { o.trace = v }
}
