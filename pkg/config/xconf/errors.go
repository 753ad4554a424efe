package xconf

import "errors"

var (
	ErrEmptyPath          = errors.New("xconf: empty config path")
	ErrUnsupportedFormat  = errors.New("xconf: unsupported config format")
	ErrLoadFailed         = errors.New("xconf: failed to load config")
	ErrParseFailed        = errors.New("xconf: failed to parse config")
	ErrUnmarshalFailed    = errors.New("xconf: failed to unmarshal config")
	ErrReloadNotSupported = errors.New("xconf: reload not supported for config created from bytes")
)
