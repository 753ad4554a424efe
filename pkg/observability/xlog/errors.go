package xlog

import "errors"

// Builder 配置错误。
var (
	ErrInvalidLevel    = errors.New("xlog: unknown level")
	ErrInvalidFormat   = errors.New("xlog: unknown format")
	ErrNilOutput       = errors.New("xlog: nil output")
	ErrEmptyFilename   = errors.New("xlog: empty rotation filename")
	ErrInvalidRotation = errors.New("xlog: invalid rotation option")
)
