package entrycmd

import "errors"

var errResolverRequired = errors.New("entrycmd: content resolver is required")
