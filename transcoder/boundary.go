package transcoder

import (
	scriptvalue "github.com/wippyai/scriptvalue"
)

type Boundary = scriptvalue.Boundary
type Constructor = scriptvalue.Constructor
type Inspector = scriptvalue.Inspector
