package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/lax/encode"
	"github.com/signadot/lax/ir"
)

// Logf writes a formatted message to stderr.  *ir.Node arguments are
// rendered in lax flow style.
func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok || x == nil {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(x, buf, encode.EncodeFlow(true)); err != nil {
			args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
			continue
		}
		args[i] = string(bytes.TrimSpace(buf.Bytes()))
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
