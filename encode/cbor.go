package encode

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/signadot/lax/ir"
)

// encodeCBOR writes node in canonical CBOR, so map keys are sorted and
// equal documents give equal bytes.  Duplicate keys collapse as in
// ir.ToAny.
func encodeCBOR(node *ir.Node, w io.Writer) error {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	d, err := em.Marshal(ir.ToAny(node))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}
