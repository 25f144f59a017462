package instruction

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmpty         = errors.New("empty instruction data")
	ErrUnknownTag    = errors.New("unknown instruction tag")
	ErrTruncated     = errors.New("instruction data truncated")
	ErrTrailingBytes = errors.New("unexpected bytes after instruction")
)

// Marshal encodes ix. It panics if a byte vector is longer than
// math.MaxUint32, which no ledger transaction can carry.
func Marshal(ix Instruction) []byte {
	switch ix := ix.(type) {
	case Echo:
		return appendBytes([]byte{byte(TagEcho)}, ix.Data)
	case *Echo:
		return Marshal(*ix)
	case InitializeAuthorizedEcho:
		buf := []byte{byte(TagInitializeAuthorizedEcho)}
		buf = binary.LittleEndian.AppendUint64(buf, ix.BufferSeed)
		return binary.LittleEndian.AppendUint64(buf, ix.BufferSize)
	case *InitializeAuthorizedEcho:
		return Marshal(*ix)
	case AuthorizedEcho:
		return appendBytes([]byte{byte(TagAuthorizedEcho)}, ix.Data)
	case *AuthorizedEcho:
		return Marshal(*ix)
	case InitializeVendingMachineEcho:
		buf := []byte{byte(TagInitializeVendingMachineEcho)}
		buf = binary.LittleEndian.AppendUint64(buf, ix.Price)
		return binary.LittleEndian.AppendUint64(buf, ix.BufferSize)
	case *InitializeVendingMachineEcho:
		return Marshal(*ix)
	case VendingMachineEcho:
		return appendBytes([]byte{byte(TagVendingMachineEcho)}, ix.Data)
	case *VendingMachineEcho:
		return Marshal(*ix)
	default:
		panic(fmt.Sprintf("unknown instruction type %T", ix))
	}
}

func appendBytes(buf []byte, data []byte) []byte {
	if uint64(len(data)) > math.MaxUint32 {
		panic("instruction data exceeds 4 GiB")
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// Unmarshal decodes data into exactly one instruction. The whole input must
// be consumed.
func Unmarshal(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	d := decoder{buf: data[1:]}
	var ix Instruction
	switch tag := Tag(data[0]); tag {
	case TagEcho:
		ix = Echo{Data: d.bytes()}
	case TagInitializeAuthorizedEcho:
		ix = InitializeAuthorizedEcho{BufferSeed: d.uint64(), BufferSize: d.uint64()}
	case TagAuthorizedEcho:
		ix = AuthorizedEcho{Data: d.bytes()}
	case TagInitializeVendingMachineEcho:
		ix = InitializeVendingMachineEcho{Price: d.uint64(), BufferSize: d.uint64()}
	case TagVendingMachineEcho:
		ix = VendingMachineEcho{Data: d.bytes()}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, uint8(tag))
	}
	if d.err != nil {
		return nil, fmt.Errorf("%s: %w", Tag(data[0]), d.err)
	}
	if len(d.buf) != 0 {
		return nil, fmt.Errorf("%w: %d bytes after %s", ErrTrailingBytes, len(d.buf), Tag(data[0]))
	}
	return ix, nil
}

// decoder reads little-endian fields; the first failure sticks.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) take(n uint64) []byte {
	if d.err != nil {
		return nil
	}
	if uint64(len(d.buf)) < n {
		d.err = fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, len(d.buf))
		return nil
	}
	b := d.buf[:n]
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) uint64() uint64 {
	b := d.take(8)
	if d.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *decoder) bytes() []byte {
	lenBytes := d.take(4)
	if d.err != nil {
		return nil
	}
	b := d.take(uint64(binary.LittleEndian.Uint32(lenBytes)))
	if d.err != nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
