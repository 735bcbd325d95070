package wire

// LineCap is the fixed capacity of the line buffer.
const LineCap = 128

// Terminator is the byte delimiting one command line.
const Terminator byte = '\r'

// Framer accumulates bytes into a bounded line buffer and delimits one
// command per terminator byte. A line reaching capacity without a
// terminator is discarded, never partially processed.
type Framer struct {
	buf [LineCap]byte
	pos int
}

// Feed consumes one byte. When b completes a frame, it returns the line
// including the terminator. The returned slice aliases the internal
// buffer and is only valid until the next call to Feed.
func (f *Framer) Feed(b byte) ([]byte, bool) {
	if b == Terminator {
		f.buf[f.pos] = b
		line := f.buf[:f.pos+1]
		f.pos = 0
		return line, true
	}
	if f.pos == LineCap-1 {
		// overflow, discard the partial line and the incoming byte.
		f.pos = 0
		return nil, false
	}
	f.buf[f.pos] = b
	f.pos++
	return nil, false
}

// Pending reports how many bytes of a partial line are buffered.
func (f *Framer) Pending() int {
	return f.pos
}

// Reset discards any partial line.
func (f *Framer) Reset() {
	f.pos = 0
}
