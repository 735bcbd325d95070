package wire

// ParseNumber parses a run of digits in the given base starting at off,
// stopping at the line terminator or the end of line. An empty run
// yields 0. Sign is resolved by the caller, never here.
func ParseNumber(line []byte, off, base int) (int, error) {
	var value int
	for i := off; i < len(line) && line[i] != Terminator; i++ {
		d, err := digitValue(line[i], base)
		if err != nil {
			return 0, err
		}
		value = value*base + d
	}
	return value, nil
}

func digitValue(b byte, base int) (int, error) {
	var d int
	switch {
	case b >= '0' && b <= '9':
		d = int(b - '0')
	case b >= 'a' && b <= 'f':
		d = int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		d = int(b-'A') + 10
	default:
		return 0, &BadDigitError{Char: b, Base: base}
	}
	if d >= base {
		return 0, &BadDigitError{Char: b, Base: base}
	}
	return d, nil
}
