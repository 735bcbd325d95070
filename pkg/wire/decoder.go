package wire

// Decode decodes one completed command line into a Command.
//
// Byte 0 selects the class, byte 1 is a single decimal index digit and
// byte 2 selects the operation. Class byte '1' addresses digital pins
// 10-19: it falls through to the digital class and adds 10 to the index
// digit. The operand bytes starting at 3 depend on the operation.
func Decode(line []byte) (Command, error) {
	var cmd Command
	// class, index, op and the terminator at minimum.
	if len(line) < 4 {
		return cmd, ErrLineTooShort
	}
	switch line[0] {
	case 'A':
		cmd.Class = ClassAnalog
	case 'M':
		cmd.Class = ClassMotor
	case 'S':
		cmd.Class = ClassStepper
	default:
		cmd.Class = ClassDigital
	}
	if line[1] < '0' || line[1] > '9' {
		return cmd, &BadIndexError{Char: line[1]}
	}
	cmd.Index = int(line[1] - '0')
	if line[0] == '1' {
		cmd.Index += 10
	}
	switch line[2] {
	case ':':
		cmd.Op = OpSetValue
		return decodeValue(cmd, line)
	case '-':
		cmd.Op = OpSetMode
		return decodeMode(cmd, line)
	case '?':
		cmd.Op = OpRead
		return cmd, nil
	}
	return cmd, &UnknownOpError{Op: line[2]}
}

func decodeValue(cmd Command, line []byte) (Command, error) {
	switch line[3] {
	case 'H':
		cmd.Value = High
	case 'L':
		cmd.Value = Low
	case '-':
		v, err := ParseNumber(line, 4, 16)
		if err != nil {
			return cmd, err
		}
		cmd.Value = -v
	default:
		v, err := ParseNumber(line, 3, 16)
		if err != nil {
			return cmd, err
		}
		cmd.Value = v
	}
	return cmd, nil
}

func decodeMode(cmd Command, line []byte) (Command, error) {
	switch b := line[3]; b {
	case 'I':
		cmd.Mode = ModeInput
	case 'O':
		cmd.Mode = ModeOutput
	case 'S':
		cmd.Mode = ModeBrake
	case 'R':
		cmd.Mode = ModeRelease
	case 'F':
		cmd.Mode = ModeForward
	case 'B':
		cmd.Mode = ModeBackward
	default:
		if b < '0' || b > '9' {
			return cmd, &UnknownModeError{Mode: b}
		}
		code, err := ParseNumber(line, 3, 10)
		if err != nil {
			return cmd, err
		}
		cmd.Mode = RawMode(code)
	}
	return cmd, nil
}
