package cpu

// Flag is the bit index of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flag returns true if the given flag is set.
func (r *Registers) Flag(flag Flag) bool {
	return r.af&(1<<flag) != 0
}

// SetFlag sets or clears the given flag, leaving the other
// flags untouched.
func (r *Registers) SetFlag(flag Flag, set bool) {
	if set {
		r.af |= 1 << flag
	} else {
		r.af &^= 1 << flag
	}
}

func (r *Registers) FlagZ() bool { return r.Flag(FlagZero) }
func (r *Registers) SetFlagZ(v bool) { r.SetFlag(FlagZero, v) }
func (r *Registers) FlagN() bool { return r.Flag(FlagSubtract) }
func (r *Registers) SetFlagN(v bool) { r.SetFlag(FlagSubtract, v) }
func (r *Registers) FlagH() bool { return r.Flag(FlagHalfCarry) }
func (r *Registers) SetFlagH(v bool) { r.SetFlag(FlagHalfCarry, v) }
func (r *Registers) FlagC() bool { return r.Flag(FlagCarry) }
func (r *Registers) SetFlagC(v bool) { r.SetFlag(FlagCarry, v) }

// setFlags sets all four flags at once.
func (r *Registers) setFlags(z, n, h, c bool) {
	r.SetFlagZ(z)
	r.SetFlagN(n)
	r.SetFlagH(h)
	r.SetFlagC(c)
}
