package cpu6510

// updateNZ sets the N and Z flags from a result byte, per the 6502's
// near-universal convention for data-movement and logic instructions.
func (c *CPU) updateNZ(v byte) {
	c.N = v&0x80 != 0
	c.Z = v == 0
}

// adc implements ADC. The decimal-mode correction follows the
// documented NMOS 6502 behavior (Clark's algorithm): N and V are set
// from the result after low-digit correction but before the final
// high-digit +6 adjustment, while Z is set from the plain binary sum —
// this is the 6502's quirk that the 65C02 fixed by recomputing flags
// from the final decimal result on an extra cycle (§4.2).
func (c *CPU) adc(value byte) {
	a := c.A
	var carryIn int16
	if c.C {
		carryIn = 1
	}
	if c.D {
		al := int16(a&0x0F) + int16(value&0x0F) + carryIn
		if al > 9 {
			al += 6
		}
		var ahCarry int16
		if al > 15 {
			ahCarry = 1
		}
		ah := int16(a>>4) + int16(value>>4) + ahCarry
		interim := byte(((ah & 0x0F) << 4) | (al & 0x0F))
		c.N = interim&0x80 != 0
		c.V = (a^value)&0x80 == 0 && (a^interim)&0x80 != 0
		if ah > 9 {
			ah += 6
		}
		c.C = ah > 15
		c.A = byte(((ah & 0x0F) << 4) | (al & 0x0F))
		binSum := uint16(a) + uint16(value) + uint16(carryIn)
		c.Z = byte(binSum) == 0
	} else {
		sum := uint16(a) + uint16(value) + uint16(carryIn)
		result := byte(sum)
		c.C = sum > 0xFF
		c.V = (a^value)&0x80 == 0 && (a^result)&0x80 != 0
		c.updateNZ(result)
		c.A = result
	}
}

// sbc implements SBC. In decimal mode the flags are computed exactly
// like binary subtraction (a documented NMOS quirk distinct from ADC's);
// only the stored result is decimal-corrected.
func (c *CPU) sbc(value byte) {
	a := c.A
	var carryIn int16
	if c.C {
		carryIn = 1
	}
	diff := int16(a) - int16(value) - (1 - carryIn)
	binResult := byte(diff)
	c.C = diff >= 0
	c.V = (a^value)&0x80 != 0 && (a^binResult)&0x80 != 0
	c.updateNZ(binResult)
	if c.D {
		al := int16(a&0x0F) - int16(value&0x0F) + carryIn - 1
		if al < 0 {
			al = ((al - 6) & 0x0F) - 16
		}
		ah := int16(a&0xF0) - int16(value&0xF0) + al
		if ah < 0 {
			ah -= 0x60
		}
		c.A = byte(ah)
	} else {
		c.A = binResult
	}
}

// compare implements CMP/CPX/CPY: C := reg>=value, N/Z from reg-value.
func (c *CPU) compare(reg, value byte) {
	result := reg - value
	c.C = reg >= value
	c.updateNZ(result)
}

func (c *CPU) asl(v byte) byte {
	c.C = v&0x80 != 0
	r := v << 1
	c.updateNZ(r)
	return r
}

func (c *CPU) lsr(v byte) byte {
	c.C = v&0x01 != 0
	r := v >> 1
	c.updateNZ(r)
	return r
}

func (c *CPU) rol(v byte) byte {
	carryIn := byte(0)
	if c.C {
		carryIn = 1
	}
	c.C = v&0x80 != 0
	r := (v << 1) | carryIn
	c.updateNZ(r)
	return r
}

func (c *CPU) ror(v byte) byte {
	carryIn := byte(0)
	if c.C {
		carryIn = 0x80
	}
	c.C = v&0x01 != 0
	r := (v >> 1) | carryIn
	c.updateNZ(r)
	return r
}

func (c *CPU) inc(v byte) byte {
	r := v + 1
	c.updateNZ(r)
	return r
}

func (c *CPU) dec(v byte) byte {
	r := v - 1
	c.updateNZ(r)
	return r
}

// bit implements BIT: Z from A&value, N/V from bits 7/6 of value itself.
func (c *CPU) bit(value byte) {
	c.Z = c.A&value == 0
	c.N = value&0x80 != 0
	c.V = value&0x40 != 0
}
