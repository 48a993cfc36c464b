package main

import "c64emu/internal/charset"

func decodeCharset(raw []byte) ([]byte, error) {
	return charset.DecodeROM(raw)
}
