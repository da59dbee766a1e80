package solana

// appendCompactU16 appends n using the compact-u16 length encoding
func appendCompactU16(buf []byte, n int) []byte {
	v := uint16(n) //nolint:gosec,G115
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}
