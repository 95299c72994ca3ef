package domain

// Zero overwrites secret material (derived keys, password copies, decrypted
// plaintext) in place. Safe to call on nil.
func Zero(b []byte) {
	clear(b)
}

// ZeroAll zeroes every slice passed to it.
func ZeroAll(bs ...[]byte) {
	for _, b := range bs {
		clear(b)
	}
}
