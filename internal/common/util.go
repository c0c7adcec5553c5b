package common

// WipeByteArray overwrites the buffer with zeros so a password does not
// linger in memory after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
