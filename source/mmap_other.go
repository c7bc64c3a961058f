//go:build !unix

package source

import "os"

func mapFile(_ *os.File, _ int) ([]byte, bool) {
	return nil, false
}

func unmapFile(_ []byte) error {
	return nil
}
