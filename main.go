// Public domain.

package main

import "github.com/soniakeys/hg1g2/internal/hgprog"

func main() {
	hgprog.Main()
}
