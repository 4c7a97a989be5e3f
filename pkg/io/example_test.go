package io_test

import (
	"fmt"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/io"
)

func ExampleFormatXYZ() {
	c, _ := chain.Generate(3, 90, 0)
	text, err := io.FormatXYZ(len(c), c)
	if err != nil {
		panic(err)
	}
	fmt.Print(text)
	// Output:
	// 3
	// Generated polymer chain
	// C 0.000000 0.000000 0.000000
	// C 1.000000 0.000000 1.000000
	// C 1.000000 1.000000 2.000000
}
