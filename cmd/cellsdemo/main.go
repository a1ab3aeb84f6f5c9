// Command cellsdemo is a terminal analogue of the teacher's browser-counter
// example: a stored cell, a computed cell derived from it, and a trigger
// that prints whenever the computed result needs a refresh.
package main

import (
	"fmt"

	"github.com/fenwicklabs/cells"
)

func main() {
	count := cells.NewCell(0)

	doubled := cells.NewComputed(func() int {
		return count.Read() * 2
	})

	invoke, lt := cells.NewTrigger(func() {
		fmt.Printf("count=%d doubled=%d\n", count.Read(), doubled.Read())
	}, func() {
		fmt.Println("(stale, run invoke() again to refresh)")
	})
	defer lt.Done()

	invoke()

	for i := 1; i <= 3; i++ {
		count.Write(count.Read() + i)
		invoke()
	}
}
