// Command admit decides whether media files should be imported into a
// movie or music library.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
