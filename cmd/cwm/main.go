// SPDX-License-Identifier: MPL-2.0

// Command cwm is a macOS window manager: a CLI front-end and a
// background daemon sharing the same action layer.
package main

func main() {
	Execute()
}
