// SPDX-License-Identifier: MPL-2.0

package main

import cmd "shipout-cli/cmd/shipout"

func main() {
	cmd.Execute()
}
