// SPDX-License-Identifier: MPL-2.0

package main

import cmd "toil-cli/cmd/toil"

func main() {
	cmd.Execute()
}
