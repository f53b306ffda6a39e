package main

import "github.com/oshokin/semver-bumper/cmd/semver-bumper/cmd"

func main() {
	cmd.Execute()
}
