package main

import "github.com/ValentinKolb/mrcli/cmd"

func main() {
	cmd.Execute()
}
