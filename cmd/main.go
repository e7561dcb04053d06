package main

import "github.com/m04kA/SMC-ParkingService/cmd/command"

func main() {
	command.Execute()
}
