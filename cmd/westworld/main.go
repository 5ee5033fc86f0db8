// Command westworld runs Miner Bob and his partner Elsa, two agents driven by
// stack-based state machines.
package main

func main() {
	Execute()
}
