// Command obb creates, inspects, and manages encrypted optical design
// containers.
package main

func main() {
	Execute()
}
