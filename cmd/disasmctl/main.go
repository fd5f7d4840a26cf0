// Command disasmctl prints chunk trees and listing windows from the command
// line.
package main

func main() {
	execute()
}
