// Command krispyctl drives a KrispyLedger conversation from the terminal and
// mints bridge tokens.
package main

func main() {
	Execute()
}
