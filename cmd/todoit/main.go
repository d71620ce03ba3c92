// Command todoit is a thin command-line front end over the engine: it
// translates flags into github.com/todoit/todoit/internal/manager calls and
// renders the result. It owns no domain logic of its own.
package main

func main() {
	Execute()
}
