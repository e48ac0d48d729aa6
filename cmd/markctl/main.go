// Command markctl decodes markable references and inspects the lock-free
// list nodes they point at inside a memory image.
package main

func main() {
	execute()
}
