package segarena

import "fmt"

func Example() {
	a, err := Init(Config{ArenaSize: 2048})
	if err != nil {
		fmt.Println(err)
		return
	}

	p1, _ := a.Alloc(1000) // best-fit class 1024
	p2, _ := a.Alloc(100)  // best-fit class 128

	fmt.Printf("p1=%d available=%d\n", p1, a.Available())
	fmt.Printf("p2=%d available=%d\n", p2, a.Available())

	_ = a.Free(p1)
	_ = a.Free(p2)
	fmt.Printf("after free: available=%d\n", a.Available())

	// Output:
	// p1=0 available=1024
	// p2=1024 available=896
	// after free: available=2048
}
