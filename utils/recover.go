package utils

import "fmt"

// RecoverCall runs f, turning a panic into an error after reporting it.
func RecoverCall(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			errr, ok := r.(error)
			if !ok {
				errr = fmt.Errorf("%v", r)
			}
			PrintPanic(errr)
			err = errr
		}
	}()
	err = f()
	return
}
