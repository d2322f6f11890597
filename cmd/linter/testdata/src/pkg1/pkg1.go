package pkg

import (
	"log"
	"os"
)

// panic - детектит.
func FuncWithPanic() {
	panic("ошибка") // want "use of builtin panic is discouraged"
}

// log.Fatal - детектит.
func FuncWithFatal() {
	log.Fatal("вне main.main") // want `call to log.Fatal terminates the process outside main.main`
}

// log.Panicf - детектит.
func FuncWithLogPanic(reason string) {
	log.Panicf("report failed: %s", reason) // want `call to log.Panicf terminates the process outside main.main`
}

// os.Exit - детектит.
func FuncWithExit() {
	os.Exit(1) // want `call to os.Exit terminates the process outside main.main`
}

var onInit = func() {
	os.Exit(2) // want `call to os.Exit terminates the process outside main.main`
}

// log.Print - всё ГУДчи.
func FuncAllowed() {
	log.Println("ОК")
}

type reporter struct{}

// Свой метод Exit - не трогаем.
func (reporter) Exit(code int) {}

func FuncWithOwnExit() {
	reporter{}.Exit(1)
}
