package initchecker

import "fmt"

// CheckInit контроль порядка инициализации обработчиков: все зависимости
// должны быть созданы до регистрации Instance. Аргументы — пары
// "имя, значение", падает при непроинициализированной зависимости.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечётное число аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("CheckInit: имя зависимости должно быть строкой")
		}
		if pairs[i+1] == nil {
			panic(fmt.Sprintf("зависимость %v не инициализирована", name))
		}
	}
}
