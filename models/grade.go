package models

type Grade string

const (
	GradeD Grade = "D"
	GradeC Grade = "C"
	GradeB Grade = "B"
	GradeA Grade = "A"
)

// Пороговые значения баллов для грейдов
const (
	GradeCMinPoints = 100
	GradeBMinPoints = 300
	GradeAMinPoints = 600
)

var gradeOrder = map[Grade]int{
	GradeD: 0,
	GradeC: 1,
	GradeB: 2,
	GradeA: 3,
}

func (g Grade) Order() int {
	return gradeOrder[g]
}

// AtLeast проверка допуска к задаче по минимальному грейду
func (g Grade) AtLeast(minimal Grade) bool {
	return g.Order() >= minimal.Order()
}

func GradeByPoints(points int) Grade {
	switch {
	case points >= GradeAMinPoints:
		return GradeA
	case points >= GradeBMinPoints:
		return GradeB
	case points >= GradeCMinPoints:
		return GradeC
	}
	return GradeD
}

// базовые баллы за выполнение задачи в зависимости от минимального грейда
var basePointsByGrade = map[Grade]int{
	GradeD: 10,
	GradeC: 25,
	GradeB: 50,
	GradeA: 100,
}

func BasePointsByMinGrade(minimal Grade) int {
	if points, exist := basePointsByGrade[minimal]; exist {
		return points
	}
	return basePointsByGrade[GradeD]
}
