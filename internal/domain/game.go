package domain

// Размеры холста, на котором рисуются различия
const (
	CanvasWidth  = 640
	CanvasHeight = 480
)

type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// прямоугольник, point1 - левый верхний угол, point2 - правый нижний
type Rectangle struct {
	Point1 Point `json:"point1" bson:"point1"`
	Point2 Point `json:"point2" bson:"point2"`
}

// Width возвращает ширину прямоугольника
func (r Rectangle) Width() int {
	return r.Point2.X - r.Point1.X
}

// Height возвращает высоту прямоугольника
func (r Rectangle) Height() int {
	return r.Point2.Y - r.Point1.Y
}

// Area площадь в пикселях
func (r Rectangle) Area() int {
	return r.Width() * r.Height()
}

// одно различие, всегда ровно один прямоугольник при генерации
type Difference struct {
	Rectangles []Rectangle `json:"rectangles" bson:"rectangles"`
}

// Сложность игры, значения совпадают с тем что ожидает клиент
type Difficulty string

const (
	DifficultyEasy Difficulty = "Facile"
	DifficultyHard Difficulty = "Difficile"
)

// Метаданные игры, пишутся в <id>.json
type GameData struct {
	ID                  int          `json:"id"`
	Title               string       `json:"title"`
	Difficulty          Difficulty   `json:"difficulty"`
	NumberOfDifferences int          `json:"numberOfDifferences"`
	Differences         []Difference `json:"differences"`
}
