package game

import (
	"errors"
	"fmt"
	"math/rand"

	"diffgame_seeder/internal/domain"
)

// Холст делится на сетку 4x4 квадрантов 160x120, в каждом не больше одного различия
const (
	GridColumns    = 4
	GridRows       = 4
	QuadrantWidth  = domain.CanvasWidth / GridColumns
	QuadrantHeight = domain.CanvasHeight / GridRows

	MinDifferences = 3
	MaxDifferences = 9

	MinRectWidth  = 10
	MaxRectWidth  = 150
	MinRectHeight = 10
	MaxRectHeight = 110

	// Граница "Difficile": не меньше 7 различий и не больше 15% площади холста
	HardMinDifferences = 7
	HardMaxAreaPercent = 15
)

var ErrInvalidGeometry = errors.New("invalid difference geometry")

// Quadrant - ячейка сетки (колонка, строка)
type Quadrant struct {
	Col int
	Row int
}

// QuadrantOf возвращает квадрант, в котором лежит левый верхний угол прямоугольника
func QuadrantOf(r domain.Rectangle) Quadrant {
	return Quadrant{Col: r.Point1.X / QuadrantWidth, Row: r.Point1.Y / QuadrantHeight}
}

// Bounds возвращает границы квадранта [minX, maxX] x [minY, maxY]
func (q Quadrant) Bounds() (minX, minY, maxX, maxY int) {
	return q.Col * QuadrantWidth, q.Row * QuadrantHeight, (q.Col + 1) * QuadrantWidth, (q.Row + 1) * QuadrantHeight
}

// GenerateDifferences строит от 3 до 9 прямоугольников, не больше одного на квадрант.
// Чистая функция от r: одинаковый seed дает одинаковый результат
func GenerateDifferences(r *rand.Rand) []domain.Rectangle {
	target := randInclusive(r, MinDifferences, MaxDifferences)

	cols := []int{0, 1, 2, 3}
	rows := []int{0, 1, 2, 3}
	r.Shuffle(len(cols), func(i, j int) { cols[i], cols[j] = cols[j], cols[i] })
	r.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	rects := make([]domain.Rectangle, 0, target)
	for _, col := range cols {
		for _, row := range rows {
			if len(rects) >= target {
				return rects
			}
			rects = append(rects, placeInQuadrant(r, Quadrant{Col: col, Row: row}))
		}
	}
	return rects
}

// якорь выбирается так, чтобы даже максимальный прямоугольник не вышел за квадрант
func placeInQuadrant(r *rand.Rand, q Quadrant) domain.Rectangle {
	minX, minY, maxX, maxY := q.Bounds()

	x1 := randInclusive(r, minX, maxX-MaxRectWidth)
	y1 := randInclusive(r, minY, maxY-MaxRectHeight)

	return domain.Rectangle{
		Point1: domain.Point{X: x1, Y: y1},
		Point2: domain.Point{
			X: x1 + randInclusive(r, MinRectWidth, MaxRectWidth),
			Y: y1 + randInclusive(r, MinRectHeight, MaxRectHeight),
		},
	}
}

func randInclusive(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// ValidateDifferences проверяет инварианты сгенерированной геометрии.
// Правый и нижний край может касаться границы квадранта, но не пересекать ее
func ValidateDifferences(rects []domain.Rectangle) error {
	if len(rects) < 1 || len(rects) > MaxDifferences {
		return fmt.Errorf("%w: %d differences, want 1..%d", ErrInvalidGeometry, len(rects), MaxDifferences)
	}

	used := make(map[Quadrant]int, len(rects))
	for i, rect := range rects {
		if w := rect.Width(); w < MinRectWidth || w > MaxRectWidth {
			return fmt.Errorf("%w: rectangle %d width %d out of [%d,%d]", ErrInvalidGeometry, i, w, MinRectWidth, MaxRectWidth)
		}
		if h := rect.Height(); h < MinRectHeight || h > MaxRectHeight {
			return fmt.Errorf("%w: rectangle %d height %d out of [%d,%d]", ErrInvalidGeometry, i, h, MinRectHeight, MaxRectHeight)
		}
		if rect.Point1.X < 0 || rect.Point1.Y < 0 ||
			rect.Point2.X > domain.CanvasWidth || rect.Point2.Y > domain.CanvasHeight {
			return fmt.Errorf("%w: rectangle %d outside %dx%d canvas", ErrInvalidGeometry, i, domain.CanvasWidth, domain.CanvasHeight)
		}

		q := QuadrantOf(rect)
		_, _, maxX, maxY := q.Bounds()
		if rect.Point2.X > maxX || rect.Point2.Y > maxY {
			return fmt.Errorf("%w: rectangle %d crosses quadrant (%d,%d) boundary", ErrInvalidGeometry, i, q.Col, q.Row)
		}
		if prev, ok := used[q]; ok {
			return fmt.Errorf("%w: rectangles %d and %d share quadrant (%d,%d)", ErrInvalidGeometry, prev, i, q.Col, q.Row)
		}
		used[q] = i
	}
	return nil
}

// ClassifyDifficulty - то же правило, что использует клиент при создании игры:
// много мелких различий значит сложная игра
func ClassifyDifficulty(rects []domain.Rectangle) domain.Difficulty {
	if len(rects) < HardMinDifferences {
		return domain.DifficultyEasy
	}
	area := 0
	for _, rect := range rects {
		area += rect.Area()
	}
	if area*100 <= HardMaxAreaPercent*domain.CanvasWidth*domain.CanvasHeight {
		return domain.DifficultyHard
	}
	return domain.DifficultyEasy
}

// NewGameData собирает метаданные игры из сгенерированных прямоугольников,
// по одному прямоугольнику на различие
func NewGameData(id int, rects []domain.Rectangle, difficulty domain.Difficulty) *domain.GameData {
	diffs := make([]domain.Difference, len(rects))
	for i, rect := range rects {
		diffs[i] = domain.Difference{Rectangles: []domain.Rectangle{rect}}
	}
	return &domain.GameData{
		ID:                  id,
		Title:               fmt.Sprintf("Game %d", id),
		Difficulty:          difficulty,
		NumberOfDifferences: len(rects),
		Differences:         diffs,
	}
}
