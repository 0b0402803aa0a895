package render

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"

	"diffgame_seeder/internal/domain"
)

var background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Blank создает белый холст 640x480
func Blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, domain.CanvasWidth, domain.CanvasHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	return img
}

// RenderOriginal рисует каждый прямоугольник случайным цветом на белом холсте.
// Заливка включает point2, сервер тоже засчитывает клик по point2 как попадание
func RenderOriginal(rects []domain.Rectangle, r *rand.Rand) *image.RGBA {
	img := Blank()
	for _, rect := range rects {
		area := FillArea(rect).Intersect(img.Bounds())
		draw.Draw(img, area, &image.Uniform{C: RandomColor(r)}, image.Point{}, draw.Src)
	}
	return img
}

// FillArea переводит прямоугольник с включительными углами в image.Rectangle
func FillArea(rect domain.Rectangle) image.Rectangle {
	return image.Rect(rect.Point1.X, rect.Point1.Y, rect.Point2.X+1, rect.Point2.Y+1)
}

// RenderModified - заготовка измененного изображения, пока просто белый холст.
// Различия на нее дорисовываются уже вне сидера
func RenderModified() *image.RGBA {
	return Blank()
}

// RandomColor каждый канал равномерно в [0,255], альфа непрозрачная
func RandomColor(r *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(r.Intn(256)),
		G: uint8(r.Intn(256)),
		B: uint8(r.Intn(256)),
		A: 255,
	}
}
