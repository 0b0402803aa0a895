package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"diffgame_seeder/internal/domain"

	"golang.org/x/image/bmp"
)

// Тип файла игры, имена совпадают с каталогами которые читает сервер
type FileType string

const (
	FileTypeImageJSON     FileType = "imageJson"
	FileTypeOriginalImage FileType = "originalImage"
	FileTypeModifiedImage FileType = "modifiedImage"
)

var fileExtensions = map[FileType]string{
	FileTypeImageJSON:     ".json",
	FileTypeOriginalImage: ".bmp",
	FileTypeModifiedImage: ".bmp",
}

// FileTypes все типы файлов одной игры
var FileTypes = []FileType{FileTypeImageJSON, FileTypeOriginalImage, FileTypeModifiedImage}

// отвечает за раскладку файлов игр на диске
type FileStorage struct {
	baseDir string
}

func NewFileStorage(baseDir string) *FileStorage {
	return &FileStorage{baseDir: baseDir}
}

// EnsureDirs создает три каталога, если их еще нет
func (s *FileStorage) EnsureDirs() error {
	for _, t := range FileTypes {
		if err := os.MkdirAll(s.Dir(t), 0o755); err != nil {
			return fmt.Errorf("create %s dir: %w", t, err)
		}
	}
	return nil
}

func (s *FileStorage) Dir(t FileType) string {
	return filepath.Join(s.baseDir, string(t))
}

// Path возвращает путь к файлу игры: <dir>/<id><ext>
func (s *FileStorage) Path(id int, t FileType) string {
	return filepath.Join(s.Dir(t), strconv.Itoa(id)+fileExtensions[t])
}

// WriteGameData пишет метаданные игры, существующий файл перезаписывается
func (s *FileStorage) WriteGameData(data *domain.GameData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal game %d: %w", data.ID, err)
	}
	return writeFile(s.Path(data.ID, FileTypeImageJSON), payload)
}

// ReadGameData читает метаданные игры
func (s *FileStorage) ReadGameData(id int) (*domain.GameData, error) {
	payload, err := os.ReadFile(s.Path(id, FileTypeImageJSON))
	if err != nil {
		return nil, err
	}
	var data domain.GameData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode game %d: %w", id, err)
	}
	return &data, nil
}

// WriteImage кодирует изображение в BMP
func (s *FileStorage) WriteImage(id int, t FileType, img image.Image) error {
	if t != FileTypeOriginalImage && t != FileTypeModifiedImage {
		return fmt.Errorf("write image: unsupported file type %q", t)
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode bmp for game %d: %w", id, err)
	}
	return writeFile(s.Path(id, t), buf.Bytes())
}

// ReadImage декодирует BMP игры
func (s *FileStorage) ReadImage(id int, t FileType) (image.Image, error) {
	f, err := os.Open(s.Path(id, t))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode bmp for game %d: %w", id, err)
	}
	return img, nil
}

// ValidIDs возвращает отсортированные id игр, у которых есть json
func (s *FileStorage) ValidIDs() ([]int, error) {
	entries, err := os.ReadDir(s.Dir(FileTypeImageJSON))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	ext := fileExtensions[FileTypeImageJSON]
	var ids []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ext))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func writeFile(path string, payload []byte) error {
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
