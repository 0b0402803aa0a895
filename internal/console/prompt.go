package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const GameCountPrompt = "How many games do you want to create? "

var ErrInvalidCount = errors.New("invalid game count")

// ReadGameCount печатает вопрос и читает одно целое число из строки ввода
func ReadGameCount(in io.Reader, out io.Writer) (int, error) {
	if _, err := io.WriteString(out, GameCountPrompt); err != nil {
		return 0, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCount, err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidCount, strings.TrimSpace(line))
	}
	return n, nil
}
