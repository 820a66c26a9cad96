package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readers хранит один буфер на источник: иначе при вводе через pipe вторая строка теряется
var readers = map[io.Reader]*bufio.Reader{}

func reader(in io.Reader) *bufio.Reader {
	r, ok := readers[in]
	if !ok {
		r = bufio.NewReader(in)
		readers[in] = r
	}
	return r
}

// Line читает строку из stdin команды
func Line(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)

	line, err := reader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Password читает пароль без эха, если stdin - терминал; иначе обычной строкой
func Password(cmd *cobra.Command, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), label)
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return string(password), nil
	}

	return Line(cmd, label)
}

// Confirm спрашивает подтверждение; пустой ответ - отказ
func Confirm(cmd *cobra.Command, question string) (bool, error) {
	answer, err := Line(cmd, question+" [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return true, nil
	default:
		return false, nil
	}
}
