package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
)

// ErrCancelled means the input stream was closed before an answer was given.
var ErrCancelled = errors.New("input cancelled")

var readPasswordFunc = term.ReadPassword // mockable

type Choice struct {
	Title string
	Value string
}

// Prompter is the interactive input every screen is built on.
type Prompter interface {
	// Select returns the Value of the chosen Choice.
	Select(message string, choices []Choice) (string, error)
	// Input re-asks until validate accepts the trimmed answer. A nil
	// validate accepts anything, including an empty answer.
	Input(message string, validate func(string) error) (string, error)
	Password(message string) (string, error)
	Confirm(message string, initial bool) (bool, error)
	// Wait blocks until Enter is pressed.
	Wait(message string) error
}

// Terminal is a line-based Prompter over an input stream.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
	screen *Screen
}

func NewTerminal(in *os.File, out io.Writer, screen *Screen) *Terminal {
	fd := int(in.Fd())
	return &Terminal{
		reader: bufio.NewReader(in),
		out:    out,
		fd:     fd,
		tty:    term.IsTerminal(fd),
		screen: screen,
	}
}

// NewReaderTerminal builds a Terminal over a plain reader; passwords are read
// as ordinary lines.
func NewReaderTerminal(in io.Reader, out io.Writer, screen *Screen) *Terminal {
	return &Terminal{
		reader: bufio.NewReader(in),
		out:    out,
		fd:     -1,
		screen: screen,
	}
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) question(message string) {
	fmt.Fprintf(t.out, "%s %s ", t.screen.color.Green("?"), t.screen.color.Bold(message))
}

func (t *Terminal) invalid(err error) {
	fmt.Fprintf(t.out, "%s %s\n", t.screen.color.Red("✖"), err.Error())
}

func (t *Terminal) Select(message string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no choices")
	}
	for {
		fmt.Fprintf(t.out, "%s %s\n", t.screen.color.Green("?"), t.screen.color.Bold(message))
		for idx, choice := range choices {
			fmt.Fprintf(t.out, "  %d) %s\n", idx+1, choice.Title)
		}
		fmt.Fprintf(t.out, "%s ", t.screen.color.Cyan("›"))
		answer, err := t.readLine()
		if err != nil {
			return "", err
		}
		selection, err := strconv.Atoi(answer)
		if err != nil || selection <= 0 || selection > len(choices) {
			t.invalid(fmt.Errorf("1-%d 사이의 번호를 입력해주세요", len(choices)))
			continue
		}
		return choices[selection-1].Value, nil
	}
}

func (t *Terminal) Input(message string, validate func(string) error) (string, error) {
	for {
		t.question(message)
		answer, err := t.readLine()
		if err != nil {
			return "", err
		}
		answer = norm.NFC.String(answer)
		if validate != nil {
			if err := validate(answer); err != nil {
				t.invalid(err)
				continue
			}
		}
		return answer, nil
	}
}

func (t *Terminal) Password(message string) (string, error) {
	t.question(message)
	if !t.tty {
		return t.readLine()
	}
	bytePassword, err := readPasswordFunc(t.fd)
	fmt.Fprintln(t.out) // ReadPassword swallows the newline
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimSpace(string(bytePassword)), nil
}

func (t *Terminal) Confirm(message string, initial bool) (bool, error) {
	hint := "(y/N)"
	if initial {
		hint = "(Y/n)"
	}
	for {
		t.question(message + " " + hint)
		answer, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return initial, nil
		case "y", "yes", "예", "네", "ㅇ":
			return true, nil
		case "n", "no", "아니오", "아니요", "ㄴ":
			return false, nil
		default:
			t.invalid(errors.New("y 또는 n을 입력해주세요"))
		}
	}
}

func (t *Terminal) Wait(message string) error {
	fmt.Fprintf(t.out, "%s ", t.screen.color.Grey(message))
	_, err := t.readLine()
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}
