package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewReaderTerminal(strings.NewReader(input), out, NewScreen(out)), out
}

var choices = []Choice{
	{Title: "신청하기", Value: "OK"},
	{Title: "취소하기", Value: "NO"},
	{Title: "돌아가기", Value: "back"},
}

func TestTerminal_Select(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "first", input: "1\n", want: "OK"},
		{name: "last", input: "3\n", want: "back"},
		{name: "retry after garbage", input: "x\n0\n4\n2\n", want: "NO"},
		{name: "eof", input: "", wantErr: ErrCancelled},
		{name: "eof after garbage", input: "9\n", wantErr: ErrCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(tt.input)
			got, err := term.Select("원하는 작업을 선택하세요:", choices)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Select() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminal_InputValidates(t *testing.T) {
	term, out := newTestTerminal("\n  \nhello\n")
	got, err := term.Input("사유:", func(v string) error {
		if v == "" {
			return errors.New("사유를 입력해주세요")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Input() unexpected error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Input() = %q, want hello", got)
	}
	if strings.Count(out.String(), "사유를 입력해주세요") != 2 {
		t.Errorf("expected two validation messages, got output %q", out.String())
	}
}

func TestTerminal_InputNormalizesHangul(t *testing.T) {
	decomposed := "\u1112\u1161\u11ab" // 한 as conjoining jamo
	term, _ := newTestTerminal(decomposed + "\n")
	got, err := term.Input("사유:", nil)
	if err != nil {
		t.Fatalf("Input() unexpected error = %v", err)
	}
	if got != "\uD55C" {
		t.Errorf("Input() = %q, want composed 한", got)
	}
}

func TestTerminal_InputEmptyAllowedWithoutValidator(t *testing.T) {
	term, _ := newTestTerminal("\n")
	got, err := term.Input("아이디:", nil)
	if err != nil || got != "" {
		t.Errorf("Input() = %q, %v; want empty answer", got, err)
	}
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		input   string
		initial bool
		want    bool
	}{
		{input: "\n", initial: true, want: true},
		{input: "\n", initial: false, want: false},
		{input: "y\n", want: true},
		{input: "N\n", initial: true, want: false},
		{input: "maybe\n예\n", want: true},
	}
	for _, tt := range tests {
		term, _ := newTestTerminal(tt.input)
		got, err := term.Confirm("저장할까요?", tt.initial)
		if err != nil {
			t.Fatalf("Confirm(%q) unexpected error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTerminal_Password(t *testing.T) {
	term, _ := newTestTerminal("")
	term.tty = true
	defer func(orig func(int) ([]byte, error)) { readPasswordFunc = orig }(readPasswordFunc)
	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte("secret \n"), nil
	}
	got, err := term.Password("비밀번호:")
	if err != nil || got != "secret" {
		t.Errorf("Password() = %q, %v; want secret", got, err)
	}

	plain, _ := newTestTerminal("piped\n")
	got, err = plain.Password("비밀번호:")
	if err != nil || got != "piped" {
		t.Errorf("Password() without tty = %q, %v; want piped", got, err)
	}
}

func TestTerminal_Wait(t *testing.T) {
	term, _ := newTestTerminal("")
	if err := term.Wait("Enter를 눌러 계속..."); err != nil {
		t.Errorf("Wait() on closed input error = %v", err)
	}
}
