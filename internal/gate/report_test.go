package gate

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Message(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "never")

	p.Message(Message{Kind: KindRegression, Text: "ERROR - Number of total_errors has increased from\n3 to 5"})

	want := "mypykaizen: ERROR - Number of total_errors has increased from\n" +
		"            3 to 5\n"
	assert.Equal(t, want, buf.String())
	assert.NoError(t, p.Err())
}

func TestPrinter_Diff(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "never")

	p.Diff([]string{"a.py:1: error: x", "b.py:2: error: y"})

	want := "mypykaizen: Differences\n" +
		"    a.py:1: error: x\n" +
		"    b.py:2: error: y\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_AutoColorPlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("CLICOLOR_FORCE", "")
	p := NewPrinter(&buf, "auto")

	p.Line(KindImproved, "No errors!")

	assert.Equal(t, "mypykaizen: No errors!\n", buf.String())
}

func TestPrinter_AlwaysColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "always")

	p.Line(KindRegression, "boom")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrinter_KeepsFirstError(t *testing.T) {
	p := NewPrinter(failingWriter{}, "never")
	p.Raw("one")
	p.Raw("two")
	assert.EqualError(t, p.Err(), "closed")
}
