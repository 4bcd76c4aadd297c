package errors

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	e := New("sample error message")
	if e == nil {
		t.Fatalf("expected non-nil error but got nil")
	}

	match, err := regexp.MatchString(`^sample error message: at .*TestNewError`, e.Error())
	if err != nil {
		t.Fatal(err)
	}
	if !match {
		t.Errorf("expected %q to carry the message and the caller", e.Error())
	}
}

func TestNewEmbeddedError(t *testing.T) {
	errOne := New("sample error message one")
	errTwo := Wrap(errOne, "sample error message two")

	er := errors.Unwrap(errTwo)
	if er != errOne {
		t.Fatalf("expected %v to be equal to %v", er, errOne)
	}
	assert.Contains(t, errTwo.Error(), "caused by: sample error message one")
}

func TestErrorf(t *testing.T) {
	sentinel := errors.New("connection refused")
	err := Errorf("probe %s: %w", "style.css", sentinel)

	assert.True(t, Is(err, sentinel))
	assert.Contains(t, err.Error(), "probe style.css: connection refused")
	assert.NotContains(t, err.Error(), "caused by")
}

func TestCause(t *testing.T) {
	transport := errors.New(`Get "http://127.0.0.1:1/index.html": dial tcp: connection refused`)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "foreign error is returned as is",
			err:  transport,
			want: transport.Error(),
		},
		{
			name: "wrapped twice",
			err:  Wrap(Wrap(transport, `url is invalid`), `failed to fetch page`),
			want: transport.Error(),
		},
		{
			name: "located root keeps only its message",
			err:  Wrap(New(`HTTP Error 404: Not Found`), `failed to fetch page`),
			want: `HTTP Error 404: Not Found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cause(tt.err).Error())
		})
	}
}

type statusErr struct{ code int }

func (s statusErr) Error() string { return "status" }

func TestAs(t *testing.T) {
	err := Wrap(statusErr{code: 404}, "probe failed")

	var target statusErr
	if assert.True(t, As(err, &target)) {
		assert.Equal(t, 404, target.code)
	}
}

func TestFilePath(t *testing.T) {
	path := filePath()

	if path == "" {
		t.Fatalf("expected non-empty string but got empty string")
	}

	pattern := `^at testing.tRunner.*`
	match, err := regexp.Match(pattern, []byte(path))
	if err != nil {
		t.Fatal(err)
	}

	if !match {
		t.Fatalf("expected %q to match %q", path, pattern)
	}
}
