package multierr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type errString string

func (e errString) Error() string {
	return string(e)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		errs Error
		want string
	}{
		{name: "empty", want: "<nil>"},
		{name: "single", errs: Error{errString("a")}, want: "a"},
		{name: "multiple", errs: Error{errString("a"), errString("b")}, want: "2 errors occurred:\n\t* a\n\t* b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errs.Error())
		})
	}
}

func TestError_Append(t *testing.T) {
	assert := assert.New(t)
	var e Error
	e.Append(nil)
	assert.Nil(e)

	e.Append(errString("a"))
	e.Append(Error{errString("b"), errString("c")})
	assert.Equal(Error{errString("a"), errString("b"), errString("c")}, e)

	var nilPtr *Error
	nilPtr.Append(errString("ignored"))
}

func TestAppend(t *testing.T) {
	assert := assert.New(t)
	first := Error{errString("a")}

	got := Append(first, errString("b"))
	assert.Equal(Error{errString("a"), errString("b")}, got)
	assert.Len(first, 1, "Append does not modify its arguments")

	assert.Nil(Append(nil, nil))
	assert.Equal(Error{errString("b")}, Append(nil, errString("b")))
}

func TestError_ErrOrNil(t *testing.T) {
	assert := assert.New(t)
	var e Error
	assert.NoError(e.ErrOrNil())
	assert.NoError(Error{}.ErrOrNil())

	single := errString("a")
	assert.Equal(single, Error{single}.ErrOrNil())

	multi := Error{errString("a"), errString("b")}
	assert.Equal(multi, multi.ErrOrNil())
}

func TestError_IsAs(t *testing.T) {
	assert := assert.New(t)
	sentinel := errors.New("sentinel")
	e := Error{errString("a"), errors.Wrap(sentinel, "wrapped")}

	assert.True(errors.Is(e, sentinel))
	assert.False(errors.Is(e, errors.New("other")))

	var target errString
	assert.True(errors.As(e, &target))
	assert.Equal(errString("a"), target)
}
