package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		ErrBase := New("base error")
		assert.Equal(t, "base error", ErrBase.Error())
		assert.ErrorIs(t, ErrBase, ErrBase)

		ErrFirstLevel := ErrBase.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBase)

		ErrOther := New("other error")
		ErrOtherMsg := ErrOther.Msg("other error msg")
		wrapped := ErrFirstLevel.Err(ErrOtherMsg)
		assert.Equal(t, "first level", wrapped.Error())
		assert.ErrorIs(t, wrapped, ErrBase)
		assert.ErrorIs(t, wrapped, ErrFirstLevel)
		assert.ErrorIs(t, wrapped, ErrOther)
		assert.ErrorIs(t, wrapped, ErrOtherMsg)

		err := errors.New("driver failure")
		wrapped = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", wrapped.Error())
		assert.ErrorIs(t, wrapped, ErrBase)
		assert.ErrorIs(t, wrapped, err)

		goErr := fmt.Errorf("go error")
		assert.ErrorIs(t, ErrFirstLevel.Err(goErr), goErr)
		assert.NotErrorIs(t, ErrBase, ErrFirstLevel)
	})

	t.Run("status and kind are inherited", func(t *testing.T) {
		ErrStorage := New("storage error").SetStatusCode(http.StatusInternalServerError).SetKind("StorageError")
		ErrConstraint := ErrStorage.New("constraint violation").SetStatusCode(http.StatusBadRequest).SetKind("ConstraintViolation")

		assert.Equal(t, http.StatusInternalServerError, ErrStorage.Msg("x").StatusCode())
		assert.Equal(t, "StorageError", ErrStorage.Err(errors.New("y")).Kind())
		assert.Equal(t, http.StatusBadRequest, ErrConstraint.Msg("too long").StatusCode())
		assert.Equal(t, "ConstraintViolation", ErrConstraint.Msg("too long").Kind())
		assert.ErrorIs(t, ErrConstraint.Msg("too long"), ErrStorage)

		// setters copy
		assert.Equal(t, "StorageError", ErrStorage.Kind())
		assert.Equal(t, http.StatusInternalServerError, ErrStorage.StatusCode())
	})

	t.Run("expanded message", func(t *testing.T) {
		ErrParse := New("unable to parse request").SetExpandError(true)
		err := ErrParse.Err(errors.New("unexpected EOF"))
		assert.Equal(t, "unable to parse request", err.Error())
		assert.Equal(t, "unable to parse request: unexpected EOF", err.ErrorAll())

		quiet := New("quiet").Err(errors.New("hidden"))
		assert.Equal(t, "quiet", quiet.ErrorAll())
	})
}
