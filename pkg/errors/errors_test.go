package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrToolNotFound, "brew not on PATH")
	assert.Equal(t, ErrToolNotFound, err.Code)
	assert.Equal(t, "[TOOL_NOT_FOUND] brew not on PATH", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrInstallFailed, "formula %q failed", "wget")
	assert.Equal(t, `[INSTALL_FAILED] formula "wget" failed`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(cause, ErrCheckoutFailed, "checkout main")

	assert.Equal(t, "[CHECKOUT_FAILED] checkout main: exit status 1", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "never happens"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "never %s", "happens"))
}

func TestIsMatchesOnCode(t *testing.T) {
	err := Newf(ErrCheckoutConflict, "file %s would be overwritten", ".zshrc")
	wrapped := fmt.Errorf("stage dotfiles: %w", err)

	assert.True(t, errors.Is(wrapped, New(ErrCheckoutConflict, "")))
	assert.False(t, errors.Is(wrapped, New(ErrCloneFailed, "")))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrPermission, "chsh rejected")
	assert.True(t, IsErrorCode(err, ErrPermission))
	assert.False(t, IsErrorCode(err, ErrShellRegistry))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrPermission))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrRunLocked, GetErrorCode(New(ErrRunLocked, "held")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrInstallFailed, "install failed").WithDetail("formula", "wget")
	require.NotNil(t, err.Details)
	assert.Equal(t, "wget", err.Details["formula"])
}
