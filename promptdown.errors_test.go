package promptdown

import (
	"errors"
	"os"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuralError_KindAndMetadata(t *testing.T) {
	err := NewStructuralError(ErrMsgMalformedHeading, HeadingConversation, 7)

	assert.True(t, IsStructuralError(err))
	assert.False(t, IsRowFormatError(err))
	assert.False(t, IsReservedRoleError(err))
	assert.Contains(t, err.Error(), ErrMsgMalformedHeading)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	section, ok := customErr.GetMetadata(MetaKeySection)
	require.True(t, ok)
	assert.Equal(t, HeadingConversation, section)
	line, ok := customErr.GetMetadata(MetaKeyLine)
	require.True(t, ok)
	assert.Equal(t, "7", line)
}

func TestStructuralError_OmitsEmptyMetadata(t *testing.T) {
	err := NewStructuralError(ErrMsgEmptyDocument, "", 0)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	_, ok := customErr.GetMetadata(MetaKeySection)
	assert.False(t, ok)
	_, ok = customErr.GetMetadata(MetaKeyLine)
	assert.False(t, ok)
}

func TestMissingSystemMessageError(t *testing.T) {
	err := NewMissingSystemMessageError()

	assert.True(t, IsStructuralError(err))
	assert.Contains(t, err.Error(), ErrMsgMissingSystemMsg)
}

func TestUnknownConversationFormatError(t *testing.T) {
	err := NewUnknownConversationFormatError(12, "not a table")

	assert.True(t, IsStructuralError(err))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	row, ok := customErr.GetMetadata(MetaKeyRow)
	require.True(t, ok)
	assert.Equal(t, "not a table", row)
}

func TestRowFormatError(t *testing.T) {
	err := NewRowFormatError(ErrMsgRowCellCount, 9, "| lonely |")

	assert.True(t, IsRowFormatError(err))
	assert.False(t, IsStructuralError(err))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	line, ok := customErr.GetMetadata(MetaKeyLine)
	require.True(t, ok)
	assert.Equal(t, "9", line)
}

func TestReservedRoleError(t *testing.T) {
	err := NewReservedRoleError("System")

	assert.True(t, IsReservedRoleError(err))
	assert.Contains(t, err.Error(), ErrMsgReservedRole)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	role, ok := customErr.GetMetadata(MetaKeyRole)
	require.True(t, ok)
	assert.Equal(t, "System", role)
}

func TestSerializeError(t *testing.T) {
	err := NewSerializeError(ErrMsgTableHasNewlines)

	assert.False(t, IsStructuralError(err))
	assert.Contains(t, err.Error(), ErrMsgTableHasNewlines)
}

func TestLoaderError_WrapsCause(t *testing.T) {
	err := NewLoaderError(ErrMsgReadFileFailed, "/no/such/file.md", os.ErrNotExist)

	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), ErrMsgReadFileFailed)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	path, ok := customErr.GetMetadata(MetaKeyPath)
	require.True(t, ok)
	assert.Equal(t, "/no/such/file.md", path)
}

func TestErrorKindChecks_NonCustomError(t *testing.T) {
	plain := errors.New("plain")
	assert.False(t, IsStructuralError(plain))
	assert.False(t, IsRowFormatError(plain))
	assert.False(t, IsReservedRoleError(plain))
	assert.False(t, IsStructuralError(nil))
}
