package promptdown

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Structural errors
	ErrMsgEmptyDocument       = "document is empty"
	ErrMsgMissingSystemMsg    = "no system message section found"
	ErrMsgUnknownConvFormat   = "unrecognized conversation format"
	ErrMsgMalformedHeading    = "malformed section heading"
	ErrMsgDuplicateSection    = "duplicate section heading"
	ErrMsgConflictingHeadings = "document has both system and developer message sections"

	// Row errors (table format)
	ErrMsgRowCellCount = "table row has fewer than two cells"
	ErrMsgRowUnescaped = "table row cell count mismatch, check for unescaped pipes"

	// Serialization errors
	ErrMsgSerializeNilPrompt = "cannot serialize nil prompt"
	ErrMsgTableHasNewlines   = "table format cannot represent multi-line content"
	ErrMsgContentHasMarker   = "simplified format cannot represent a content line that is itself a role marker"

	// Role errors
	ErrMsgReservedRole = "the role 'system' is reserved and cannot be used for conversation messages"

	// Loader errors
	ErrMsgReadFileFailed     = "failed to read promptdown file"
	ErrMsgReadResourceFailed = "failed to read promptdown resource"
	ErrMsgWriteFileFailed    = "failed to write promptdown file"
)

// Error code constants for categorization
const (
	ErrCodeStructure = "PROMPTDOWN_STRUCTURE"
	ErrCodeRow       = "PROMPTDOWN_ROW"
	ErrCodeSerialize = "PROMPTDOWN_SERIALIZE"
	ErrCodeRole      = "PROMPTDOWN_ROLE"
	ErrCodeIO        = "PROMPTDOWN_IO"
)

// Metadata key constants
const (
	MetaKeyKind    = "kind"
	MetaKeySection = "section"
	MetaKeyLine    = "line"
	MetaKeyRow     = "row"
	MetaKeyRole    = "role"
	MetaKeyPath    = "path"
	MetaKeyFormat  = "format"
)

// Error kind metadata values
const (
	ErrKindStructure = "structure"
	ErrKindRow       = "row"
	ErrKindRole      = "role"
	ErrKindSerialize = "serialize"
	ErrKindIO        = "io"
)

// NewStructuralError creates an error for a missing or malformed section.
// Structural errors abort parsing; no partial prompt is returned.
func NewStructuralError(msg string, section string, line int) error {
	err := cuserr.NewValidationError(ErrCodeStructure, msg).
		WithMetadata(MetaKeyKind, ErrKindStructure)
	if section != "" {
		err = err.WithMetadata(MetaKeySection, section)
	}
	if line > 0 {
		err = err.WithMetadata(MetaKeyLine, strconv.Itoa(line))
	}
	return err
}

// NewMissingSystemMessageError creates the error for a document without a
// system (or developer) message section.
func NewMissingSystemMessageError() error {
	return cuserr.NewValidationError(ErrCodeStructure, ErrMsgMissingSystemMsg).
		WithMetadata(MetaKeyKind, ErrKindStructure).
		WithMetadata(MetaKeySection, HeadingSystemMessage)
}

// NewUnknownConversationFormatError creates the error for a conversation
// section whose first line matches neither the table nor simplified format.
func NewUnknownConversationFormatError(line int, text string) error {
	return cuserr.NewValidationError(ErrCodeStructure, ErrMsgUnknownConvFormat).
		WithMetadata(MetaKeyKind, ErrKindStructure).
		WithMetadata(MetaKeySection, HeadingConversation).
		WithMetadata(MetaKeyLine, strconv.Itoa(line)).
		WithMetadata(MetaKeyRow, text)
}

// NewRowFormatError creates an error describing an anomalous table row.
// Row errors are warning-level: the parser skips the row and continues.
func NewRowFormatError(msg string, line int, row string) error {
	return cuserr.NewValidationError(ErrCodeRow, msg).
		WithMetadata(MetaKeyKind, ErrKindRow).
		WithMetadata(MetaKeyLine, strconv.Itoa(line)).
		WithMetadata(MetaKeyRow, row)
}

// NewReservedRoleError creates the error for the reserved "system" role.
func NewReservedRoleError(role string) error {
	return cuserr.NewValidationError(ErrCodeRole, ErrMsgReservedRole).
		WithMetadata(MetaKeyKind, ErrKindRole).
		WithMetadata(MetaKeyRole, role)
}

// NewSerializeError creates a serialization error.
func NewSerializeError(msg string) error {
	return cuserr.NewValidationError(ErrCodeSerialize, msg).
		WithMetadata(MetaKeyKind, ErrKindSerialize)
}

// NewLoaderError creates an I/O error for file and resource loaders.
func NewLoaderError(msg string, path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeIO, msg).
		WithMetadata(MetaKeyKind, ErrKindIO).
		WithMetadata(MetaKeyPath, path)
}

// IsStructuralError reports whether err is a structural parse error.
func IsStructuralError(err error) bool {
	return hasErrorKind(err, ErrKindStructure)
}

// IsRowFormatError reports whether err is a (skippable) table row error.
func IsRowFormatError(err error) bool {
	return hasErrorKind(err, ErrKindRow)
}

// IsReservedRoleError reports whether err is a reserved-role validation error.
func IsReservedRoleError(err error) bool {
	return hasErrorKind(err, ErrKindRole)
}

// hasErrorKind checks the kind metadata on a cuserr error.
func hasErrorKind(err error, kind string) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	got, ok := customErr.GetMetadata(MetaKeyKind)
	return ok && got == kind
}

