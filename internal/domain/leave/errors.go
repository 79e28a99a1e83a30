package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrDocumentCorrupt      = errors.New("Stored leave requests are unreadable")
)
