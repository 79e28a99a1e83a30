package directory

import "errors"

var (
	ErrAdminPrivilegeRequired = errors.New("Caller is not admin")
	ErrSelfDelete             = errors.New("Cannot delete your own account")
	ErrTargetNotFound         = errors.New("Target user not found")
	// ErrPartialDelete marks the documented inconsistent state where the auth
	// store delete succeeded but the directory delete did not. No automatic
	// compensation; a reconciliation job has to clean these up.
	ErrPartialDelete = errors.New("Directory delete failed after auth store delete")
)
