package forum

import "errors"

// Sentinel errors for the service layer. The API layer maps these to HTTP
// status codes; callers check them with errors.Is.
var (
	// ErrUnauthorized means no authenticated actor was supplied.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the actor is authenticated but not allowed to
	// perform the operation (not the owner, not a moderator).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the target entity does not exist or is deleted.
	ErrNotFound = errors.New("not found")

	// ErrInvalidVoteValue means a vote value outside {-1, 0, 1}.
	ErrInvalidVoteValue = errors.New("invalid vote value")

	// ErrConflict means a uniqueness or serialization conflict. For vote
	// submissions the caller should retry the whole operation; nothing was
	// partially applied.
	ErrConflict = errors.New("conflict")

	// ErrValidation means request data failed a domain validation rule.
	ErrValidation = errors.New("validation failed")
)
