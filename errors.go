package scenedit

import "errors"

var (
	// ErrNilCommand indicates Execute received a nil command.
	ErrNilCommand = errors.New("scenedit: nil command")
	// ErrEntityNotFound signals an operation against an id with no live entity.
	ErrEntityNotFound = errors.New("scenedit: entity not found")
	// ErrDeleteRoot indicates an attempt to delete the permanent scene root.
	ErrDeleteRoot = errors.New("scenedit: cannot delete scene root")
	// ErrParentNotFound signals a command naming a parent that does not exist.
	ErrParentNotFound = errors.New("scenedit: parent entity not found")
	// ErrMissingTransform signals a transform edit on an entity without one.
	ErrMissingTransform = errors.New("scenedit: entity has no transform")
)
