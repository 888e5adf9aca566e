package domain

import "errors"

var (
	ErrNotConfigured         = errors.New("installer has not been configured")
	ErrIncompatibleStructure = errors.New("incompatible mod structure")
	ErrUserCanceled          = errors.New("user canceled")
	ErrNoReliableRoot        = errors.New("no reliable root indicator found")
	ErrMultipleModPaths      = errors.New("multiple mod paths located")
	ErrGameNotFound          = errors.New("game not found")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrUnsupportedArchive    = errors.New("unsupported archive format")
	ErrPlanNotFound          = errors.New("plan not found")
)
