package bingopdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyTopic       = errors.New("topic cannot be empty")
	ErrInvalidGrid      = errors.New("invalid grid shape")
	ErrInvalidCardCount = errors.New("invalid card count")
	ErrInvalidPoolSize  = errors.New("invalid pool size")
	ErrPoolTooSmall     = errors.New("pool too small for grid")
	ErrNoProvider       = errors.New("no content provider configured")
	ErrContentProvider  = errors.New("content generation failed")
	ErrSubjectDetect    = errors.New("subject detection failed")
	ErrCardRender       = errors.New("card template rendering failed")
	ErrTableRender      = errors.New("answer table rendering failed")
	ErrPDFCompose       = errors.New("PDF composition failed")

	// Browser snapshot errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSnapshot       = errors.New("element snapshot failed")
)
