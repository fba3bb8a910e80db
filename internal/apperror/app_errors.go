package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNoActiveGame   = errors.New("no active game")
	ErrLoadAborted    = errors.New("could not load saved game")
	ErrNoFileSelected = errors.New("no save file selected")
	ErrInputClosed    = errors.New("input closed")
)
