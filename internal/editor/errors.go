package editor

import "errors"

var errIDSpace = errors.New("could not mint a unique statement id")
