package domain

import (
	"errors"
	"fmt"
)

// ErrUnresolved is the parent of every lookup failure against a vocabulary.
var ErrUnresolved = errors.New("unresolved reference")

var (
	ErrUnknownWord = fmt.Errorf("%w: unknown word", ErrUnresolved)
	ErrUnknownID   = fmt.Errorf("%w: unknown id", ErrUnresolved)
	ErrOutOfRange  = fmt.Errorf("%w: index out of range", ErrUnresolved)
)

var (
	ErrUnknownEngine     = errors.New("unknown tokenizer engine")
	ErrUnknownNormalizer = errors.New("unknown normalizer")
	ErrInvalidWorkers    = errors.New("invalid worker count")
	ErrInvalidThreshold  = errors.New("invalid document frequency threshold")
)

// ErrVocabularyNotFound is returned by stores when nothing is saved under a name.
var ErrVocabularyNotFound = errors.New("vocabulary not found")
