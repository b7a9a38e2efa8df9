package wordle

import "fmt"

// InvalidLengthError is returned when a guess is not exactly Cols letters.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("guess must be %d letters, got %d", Cols, e.Length)
}

// NotInDictionaryError is returned for a well-formed guess that is not an
// accepted word.
type NotInDictionaryError struct {
	Word string
}

func (e *NotInDictionaryError) Error() string {
	return fmt.Sprintf("%q is not in the word list", e.Word)
}
