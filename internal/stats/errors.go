package stats

import "fmt"

// PersistenceWriteError reports that a stats record could not be read or
// written at the end of a round. The in-memory transition that triggered the
// write has already happened and is not rolled back.
type PersistenceWriteError struct {
	Game GameID
	Err  error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("persist %s stats: %v", e.Game, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error { return e.Err }
