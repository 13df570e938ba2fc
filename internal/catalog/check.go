// internal/catalog/check.go
package catalog

import (
	"os"

	"github.com/pkg/errors"

	"refseek/internal/engine"
)

// CheckPath verifies that path exists, is readable and is not empty. what
// names the input in the error message ("genome file", "database directory").
func CheckPath(path, what string) error {
	st, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return errors.Wrapf(engine.ErrInputUnavailable, "%s %s is not readable", what, path)
	case os.IsPermission(err):
		return errors.Wrapf(engine.ErrInputUnavailable, "%s %s is not accessible (permission)", what, path)
	case err != nil:
		return errors.Wrapf(engine.ErrInputUnavailable, "%s %s: %v", what, path, err)
	}

	if st.IsDir() {
		ents, err := os.ReadDir(path)
		if err != nil {
			return errors.Wrapf(engine.ErrInputUnavailable, "%s %s is not accessible (permission)", what, path)
		}
		if len(ents) == 0 {
			return errors.Wrapf(engine.ErrInputUnavailable, "%s %s is empty", what, path)
		}
		return nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(engine.ErrInputUnavailable, "%s %s is not accessible (permission)", what, path)
	}
	fh.Close()
	if st.Size() == 0 {
		return errors.Wrapf(engine.ErrInputUnavailable, "%s %s is empty", what, path)
	}
	return nil
}
