// SPDX-License-Identifier: MPL-2.0

package toilfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrExists is returned by WriteStarter when the target file already exists.
var ErrExists = errors.New("toilfile already exists")

// Starter is the toilfile written by `toil init`.
const Starter = `// toilfile: settings for toil. Any field here overrides the built-in
// default of the same name. Reference other settings with $NAME or ${NAME}.

TASKS: ["virtualenv", "pip"]

// ENV_REL: "env"
// PIP_REQUIREMENTS: "${PROJECT_ROOT}/requirements.txt"
// NODEJS_VERSION: "v0.10.26"
`

// WriteStarter creates path with the Starter content. It never overwrites.
func WriteStarter(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("failed to create toilfile: %w", err)
	}
	if _, err := f.WriteString(Starter); err != nil {
		_ = f.Close() // write error takes precedence
		return fmt.Errorf("failed to write toilfile: %w", err)
	}
	return f.Close()
}
