package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/pkg/sqlite"
	"github.com/aiham/dymaxion/pkg/types"
)

// writeJSON prints v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError(fmt.Errorf("encode output: %w", err))
	}
	return nil
}

// attachBackend opens the history backend for the resolved data directory.
// The caller must defer Detach.
func (a *app) attachBackend() (types.Recorder, error) {
	backend := sqlite.NewRecorder()
	if err := backend.Attach(a.cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}
