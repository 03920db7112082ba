package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// uiState is what the TUI remembers between runs. Task data never lives here.
type uiState struct {
	LastView View `json:"last_view"`
}

func (m *Model) persistUIState() {
	if err := saveUIState(m.statePath, uiState{LastView: m.CurrentView}); err != nil {
		m.log.Warn("persist ui state", zap.String("path", m.statePath), zap.Error(err))
	}
}

func saveUIState(path string, st uiState) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func loadUIState(path string) (uiState, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return uiState{}, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return uiState{}, nil
		}
		return uiState{}, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return uiState{}, nil
	}
	var st uiState
	if err := json.Unmarshal(raw, &st); err != nil {
		return uiState{}, err
	}
	return st, nil
}
