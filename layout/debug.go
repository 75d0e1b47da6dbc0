package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDebugJSON 将各页的绘制计划输出为 JSON，便于调试或可视化。
func WriteDebugJSON(plans []Plan, path string) error {
	if len(plans) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create debug dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
