package simulator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// PrintSummary writes a human readable table of the report.
func PrintSummary(w io.Writer, r Report) {
	fmt.Fprintf(w, "\n=== RETURN TO PLAYER (%d rounds per game, bet %d, seed %d) ===\n", r.Rounds, r.Bet, r.Seed)
	fmt.Fprintf(w, "%-10s %-14s %8s %8s %10s %10s %22s\n",
		"game", "strategy", "rtp", "hit", "mean", "stddev", "95% CI")
	for _, g := range r.Games {
		s := g.Summary
		fmt.Fprintf(w, "%-10s %-14s %7.2f%% %7.2f%% %10.4f %10.4f [%9.4f, %9.4f]\n",
			g.Game, g.Strategy, s.ReturnToPlayer*100, s.HitRate*100, s.Mean, s.StdDev, s.CI95[0], s.CI95[1])
	}
	fmt.Fprintf(w, "\nElapsed: %s\n", r.Elapsed.Round(time.Millisecond))
}

// WriteJSON saves the report to filename. Readers see either the previous
// file or the complete new one, never a partial write.
func WriteJSON(filename string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return writeFileAtomic(filename, append(data, '\n'), 0o644)
}

// writeFileAtomic writes to a temporary file in the same directory and
// renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		committed = true
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}
