package seed

import (
	"context"
	"fmt"
	"log/slog"

	"redline/internal/domain/repositories"
)

// Seed documents pre-populated at version 1 on first boot. Sample patent
// text with deliberate rough edges for the reviewer to find.
const (
	document1 = `<h1>System and Method for Adaptive Data Compression</h1>
<p>The present invention relates to a system for compressing data streams in real time. The system comprises a preprocessing module, an entropy encoder, and an adaptive dictionary that is updated continuously as data flows through the encoder.</p>
<p>In one embodiment, the preprocessing module splits the incoming stream into fixed-size blocks. Each block is analyzed for redundancy and the dictionary is consulted before encoding. The block size may be adjusted dynamically based on observed entropy.</p>
<p>The claimed method achieves a compression ratio superior to existing approaches under all workloads, without any additional memory overhead.</p>`

	document2 = `<h1>Apparatus for Wireless Power Transfer Between Moving Vehicles</h1>
<p>Disclosed is an apparatus enabling inductive power transfer between two vehicles in motion. The apparatus includes a primary coil mounted on a donor vehicle and a secondary coil mounted on a receiving vehicle, together with an alignment controller.</p>
<p>The alignment controller estimates relative position using a combination of radio ranging and optical markers, and adjusts the resonant frequency of the primary circuit accordingly.</p>
<p>The apparatus operates at any distance and any relative speed.</p>`
)

// seedVersions maps logical document IDs to their version-1 content.
var seedVersions = map[int64]string{
	1: document1,
	2: document2,
}

// EnsureDocuments inserts the seed documents at version 1 when they are
// absent. Idempotent: re-running against a seeded store changes nothing,
// including content already edited by users.
func EnsureDocuments(ctx context.Context, repo repositories.VersionRepository, logger *slog.Logger) error {
	for documentID, content := range seedVersions {
		if err := repo.PutIfAbsent(ctx, documentID, 1, content); err != nil {
			return fmt.Errorf("seed document %d: %w", documentID, err)
		}
	}

	logger.Info("seed documents ensured", "count", len(seedVersions))
	return nil
}
