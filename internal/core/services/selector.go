package services

import (
	"sort"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

// DefaultCandidatePool bounds how far down the sorted candidate list the
// selector scans on large catalogs.
const DefaultCandidatePool = 60

// SelectDiverse picks up to topN songs from the scored candidates, enforcing
// at most one song per artist. Candidates are sorted by descending final
// score (stable, so ties keep catalog iteration order) and only the top
// poolSize are considered. Fewer than topN unique artists in the pool means
// fewer results; the uniqueness constraint is never relaxed.
func SelectDiverse(scored []domain.ScoredSong, topN, poolSize int) []domain.ScoredSong {
	if topN <= 0 || len(scored) == 0 {
		return nil
	}
	if poolSize <= 0 {
		poolSize = DefaultCandidatePool
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	pool := scored
	if len(pool) > poolSize {
		pool = pool[:poolSize]
	}

	picked := make([]domain.ScoredSong, 0, topN)
	seenArtists := make(map[string]struct{}, topN)
	for _, candidate := range pool {
		if _, seen := seenArtists[candidate.Song.Artist]; seen {
			continue
		}
		picked = append(picked, candidate)
		seenArtists[candidate.Song.Artist] = struct{}{}
		if len(picked) == topN {
			break
		}
	}
	return picked
}
