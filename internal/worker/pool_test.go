package worker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

func overrideAnalyzer(t *testing.T, fn func(url string) (float64, error)) {
	t.Helper()
	orig := AnalyzePreviewFunc
	AnalyzePreviewFunc = fn
	t.Cleanup(func() { AnalyzePreviewFunc = orig })
}

func TestPool_WritesEnergyBackToCache(t *testing.T) {
	overrideAnalyzer(t, func(url string) (float64, error) {
		if url != "https://cdn/p.mp3" {
			t.Errorf("analyzed %q", url)
		}
		return 0.42, nil
	})

	mediaCache := cache.New(cache.NoExpiration, 0)
	mediaCache.Set("Song-Artist", domain.MediaLinks{PreviewURL: "https://cdn/p.mp3"}, cache.NoExpiration)

	p := NewPool(mediaCache, 4, zerolog.Nop())
	p.Start(1)
	p.Analyze("Song-Artist", "Song", "Artist", "https://cdn/p.mp3")
	p.Stop()

	hit, ok := mediaCache.Get("Song-Artist")
	if !ok {
		t.Fatal("cache entry vanished")
	}
	links := hit.(domain.MediaLinks)
	if links.PreviewEnergy == nil || *links.PreviewEnergy != 0.42 {
		t.Fatalf("preview energy = %v, want 0.42", links.PreviewEnergy)
	}
	if links.PreviewURL != "https://cdn/p.mp3" {
		t.Errorf("other fields clobbered: %+v", links)
	}
}

func TestPool_AnalysisFailureLeavesCacheUntouched(t *testing.T) {
	overrideAnalyzer(t, func(url string) (float64, error) {
		return 0, errors.New("decode failed")
	})

	mediaCache := cache.New(cache.NoExpiration, 0)
	seeded := domain.MediaLinks{PreviewURL: "https://cdn/p.mp3"}
	mediaCache.Set("Song-Artist", seeded, cache.NoExpiration)

	p := NewPool(mediaCache, 4, zerolog.Nop())
	p.Start(1)
	p.Analyze("Song-Artist", "Song", "Artist", "https://cdn/p.mp3")
	p.Stop()

	hit, _ := mediaCache.Get("Song-Artist")
	if hit.(domain.MediaLinks) != seeded {
		t.Fatalf("cache entry changed on failure: %+v", hit)
	}
}

func TestPool_SkipsEvictedEntries(t *testing.T) {
	var analyzed bool
	overrideAnalyzer(t, func(url string) (float64, error) {
		analyzed = true
		return 0.5, nil
	})

	mediaCache := cache.New(cache.NoExpiration, 0)
	p := NewPool(mediaCache, 4, zerolog.Nop())
	p.Start(1)
	p.Analyze("missing-key", "Song", "Artist", "https://cdn/p.mp3")
	p.Stop()

	if !analyzed {
		t.Error("analysis should still run before the cache check")
	}
	if mediaCache.ItemCount() != 0 {
		t.Error("result written for a key the cache no longer holds")
	}
}

func TestPool_FullQueueDropsJob(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	overrideAnalyzer(t, func(url string) (float64, error) {
		once.Do(func() { close(started) })
		<-release
		return 0.5, nil
	})

	mediaCache := cache.New(cache.NoExpiration, 0)
	p := NewPool(mediaCache, 1, zerolog.Nop())
	p.Start(1)

	// first job occupies the worker, second fills the queue, third must drop
	p.Analyze("a", "A", "X", "https://cdn/a.mp3")
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the first job")
	}
	p.Analyze("b", "B", "X", "https://cdn/b.mp3")
	p.Analyze("c", "C", "X", "https://cdn/c.mp3") // dropped, must not block

	close(release)
	p.Stop()
}

func TestPool_IgnoresEmptyPreviewURL(t *testing.T) {
	overrideAnalyzer(t, func(url string) (float64, error) {
		t.Error("analyzer must not run for an empty preview URL")
		return 0, nil
	})

	p := NewPool(cache.New(cache.NoExpiration, 0), 4, zerolog.Nop())
	p.Start(1)
	p.Analyze("key", "Song", "Artist", "")
	p.Stop()
}
