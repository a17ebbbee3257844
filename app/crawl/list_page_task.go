package crawl

import (
	"context"
	"fmt"
	"log/slog"
)

// ListPageTask fetches a list page and enqueues one ActorPageTask per actor
// link found on it.
type ListPageTask struct {
	Task
	fetcher   *Fetcher
	extractor *Extractor
	sink      RecordSink
	enqueuer  TaskEnqueuer
}

func NewListPageTask(url string, fetcher *Fetcher, extractor *Extractor, sink RecordSink, enqueuer TaskEnqueuer) *ListPageTask {
	return &ListPageTask{
		Task:      NewTask(TaskTypeListPage, url),
		fetcher:   fetcher,
		extractor: extractor,
		sink:      sink,
		enqueuer:  enqueuer,
	}
}

func (t *ListPageTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	doc, err := t.fetcher.Fetch(ctx, t.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch list page: %w", err)
	}

	links, err := t.extractor.ActorLinks(doc, t.URL)
	if err != nil {
		return fmt.Errorf("failed to extract actor links: %w", err)
	}

	enqueued := 0
	for _, link := range links {
		actorTask := NewActorPageTask(link, t.fetcher, t.extractor, t.sink)
		if err := t.enqueuer.EnqueueTask(actorTask); err != nil {
			slog.Warn("Failed to enqueue ActorPageTask", "url", link, "error", err)
			continue
		}
		enqueued++
	}

	slog.Info("Task completed",
		"type", "ListPage",
		"url", t.URL,
		"duration", t.GetDuration(),
		"links", len(links),
		"enqueued", enqueued)

	return nil
}
