package crawl

import (
	"context"
	"fmt"
	"log/slog"
)

// ActorPageTask fetches an actor page and emits one record per credited
// title. Records missing either field are dropped.
type ActorPageTask struct {
	Task
	fetcher   *Fetcher
	extractor *Extractor
	sink      RecordSink
}

func NewActorPageTask(url string, fetcher *Fetcher, extractor *Extractor, sink RecordSink) *ActorPageTask {
	return &ActorPageTask{
		Task:      NewTask(TaskTypeActorPage, url),
		fetcher:   fetcher,
		extractor: extractor,
		sink:      sink,
	}
}

func (t *ActorPageTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	doc, err := t.fetcher.Fetch(ctx, t.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch actor page: %w", err)
	}

	name := t.extractor.ActorName(doc)
	titles := t.extractor.Titles(doc)

	written := 0
	dropped := 0
	for _, title := range titles {
		if name == "" || title == "" {
			dropped++
			continue
		}

		if err := t.sink.Write(Record{Actor: name, Title: title}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		written++
	}

	if name == "" && len(titles) > 0 {
		slog.Warn("Actor name not found, records dropped", "url", t.URL, "titles", len(titles))
	}

	slog.Info("Task completed",
		"type", "ActorPage",
		"url", t.URL,
		"duration", t.GetDuration(),
		"actor", name,
		"written", written,
		"dropped", dropped)

	return nil
}
