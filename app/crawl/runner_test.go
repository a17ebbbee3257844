package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type memorySink struct {
	mu      sync.Mutex
	records []Record
}

func (s *memorySink) Write(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *memorySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

func listPageHTML(actorPaths ...string) string {
	html := `<ul class="cast">`
	for _, path := range actorPaths {
		html += fmt.Sprintf(`<li><a class="actor-link" href="%s">actor</a></li>`, path)
	}
	return html + `</ul>`
}

func actorPageHTML(name string, titles ...string) string {
	html := fmt.Sprintf(`<h1 class="name">%s</h1><ul class="credits">`, name)
	for _, title := range titles {
		html += fmt.Sprintf(`<li>%s</li>`, title)
	}
	return html + `</ul>`
}

func newRunnerForTest(server *httptest.Server, sink RecordSink) *Runner {
	fetcher := NewFetcher(server.Client(), "test-agent", 0)
	extractor := NewExtractor(testProfile())
	return NewRunner(fetcher, extractor, sink, 2, 16)
}

func TestRunner_TwoLevelFanOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listPageHTML("/actor/one", "/actor/two"))
	})
	mux.HandleFunc("/actor/one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, actorPageHTML("Jane Doe", "First Film", "Second Film", "Third Film"))
	})
	mux.HandleFunc("/actor/two", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, actorPageHTML("John Roe", "First Film", "Fourth Film", "Fifth Film"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	sink := &memorySink{}
	runner := newRunnerForTest(server, sink)

	stats, err := runner.Run(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Records != 6 {
		t.Errorf("Expected exactly 6 records, got %d", stats.Records)
	}
	if stats.Completed != 3 {
		t.Errorf("Expected 3 completed tasks, got %d", stats.Completed)
	}
	if stats.Dropped != 0 {
		t.Errorf("Expected no dropped tasks, got %d", stats.Dropped)
	}

	perActor := make(map[string]int)
	for _, record := range sink.Records() {
		if record.Actor == "" || record.Title == "" {
			t.Errorf("Record with empty field written: %+v", record)
		}
		perActor[record.Actor]++
	}
	if perActor["Jane Doe"] != 3 || perActor["John Roe"] != 3 {
		t.Errorf("Expected 3 records per actor, got %v", perActor)
	}
}

func TestRunner_SharedTitleKeptPerActor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listPageHTML("/actor/one", "/actor/two"))
	})
	mux.HandleFunc("/actor/one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, actorPageHTML("Jane Doe", "Shared Film"))
	})
	mux.HandleFunc("/actor/two", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, actorPageHTML("John Roe", "Shared Film"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	sink := &memorySink{}
	runner := newRunnerForTest(server, sink)

	if _, err := runner.Run(context.Background(), server.URL+"/"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// No dedup: a credit shared by two actors yields two records
	if sink.Count() != 2 {
		t.Errorf("Expected 2 records for shared title, got %d", sink.Count())
	}
}

func TestRunner_FailedFetchIsDropped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listPageHTML("/actor/one", "/actor/gone"))
	})
	mux.HandleFunc("/actor/one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, actorPageHTML("Jane Doe", "First Film", "Second Film", "Third Film"))
	})
	mux.HandleFunc("/actor/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	sink := &memorySink{}
	runner := newRunnerForTest(server, sink)

	stats, err := runner.Run(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Records != 3 {
		t.Errorf("Expected 3 records from the reachable actor, got %d", stats.Records)
	}
	if stats.Dropped != 1 {
		t.Errorf("Expected 1 dropped task, got %d", stats.Dropped)
	}
	if stats.Completed != 2 {
		t.Errorf("Expected 2 completed tasks, got %d", stats.Completed)
	}
}

func TestRunner_MissingActorNameDropsRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listPageHTML("/actor/anon"))
	})
	mux.HandleFunc("/actor/anon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ul class="credits"><li>Orphan Film</li></ul>`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	sink := &memorySink{}
	runner := newRunnerForTest(server, sink)

	stats, err := runner.Run(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Records != 0 {
		t.Errorf("Expected no records when actor name is missing, got %d", stats.Records)
	}
	if stats.Completed != 2 {
		t.Errorf("Expected the page itself to complete, got %d completed", stats.Completed)
	}
}

func TestRunner_UserAgentAndThrottle(t *testing.T) {
	var mu sync.Mutex
	var agents []string
	var requestTimes []time.Time

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.UserAgent())
		requestTimes = append(requestTimes, time.Now())
		mu.Unlock()
		fmt.Fprint(w, listPageHTML("/actor/one"))
	})
	mux.HandleFunc("/actor/one", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.UserAgent())
		requestTimes = append(requestTimes, time.Now())
		mu.Unlock()
		fmt.Fprint(w, actorPageHTML("Jane Doe", "First Film"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "spoofed-agent", 50*time.Millisecond)
	runner := NewRunner(fetcher, NewExtractor(testProfile()), &memorySink{}, 2, 16)

	if _, err := runner.Run(context.Background(), server.URL+"/"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if len(agents) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(agents))
	}
	for _, agent := range agents {
		if agent != "spoofed-agent" {
			t.Errorf("Expected configured user agent on every request, got '%s'", agent)
		}
	}

	if gap := requestTimes[1].Sub(requestTimes[0]); gap < 40*time.Millisecond {
		t.Errorf("Expected at least the configured delay between requests, got %v", gap)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listPageHTML("/actor/one"))
	})
	mux.HandleFunc("/actor/one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, actorPageHTML("Jane Doe", "First Film"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &memorySink{}
	runner := newRunnerForTest(server, sink)

	_, err := runner.Run(ctx, server.URL+"/")
	if err == nil {
		t.Error("Expected error from cancelled context")
	}
}
