// Package catalog queries the regional content catalogs over HTTP+JSON.
//
// Search and Detail never fail their caller: network and decoding errors
// are logged and converted to empty results, matching the "not found is
// not an error" contract of the lookup commands.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fgo_bot/internal/model"
	"fgo_bot/internal/telemetry"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Schedule is a raw schedule record as returned by the catalog's schedule
// endpoints. Start and End are epoch seconds.
type Schedule struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	RateUp []RateUp
}

// RateUp is one entry of a schedule's rate-up object list.
type RateUp struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// RateUpTypeEntity marks a rate-up entry that refers to a servant.
const RateUpTypeEntity = "entity"

type servantRecord struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	CollectionNumber int               `json:"collectionNumber"`
	Artwork          map[string]string `json:"artwork"`
}

type scheduleDetailRecord struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Start   int64    `json:"start"`
	End     int64    `json:"end"`
	RateUps []RateUp `json:"rateUps"`
}

// Client queries one catalog endpoint per region.
type Client struct {
	http    HTTPClient
	bases   map[model.Region]string
	log     *slog.Logger
	timeout time.Duration
}

// New creates a Client over the given region → base URL table.
func New(client HTTPClient, bases map[model.Region]string, log *slog.Logger) *Client {
	return &Client{
		http:    client,
		bases:   bases,
		log:     log,
		timeout: 15 * time.Second,
	}
}

// Search looks up servants by name in one region. Candidates come back in
// the source's own relevance order; callers treat index 0 as best match.
// Any failure yields an empty slice.
func (c *Client) Search(ctx context.Context, name string, region model.Region) []model.Servant {
	u := fmt.Sprintf("%s/entity/search?name=%s", c.bases[region], url.QueryEscape(name))

	var records []servantRecord
	if err := c.getJSON(ctx, u, &records); err != nil {
		c.log.Error("catalog search", "region", region, "name", name, "error", err)
		telemetry.IncCatalogErrors()
		return nil
	}

	servants := make([]model.Servant, 0, len(records))
	for _, r := range records {
		servants = append(servants, toServant(r))
	}
	return servants
}

// Detail fetches one servant by its region-scoped ID. Returns nil when the
// servant is absent or the request fails.
func (c *Client) Detail(ctx context.Context, id int64, region model.Region) *model.Servant {
	u := fmt.Sprintf("%s/entity/%d", c.bases[region], id)

	var record servantRecord
	if err := c.getJSON(ctx, u, &record); err != nil {
		c.log.Error("catalog detail", "region", region, "id", id, "error", err)
		telemetry.IncCatalogErrors()
		return nil
	}
	if record.ID == 0 {
		return nil
	}
	s := toServant(record)
	return &s
}

// Schedules fetches the full schedule list for a region. Any failure
// yields an empty slice.
func (c *Client) Schedules(ctx context.Context, region model.Region) []Schedule {
	u := fmt.Sprintf("%s/schedule/list", c.bases[region])
	return c.scheduleList(ctx, u, region)
}

// SchedulesFor fetches the schedule list already scoped to one servant.
// Any failure yields an empty slice.
func (c *Client) SchedulesFor(ctx context.Context, entityID int64, region model.Region) []Schedule {
	u := fmt.Sprintf("%s/schedule/list?entityId=%d", c.bases[region], entityID)
	return c.scheduleList(ctx, u, region)
}

// ScheduleDetail fetches one schedule record including its rate-up list.
// Unlike the other calls this returns the error so that per-record
// failures during fan-out can be skipped individually.
func (c *Client) ScheduleDetail(ctx context.Context, id int64, region model.Region) (*Schedule, error) {
	u := fmt.Sprintf("%s/schedule/%d", c.bases[region], id)

	var record scheduleDetailRecord
	if err := c.getJSON(ctx, u, &record); err != nil {
		telemetry.IncCatalogErrors()
		return nil, fmt.Errorf("schedule detail %d: %w", id, err)
	}
	return &Schedule{
		ID:     record.ID,
		Title:  record.Title,
		Start:  record.Start,
		End:    record.End,
		RateUp: record.RateUps,
	}, nil
}

func (c *Client) scheduleList(ctx context.Context, u string, region model.Region) []Schedule {
	var records []Schedule
	if err := c.getJSON(ctx, u, &records); err != nil {
		c.log.Error("catalog schedule list", "region", region, "error", err)
		telemetry.IncCatalogErrors()
		return nil
	}
	return records
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func toServant(r servantRecord) model.Servant {
	return model.Servant{
		ID:           r.ID,
		Name:         r.Name,
		CollectionNo: r.CollectionNumber,
		Artwork:      r.Artwork,
	}
}
