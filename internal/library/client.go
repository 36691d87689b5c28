package library

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookshop/internal/domain"
	"github.com/vladislavdragonenkov/bookshop/internal/metrics"
)

const (
	lookupTimeout = 3 * time.Second

	bookQuery = `query BookById($id: ID!) { bookById(id: $id) { id title author year } }`
)

// Client запрашивает записи книг в библиографической системе по её
// GraphQL API. Любой отказ (сеть, таймаут, не-200, ошибки GraphQL,
// отсутствие книги) деградирует до nil: обогащение опционально и не
// должно валить чтение каталога.
type Client struct {
	url     string
	http    *http.Client
	logger  *log.Entry
	metrics *metrics.CatalogMetrics
}

// NewClient конструирует клиента библиотеки. metrics может быть nil.
func NewClient(url string, m *metrics.CatalogMetrics, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.WithField("component", "library-client")
	}
	return &Client{
		url:     url,
		http:    &http.Client{Timeout: lookupTimeout},
		logger:  logger,
		metrics: m,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		BookByID *bookPayload `json:"bookById"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type bookPayload struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int32  `json:"year"`
}

// GetBookByID возвращает запись книги или nil.
func (c *Client) GetBookByID(ctx context.Context, id int64) *domain.BookRecord {
	callCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	payload, err := json.Marshal(graphqlRequest{
		Query:     bookQuery,
		Variables: map[string]any{"id": strconv.FormatInt(id, 10)},
	})
	if err != nil {
		c.lookupFailed(id, err)
		return nil
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.lookupFailed(id, err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.lookupFailed(id, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(log.Fields{"book_id": id, "status": resp.StatusCode}).Warn("library returned non-OK status")
		c.record("error")
		return nil
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.lookupFailed(id, err)
		return nil
	}
	if len(decoded.Errors) > 0 {
		c.logger.WithFields(log.Fields{"book_id": id, "error": decoded.Errors[0].Message}).Warn("library returned graphql errors")
		c.record("error")
		return nil
	}
	if decoded.Data.BookByID == nil {
		c.record("miss")
		return nil
	}

	book := decoded.Data.BookByID
	bookID, err := strconv.ParseInt(book.ID, 10, 64)
	if err != nil {
		c.lookupFailed(id, err)
		return nil
	}

	c.record("hit")
	return &domain.BookRecord{
		ID:     bookID,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
	}
}

func (c *Client) lookupFailed(id int64, err error) {
	c.logger.WithError(err).WithField("book_id", id).Warn("library lookup failed")
	c.record("error")
}

func (c *Client) record(outcome string) {
	if c.metrics != nil {
		c.metrics.RecordLibraryLookup(outcome)
	}
}

var _ domain.LibraryClient = (*Client)(nil)
