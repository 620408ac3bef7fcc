// Package archivetest runs an in-process archive search API for tests.
package archivetest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

const emptyPage = `{"data":[]}`

// Server answers submission and comment search with queued JSON pages.
// Once a queue is drained every further request gets an empty page.
type Server struct {
	*httptest.Server

	mu              sync.Mutex
	submissionPages []string
	commentPages    map[string][]string
	submissionReqs  []url.Values
	commentReqs     []url.Values
	failStatus      int
	delay           time.Duration
}

func NewServer() *Server {
	s := &Server{commentPages: make(map[string][]string)}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/reddit/search/submission", s.searchSubmissions)
	e.GET("/reddit/comment/search", s.searchComments)

	s.Server = httptest.NewServer(e)
	return s
}

func (s *Server) QueueSubmissions(pages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissionPages = append(s.submissionPages, pages...)
}

func (s *Server) QueueComments(linkID int64, pages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strconv.FormatInt(linkID, 10)
	s.commentPages[key] = append(s.commentPages[key], pages...)
}

// FailWith makes every following request answer with status.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Stall delays every following response by d.
func (s *Server) Stall(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) SubmissionRequests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.submissionReqs...)
}

func (s *Server) CommentRequests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.commentReqs...)
}

func (s *Server) searchSubmissions(c echo.Context) error {
	s.mu.Lock()
	s.submissionReqs = append(s.submissionReqs, c.QueryParams())
	page := pop(&s.submissionPages)
	status, delay := s.failStatus, s.delay
	s.mu.Unlock()

	return respond(c, status, delay, page)
}

func (s *Server) searchComments(c echo.Context) error {
	s.mu.Lock()
	s.commentReqs = append(s.commentReqs, c.QueryParams())
	queue := s.commentPages[c.QueryParam("link_id")]
	page := pop(&queue)
	s.commentPages[c.QueryParam("link_id")] = queue
	status, delay := s.failStatus, s.delay
	s.mu.Unlock()

	return respond(c, status, delay, page)
}

func respond(c echo.Context, status int, delay time.Duration, page string) error {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-c.Request().Context().Done():
			return nil
		}
	}

	if status != 0 {
		return echo.NewHTTPError(status, http.StatusText(status))
	}

	return c.JSONBlob(http.StatusOK, []byte(page))
}

func pop(pages *[]string) string {
	if len(*pages) == 0 {
		return emptyPage
	}
	page := (*pages)[0]
	*pages = (*pages)[1:]
	return page
}
