package web

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/suite"
)

type fakeStats struct{}

func (fakeStats) Connected() int64 { return 3 }
func (fakeStats) Dropped() int64   { return 1 }
func (fakeStats) Failures() int64  { return 2 }

type ServerTestSuite struct {
	suite.Suite
	server *Server
}

func (s *ServerTestSuite) SetupTest() {
	var err error
	s.server, err = New(&Config{
		Port:        3000,
		Version:     "1.2.3",
		Websocket:   func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {},
		Connections: fakeStats{},
		Writes:      fakeStats{},
	})
	s.Require().NoError(err)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) get(path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Port: 3000})
	s.ErrorIs(err, ErrNilWebsocket)

	_, err = New(&Config{Port: 0, Websocket: func(http.ResponseWriter, *http.Request, httprouter.Params) {}})
	s.ErrorIs(err, ErrInvalidPort)
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.get("/healthz", nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp healthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(healthResponse{Status: "ok", Connections: 3, DroppedWrites: 1, FailedWrites: 2}, resp)
}

func (s *ServerTestSuite) TestVersion() {
	rec := s.get("/version", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("quizhost v1.2.3\n", rec.Body.String())
}

func (s *ServerTestSuite) TestJoinQRIsPNG() {
	rec := s.get("/p/Anna/qr", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))

	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	s.NoError(err)
}

func (s *ServerTestSuite) TestJoinURL() {
	req := httptest.NewRequest(http.MethodGet, "/p/Anna%20B/qr", nil)
	req.Host = "quiz.local:3000"
	s.Equal("http://quiz.local:3000/p/Anna%20B", s.server.joinURL(req, "Anna B"))

	req.Header.Set("X-Forwarded-Proto", "https")
	s.Equal("https://quiz.local:3000/p/Anna", s.server.joinURL(req, "Anna"))

	s.server.cfg.PublicURL = "https://party.example/"
	s.Equal("https://party.example/p/Anna", s.server.joinURL(req, "Anna"))
}
